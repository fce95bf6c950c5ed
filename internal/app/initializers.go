package app

import (
	"context"
	"log"
	"os"

	"html-reader/internal/apiserver"
	"html-reader/internal/contentreader"
	"html-reader/internal/domain/config"
	"html-reader/internal/mcpserver"
	"html-reader/internal/networker"
	"html-reader/internal/pageparser"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"
	"go.uber.org/zap"
)

func InitApp(mode string) *ReaderApp {
	initEnv()

	logger := initLogger()
	cfg := config.NewServerConfigFromEnv()

	tp := initTracing(logger, cfg)

	fetcher := networker.NewNetworker(logger, cfg.RespectRobots)
	parser := pageparser.NewParserRepo(logger)
	reader := contentreader.NewReaderRepo(logger, fetcher, parser)

	mcpServer := mcpserver.NewServer(logger, reader)
	apiServer := apiserver.NewServer(logger, reader)

	return NewReaderApp(logger, cfg, mode, mcpServer, apiServer, tp)
}

func initTracing(logger *zap.SugaredLogger, cfg *config.ServerConfig) *trace.TracerProvider {
	if cfg.OTLPEndpoint == "" {
		return nil
	}

	exp, err := otlptracehttp.New(context.Background(), otlptracehttp.WithEndpoint(cfg.OTLPEndpoint), otlptracehttp.WithInsecure())
	if err != nil {
		logger.Fatalf("Error initializing otlp exporter: %v", err)
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(semconv.ServiceNameKey.String("html-reader")),
	)
	if err != nil {
		logger.Fatal("Error initializing otel resource:", err)
	}

	tracerProvider := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)

	otel.SetTracerProvider(tracerProvider)

	return tracerProvider
}

func initLogger() *zap.SugaredLogger {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Error initializing zap logger: %v", err)
		return nil
	}

	logger := zapLogger.Sugar()
	return logger
}

func initEnv() {
	if os.Getenv("APP_ENV") == "prod" {
		return
	}

	if err := godotenv.Load("main.env"); err != nil {
		log.Printf("No main.env file loaded: %v", err)
	}
}
