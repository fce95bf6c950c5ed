package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"html-reader/internal/apiserver"
	"html-reader/internal/domain/config"
	"html-reader/internal/mcpserver"

	"go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

const (
	ModeMCP = "mcp"
	ModeAPI = "api"
)

type ReaderApp struct {
	logger    *zap.SugaredLogger
	cfg       *config.ServerConfig
	mode      string
	mcpServer *mcpserver.Server
	apiServer *apiserver.Server
	tp        *trace.TracerProvider

	httpServer *http.Server
	finished   chan struct{}
}

func NewReaderApp(logger *zap.SugaredLogger, cfg *config.ServerConfig, mode string, mcpServer *mcpserver.Server, apiServer *apiserver.Server, tp *trace.TracerProvider) *ReaderApp {
	return &ReaderApp{
		logger:    logger,
		cfg:       cfg,
		mode:      mode,
		mcpServer: mcpServer,
		apiServer: apiServer,
		tp:        tp,
		finished:  make(chan struct{}),
	}
}

// Finished is closed when the serving loop ends on its own: stdin EOF in MCP
// mode, or a listener failure in API mode.
func (app *ReaderApp) Finished() <-chan struct{} {
	return app.finished
}

func (app *ReaderApp) StartApp(ctx context.Context) error {
	switch app.mode {
	case ModeMCP:
		go app.serveMCP(ctx)
	case ModeAPI:
		app.httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", app.cfg.APIPort),
			Handler: app.apiServer.Router(),
		}
		go app.serveAPI()
	default:
		return fmt.Errorf("unknown mode %q (want %q or %q)", app.mode, ModeMCP, ModeAPI)
	}

	return nil
}

func (app *ReaderApp) serveMCP(ctx context.Context) {
	defer close(app.finished)

	app.logger.Infow("Serving MCP over stdio")

	if err := app.mcpServer.Serve(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		app.logger.Errorw("MCP server stopped", "err", err)
	}
}

func (app *ReaderApp) serveAPI() {
	defer close(app.finished)

	app.logger.Infow("Serving REST API", "addr", app.httpServer.Addr)

	if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Errorw("API server stopped", "err", err)
	}
}

func (app *ReaderApp) StopApp(ctx context.Context) error {
	if app.httpServer != nil {
		if err := app.httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}

	if app.tp != nil {
		if err := app.tp.Shutdown(ctx); err != nil {
			app.logger.Warnw("Failed to shut down tracer provider", "err", err)
		}
	}

	_ = app.logger.Sync()

	return nil
}
