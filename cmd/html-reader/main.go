package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"html-reader/internal/app"
)

func main() {
	mode := flag.String("mode", app.ModeMCP, "run mode: mcp (JSON-RPC over stdio) or api (REST server)")
	flag.Parse()

	readerApp := app.InitApp(*mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := readerApp.StartApp(ctx); err != nil {
		log.Fatalf("failed to start html-reader: %v", err)
	}

	select {
	case <-ctx.Done():
	case <-readerApp.Finished():
	}

	log.Println("Shutting down html-reader...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := readerApp.StopApp(shutdownCtx); err != nil {
		log.Fatalf("failed to stop html-reader gracefully: %v", err)
	}

	log.Println("Exited cleanly")
}
