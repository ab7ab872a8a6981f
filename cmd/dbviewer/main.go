package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/dbviewer"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/internal/tui"
)

// logFile keeps log output off the terminal the viewer draws on.
const logFile = "dbviewer.log"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dbviewer: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.GetViewerConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	log := logger.NewFileLogger(logFile, "go-blog-dbviewer", "info")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.NewDB(ctx, cfg.DB, log)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer db.Close()

	introspector := store.NewIntrospector(db, log)

	app := dbviewer.NewApp(introspector, tui.New(introspector, log), cfg, os.Stdout, log)
	return app.Run(ctx)
}
