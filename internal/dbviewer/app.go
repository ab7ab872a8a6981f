package dbviewer

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/MKhiriev/go-blog/internal/tui"
)

type App struct {
	introspector store.Introspector
	ui           Viewer
	cfg          *config.ViewerConfig
	out          io.Writer

	logger *logger.Logger
}

func NewApp(introspector store.Introspector, ui Viewer, cfg *config.ViewerConfig, out io.Writer, logger *logger.Logger) *App {
	return &App{
		introspector: introspector,
		ui:           ui,
		cfg:          cfg,
		out:          out,
		logger:       logger,
	}
}

// Run prints the configured tables when dump mode is on and starts the
// interactive viewer otherwise.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Dump {
		a.logger.Debug().Strs("tables", a.cfg.Tables).Int("limit", a.cfg.Limit).Msg("dumping tables")
		if err := tui.Dump(ctx, a.out, a.introspector, a.cfg.Tables, a.cfg.Limit); err != nil {
			return fmt.Errorf("dump: %w", err)
		}
		return nil
	}

	if err := a.ui.Run(ctx); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
