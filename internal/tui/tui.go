// Package tui implements the read-only terminal database viewer of go-blog.
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/internal/store"
	tea "github.com/charmbracelet/bubbletea"
)

var errUnexpectedModel = errors.New("viewer finished with an unexpected model")

type TUI struct {
	introspector store.Introspector
	logger       *logger.Logger
}

func New(introspector store.Introspector, logger *logger.Logger) *TUI {
	return &TUI{introspector: introspector, logger: logger}
}

// Run shows the viewer until the user quits.
func (t *TUI) Run(ctx context.Context) error {
	finalModel, err := tea.NewProgram(newViewerModel(ctx, t.introspector), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		t.logger.Err(err).Str("func", "*TUI.Run").Msg("viewer stopped with error")
		return err
	}

	if _, ok := finalModel.(viewerModel); !ok {
		return errUnexpectedModel
	}
	return nil
}
