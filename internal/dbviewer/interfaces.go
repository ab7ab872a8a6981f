package dbviewer

import "context"

// Viewer is the interactive front end. *tui.TUI implements it.
type Viewer interface {
	Run(ctx context.Context) error
}
