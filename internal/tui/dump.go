package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
)

// Dump prints every requested table as a bordered text grid. All tables are
// printed when names is empty. limit <= 0 prints every row.
func Dump(ctx context.Context, w io.Writer, introspector store.Introspector, names []string, limit int) error {
	if len(names) == 0 {
		tables, err := introspector.ListTables(ctx)
		if err != nil {
			return fmt.Errorf("error listing tables: %w", err)
		}
		names = tables
	}

	for _, name := range names {
		columns, rows, err := introspector.ReadTable(ctx, name, limit)
		if err != nil {
			return fmt.Errorf("error reading table %s: %w", name, err)
		}

		grid := ltable.New().
			Border(lipgloss.NormalBorder()).
			Headers(columns...).
			Rows(rows...)

		if _, err = fmt.Fprintf(w, "%s (%d rows)\n%s\n\n", name, len(rows), grid.String()); err != nil {
			return fmt.Errorf("error writing table %s: %w", name, err)
		}
	}

	return nil
}
