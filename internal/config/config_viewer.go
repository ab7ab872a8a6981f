package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// ViewerConfig is the configuration of the read-only database viewer. It
// reuses the storage settings of [StructuredConfig] and adds the viewer's own
// command-line options.
type ViewerConfig struct {
	// DB holds the database connection settings.
	DB DB

	// Dump prints the selected tables as text grids instead of starting the
	// interactive viewer.
	Dump bool

	// Tables restricts dump mode to the named tables. Empty means all.
	Tables []string

	// Limit caps the number of rows read per table. Zero means no cap.
	Limit int
}

// GetViewerConfig builds the viewer configuration. Database settings come from
// defaults, the optional config file and the environment exactly as for the
// server; -driver and -d override them, and -dump, -tables and -limit are
// viewer-only flags.
func GetViewerConfig(args []string) (*ViewerConfig, error) {
	b := newConfigBuilder().
		withDefaults().
		withDotEnv().
		withEnv()

	var (
		driver, dsn, tables, configPath string
		dump                            bool
		limit                           int
	)

	fs := flag.NewFlagSet("dbviewer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&driver, "driver", "", "Database driver (postgres, sqlite)")
	fs.StringVar(&dsn, "d", "", "Database DSN")
	fs.StringVar(&configPath, "c", "", "Config file path")
	fs.BoolVar(&dump, "dump", false, "Print tables and exit")
	fs.StringVar(&tables, "tables", "", "Comma-separated tables to dump")
	fs.IntVar(&limit, "limit", 0, "Maximum rows per table")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	b.flags = &StructuredConfig{
		Storage:        Storage{DB: DB{Driver: driver, DSN: dsn}},
		ConfigFilePath: configPath,
	}
	b.withFile()

	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	merged, err := mergeLayers(b.layers())
	if err != nil {
		return nil, err
	}

	if limit < 0 {
		return nil, errors.New("limit must not be negative")
	}

	viewerCfg := &ViewerConfig{
		DB:     merged.Storage.DB,
		Dump:   dump,
		Tables: splitList(tables),
		Limit:  limit,
	}

	return viewerCfg, viewerCfg.validate()
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
