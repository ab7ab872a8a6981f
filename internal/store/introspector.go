package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-blog/internal/config"
	"github.com/MKhiriev/go-blog/internal/logger"
	sq "github.com/Masterminds/squirrel"
)

// gooseVersionTable is hidden from the viewer.
const gooseVersionTable = "goose_db_version"

// introspector reads arbitrary tables for the database viewer. Table names
// are only used in SQL after they were found in the catalog.
type introspector struct {
	db     *DB
	logger *logger.Logger
}

func NewIntrospector(db *DB, logger *logger.Logger) Introspector {
	return &introspector{db: db, logger: logger}
}

// ListTables returns the application tables in name order.
func (i *introspector) ListTables(ctx context.Context) ([]string, error) {
	var catalog sq.SelectBuilder
	switch i.db.driver {
	case config.DriverPostgres:
		catalog = i.db.builder.
			Select("table_name").
			From("information_schema.tables").
			Where(sq.Eq{"table_schema": "public", "table_type": "BASE TABLE"}).
			Where(sq.NotEq{"table_name": gooseVersionTable}).
			OrderBy("table_name")
	default:
		catalog = i.db.builder.
			Select("name").
			From("sqlite_master").
			Where(sq.Eq{"type": "table"}).
			Where(sq.NotLike{"name": "sqlite_%"}).
			Where(sq.NotEq{"name": gooseVersionTable}).
			OrderBy("name")
	}

	rows, err := query(ctx, i.db, catalog)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*introspector.ListTables").Msg("failed to list tables")
		return nil, err
	}
	defer rows.Close()

	tables := make([]string, 0, 8)
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		tables = append(tables, name)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tables, nil
}

// ReadTable returns the columns and up to limit rows of table, each value
// rendered as text. NULL renders as "NULL".
func (i *introspector) ReadTable(ctx context.Context, table string, limit int) ([]string, [][]string, error) {
	tables, err := i.ListTables(ctx)
	if err != nil {
		return nil, nil, err
	}
	if !slices.Contains(tables, table) {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	sel := i.db.builder.Select("*").From(quoteIdent(table))
	if limit > 0 {
		sel = sel.Limit(uint64(limit))
	}

	rows, err := query(ctx, i.db, sel)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*introspector.ReadTable").Str("table", table).Msg("failed to read table")
		return nil, nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	data := make([][]string, 0)
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for j := range values {
		ptrs[j] = &values[j]
	}

	for rows.Next() {
		if err = rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		record := make([]string, len(columns))
		for j, v := range values {
			record[j] = formatValue(v)
		}
		data = append(data, record)
	}
	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return columns, data, nil
}

func quoteIdent(name string) string {
	return `"` + name + `"`
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}
