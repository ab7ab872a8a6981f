package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-blog/internal/store"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	// viewerRowLimit caps the rows loaded into the grid.
	viewerRowLimit = 500
	maxColumnWidth = 32
	minColumnWidth = 4
	statusTTL      = 3 * time.Second
)

type pane int

const (
	paneTables pane = iota
	paneGrid
)

type viewerModel struct {
	ctx          context.Context
	introspector store.Introspector
	copyToClip   func(string) error

	tables   []string
	tableIdx int
	current  string
	grid     table.Model
	focus    pane

	loading bool
	spinner spinner.Model
	help    help.Model

	status string
	errMsg string

	width  int
	height int
}

func newViewerModel(ctx context.Context, introspector store.Introspector) viewerModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	grid := table.New(table.WithHeight(15))
	grid.SetStyles(table.DefaultStyles())
	grid.Blur()

	return viewerModel{
		ctx:          ctx,
		introspector: introspector,
		copyToClip:   clipboard.WriteAll,
		grid:         grid,
		focus:        paneTables,
		loading:      true,
		spinner:      s,
		help:         help.New(),
	}
}

func (m viewerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdLoadTables())
}

func (m viewerModel) cmdLoadTables() tea.Cmd {
	return func() tea.Msg {
		tables, err := m.introspector.ListTables(m.ctx)
		return tablesLoadedMsg{tables: tables, err: err}
	}
}

func (m viewerModel) cmdLoadTable(name string) tea.Cmd {
	return func() tea.Msg {
		columns, rows, err := m.introspector.ReadTable(m.ctx, name, viewerRowLimit)
		return tableLoadedMsg{name: name, columns: columns, rows: rows, err: err}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if h := msg.Height - 10; h > 3 {
			m.grid.SetHeight(h)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tablesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.tables = msg.tables
		if m.tableIdx >= len(m.tables) {
			m.tableIdx = max(len(m.tables)-1, 0)
		}
		// keep showing the open table after a reload if it still exists
		for _, name := range m.tables {
			if name == m.current {
				m.loading = true
				return m, m.cmdLoadTable(name)
			}
		}
		m.current = ""
		m.setGrid(nil, nil)
		return m, nil

	case tableLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.current = msg.name
		m.setGrid(msg.columns, msg.rows)
		m.status = fmt.Sprintf("%s: %d rows", msg.name, len(msg.rows))
		return m, clearStatusAfter(statusTTL)

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m viewerModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit

	case key.Matches(msg, keys.tab):
		if m.focus == paneTables {
			m.focus = paneGrid
			m.grid.Focus()
		} else {
			m.focus = paneTables
			m.grid.Blur()
		}
		return m, nil

	case key.Matches(msg, keys.reload):
		m.loading = true
		m.status = "Reloading..."
		return m, m.cmdLoadTables()

	case key.Matches(msg, keys.copy):
		return m.copySelectedRow()
	}

	if m.focus == paneGrid {
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.up):
		if m.tableIdx > 0 {
			m.tableIdx--
		}
	case key.Matches(msg, keys.down):
		if m.tableIdx < len(m.tables)-1 {
			m.tableIdx++
		}
	case key.Matches(msg, keys.enter):
		if len(m.tables) == 0 {
			return m, nil
		}
		m.loading = true
		m.focus = paneGrid
		m.grid.Focus()
		return m, m.cmdLoadTable(m.tables[m.tableIdx])
	}

	return m, nil
}

// copySelectedRow puts the selected grid row on the clipboard as
// tab-separated text.
func (m viewerModel) copySelectedRow() (tea.Model, tea.Cmd) {
	row := m.grid.SelectedRow()
	if len(row) == 0 {
		m.status = "Nothing to copy"
		return m, clearStatusAfter(statusTTL)
	}

	if err := m.copyToClip(strings.Join(row, "\t")); err != nil {
		m.errMsg = fmt.Sprintf("Copy failed: %v", err)
		return m, nil
	}

	m.errMsg = ""
	m.status = "Row copied"
	return m, clearStatusAfter(statusTTL)
}

// setGrid replaces the grid contents. Rows are cleared first because the
// table renders cells by column index.
func (m *viewerModel) setGrid(columns []string, rows [][]string) {
	m.grid.SetRows(nil)

	cols := make([]table.Column, len(columns))
	for i, title := range columns {
		width := max(lipgloss.Width(title), minColumnWidth)
		for _, r := range rows {
			if i < len(r) {
				width = max(width, lipgloss.Width(r[i]))
			}
		}
		cols[i] = table.Column{Title: title, Width: min(width, maxColumnWidth)}
	}
	m.grid.SetColumns(cols)

	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		tableRows[i] = table.Row(r)
	}
	m.grid.SetRows(tableRows)
	m.grid.GotoTop()
}

func (m viewerModel) View() string {
	var b strings.Builder

	header := "go-blog database"
	if m.loading {
		header += " " + m.spinner.View()
	}
	b.WriteString(titleStyle.Render(header) + "\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.tablesView(), " ", m.gridView()))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("Error: "+m.errMsg) + "\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(keys)))
	return appStyle.Render(b.String())
}

func (m viewerModel) tablesView() string {
	var b strings.Builder
	b.WriteString(selectedStyle.Render("Tables") + "\n")
	if len(m.tables) == 0 && !m.loading {
		b.WriteString("(none)\n")
	}
	for i, name := range m.tables {
		line := "  " + name
		if i == m.tableIdx {
			line = cursorStyle.Render("> " + name)
		}
		if name == m.current {
			line += " *"
		}
		b.WriteString(line + "\n")
	}

	style := paneStyle
	if m.focus == paneTables {
		style = focusedStyle
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

func (m viewerModel) gridView() string {
	content := "Select a table and press enter"
	if m.current != "" {
		content = m.grid.View()
	}

	style := paneStyle
	if m.focus == paneGrid {
		style = focusedStyle
	}
	return style.Render(content)
}
