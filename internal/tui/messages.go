package tui

type tablesLoadedMsg struct {
	tables []string
	err    error
}

type tableLoadedMsg struct {
	name    string
	columns []string
	rows    [][]string
	err     error
}

type clearStatusMsg struct{}
