package models

import "fmt"

const buildInfoUnknown = "N/A"

// AppBuildInfo is the linker-injected metadata of a go-blog binary.
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

// NewAppBuildInfo builds AppBuildInfo, replacing empty values with "N/A".
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		version: orUnknown(version),
		date:    orUnknown(date),
		commit:  orUnknown(commit),
	}
}

func (a AppBuildInfo) Version() string { return a.version }
func (a AppBuildInfo) Date() string    { return a.date }
func (a AppBuildInfo) Commit() string  { return a.commit }

// Stamped reports whether a version was injected at build time.
func (a AppBuildInfo) Stamped() bool {
	return a.version != buildInfoUnknown
}

func (a AppBuildInfo) String() string {
	return fmt.Sprintf("go-blog %s (commit %s, built %s)", a.version, a.commit, a.date)
}

func orUnknown(s string) string {
	if s == "" {
		return buildInfoUnknown
	}
	return s
}
