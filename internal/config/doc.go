// Package config provides configuration loading, merging, and validation
// facilities for the go-blog binaries.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. JSON or YAML config file (-c flag or CONFIG env)
//  3. Environment variables, after an optional dotenv file is loaded
//  4. Command-line flags
//
// The main entry points are [GetStructuredConfig] for the server and
// [GetViewerConfig] for the database viewer.
package config
