// Package server runs the go-blog listeners: the JSON API over HTTP and,
// when an address is configured, the gRPC health endpoint. RunServer blocks
// until SIGINT/SIGTERM or a listener failure, then drains both.
package server
