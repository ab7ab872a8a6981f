package server

import "errors"

var (
	// errNoServersAreCreated means the handlers carried neither transport.
	errNoServersAreCreated = errors.New("server: no listener configured")
	errNilHandlers         = errors.New("server: nil handlers")
)
