package handler

import "errors"

var (
	errNoHandlersAreCreated = errors.New("handler: neither HTTP nor gRPC address is set")
	errNilServices          = errors.New("handler: nil services")
)
