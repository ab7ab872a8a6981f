// Package http implements the REST API of go-blog on top of chi.
//
// It exposes route wiring, request handlers and middleware. Cross-cutting
// concerns such as bearer authentication, request tracing, access logging
// and compression are handled here before requests are delegated to the
// service layer. Every failed call answers with a JSON [models.ErrorResponse].
package http
