// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the transport layer. Callers can match against them
// with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidJSON is returned for request bodies that are not a single
	// JSON object of the expected shape.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidPathParam is returned when a numeric path or query parameter
	// cannot be parsed.
	ErrInvalidPathParam = errors.New("invalid path parameter")

	// ErrNoPicture is returned when an avatar upload carries no "picture" file.
	ErrNoPicture = errors.New("no picture was uploaded")

	// ErrNoSession is returned by handlers behind the auth middleware when the
	// request context holds no session.
	ErrNoSession = errors.New("no session in request context")
)
