// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-blog HTTP handlers and middleware.
//
// All Msg* constants are human-readable message strings written into HTTP
// response bodies when the cause of a failure must not be exposed. Keeping
// them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInternalServerError replaces the message of any unexpected
	// server-side failure.
	MsgInternalServerError = "internal server error"

	// MsgNotFound is returned for unknown routes and for known routes called
	// with an unsupported method.
	MsgNotFound = "not found"

	// MsgCheckInbox answers reset and resend requests. It is identical
	// whether or not the address belongs to an account.
	MsgCheckInbox = "if the address belongs to an account, an email has been sent"

	// MsgAuthenticationRequired is returned by the auth middleware when the
	// session token is missing, malformed, expired or revoked.
	MsgAuthenticationRequired = "authentication required"

	// MsgInvalidGzipBody is returned when a request declares gzip encoding
	// but its body cannot be decompressed.
	MsgInvalidGzipBody = "invalid gzip data"
)
