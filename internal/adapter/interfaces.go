// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound notification channel used to deliver
// verification and password-reset links.
//
// The primary abstraction is [Mailer], which decouples the service layer from
// the delivery mechanism. Three implementations are shipped and selected by
// [NewMailer] from the mail configuration:
//   - log:  the message is written to the application log only (development);
//   - smtp: the message is sent through an SMTP server with PLAIN auth;
//   - http: the message is POSTed as JSON to a relay service.
//
// Relay responses are mapped from HTTP status codes by mapHTTPError so that
// callers can use [errors.Is] against the sentinel errors in errors.go.
package adapter

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/mailer_mock.go -package=mock

// Message is a single plain-text mail.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Mailer delivers a message out of band. Delivery failures are returned to
// the caller and never retried by the implementation.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
