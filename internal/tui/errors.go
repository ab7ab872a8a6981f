// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-blog/internal/store"
)

// humanizeError shortens database errors for the status line.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, store.ErrUnknownTable) {
		return "No such table"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Database is unreachable"
	}

	return err.Error()
}
