// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package dbviewer implements the runtime of the read-only database viewer.
//
// It wires the database introspector into either the interactive terminal
// UI or the one-shot text dump.
package dbviewer
