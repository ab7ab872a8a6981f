// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	_ = mock // goose talks to the db itself; every unexpected call fails

	err = Migrate(db, "postgres")
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db, "postgres")
	if err == nil || !strings.Contains(err.Error(), "db is nil") {
		t.Fatalf("expected 'db is nil' error, got: %v", err)
	}
}

func TestMigrate_UnknownDriver(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	err = Migrate(db, "mysql")
	if err == nil || !strings.Contains(err.Error(), "unsupported driver") {
		t.Fatalf("expected unsupported driver error, got: %v", err)
	}
}

// TestEmbeddedMigrations_DialectsInStep checks that both dialect directories
// carry the same migration versions.
func TestEmbeddedMigrations_DialectsInStep(t *testing.T) {
	names := func(dir string) []string {
		entries, err := fs.ReadDir(embedMigrations, dir)
		if err != nil {
			t.Fatalf("reading %s: %v", dir, err)
		}
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.Name())
		}
		return out
	}

	pg, lite := names("postgres"), names("sqlite")
	if len(pg) == 0 {
		t.Fatal("expected embedded postgres migrations")
	}
	if strings.Join(pg, ",") != strings.Join(lite, ",") {
		t.Errorf("dialects out of step: postgres=%v sqlite=%v", pg, lite)
	}

	for _, name := range pg {
		data, _ := fs.ReadFile(embedMigrations, "postgres/"+name)
		if !strings.Contains(string(data), "-- +goose Up") || !strings.Contains(string(data), "-- +goose Down") {
			t.Errorf("%s lacks goose annotations", name)
		}
	}
}
