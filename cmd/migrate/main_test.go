package main

import (
	"strconv"
	"testing"
)

func TestMigrationFilenamePattern(t *testing.T) {
	tests := []struct {
		filename string
		valid    bool
		version  int
		name     string
	}{
		{"0001_create_receipts.sql", true, 1, "create_receipts"},
		{"0002_create_transactions.sql", true, 2, "create_transactions"},
		{"001_invalid.sql", false, 0, ""},        // wrong number format
		{"0001_test", false, 0, ""},              // missing .sql
		{"0001.sql", false, 0, ""},               // missing name
		{"invalid_0001_test.sql", false, 0, ""},  // wrong order
		{"0001_with.dots.sql", true, 1, "with.dots"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			matches := migrationFilePattern.FindStringSubmatch(tt.filename)
			if (matches != nil) != tt.valid {
				t.Fatalf("pattern match = %t, want %t", matches != nil, tt.valid)
			}
			if !tt.valid {
				return
			}

			version, err := strconv.Atoi(matches[1])
			if err != nil {
				t.Fatalf("parsing version: %v", err)
			}
			if version != tt.version {
				t.Errorf("version = %d, want %d", version, tt.version)
			}
			if matches[2] != tt.name {
				t.Errorf("name = %q, want %q", matches[2], tt.name)
			}
		})
	}
}

func TestRenderSQL(t *testing.T) {
	sql := "CREATE TABLE `{{PROJECT_ID}}.{{DATASET_ID}}.receipts` (id STRING); -- {{PROJECT_ID}}"

	got := renderSQL(sql, "my-project", "receipts")
	want := "CREATE TABLE `my-project.receipts.receipts` (id STRING); -- my-project"
	if got != want {
		t.Errorf("renderSQL() = %q, want %q", got, want)
	}
}
