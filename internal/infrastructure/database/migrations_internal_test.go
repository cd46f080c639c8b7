package database

import "testing"

func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		name    string
		version string
		isUp    bool
		ok      bool
	}{
		{"20260115_120000_initial_schema.up.sql", "20260115_120000", true, true},
		{"20260115_120000_initial_schema.down.sql", "20260115_120000", false, true},
		{"README.md", "", false, false},
		{"bad.sql", "", false, false},
	}

	for _, tt := range tests {
		version, isUp, ok := parseMigrationFilename(tt.name)
		if version != tt.version || isUp != tt.isUp || ok != tt.ok {
			t.Errorf("parseMigrationFilename(%q) = (%q, %v, %v), want (%q, %v, %v)",
				tt.name, version, isUp, ok, tt.version, tt.isUp, tt.ok)
		}
	}
}
