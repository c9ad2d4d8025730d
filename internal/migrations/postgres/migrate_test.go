package postgres

import (
	"strings"
	"testing"
)

func TestNames_SortedSQLFiles(t *testing.T) {
	names, err := Names()
	if err != nil {
		t.Fatalf("Names() error = %v", err)
	}
	if len(names) < 2 {
		t.Fatalf("expected at least 2 migrations, got %v", names)
	}
	for i, name := range names {
		if !strings.HasSuffix(name, ".sql") {
			t.Errorf("unexpected file %q", name)
		}
		if i > 0 && names[i-1] >= name {
			t.Errorf("migrations not sorted: %v", names)
		}
	}
}

func TestSchema_CascadesReservations(t *testing.T) {
	data, err := migrationFiles.ReadFile("001_schema.sql")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if !strings.Contains(string(data), "REFERENCES spaces(id) ON DELETE CASCADE") {
		t.Error("reservations must cascade when their space is deleted")
	}
}
