package storage

import (
	"strings"
	"testing"
)

func TestMigrationsOrdered(t *testing.T) {
	seen := map[int]bool{}
	prev := 0
	for _, m := range Migrations {
		if m.Version <= prev {
			t.Errorf("migration %d is out of order after %d", m.Version, prev)
		}
		if seen[m.Version] {
			t.Errorf("duplicate migration version %d", m.Version)
		}
		seen[m.Version] = true
		prev = m.Version

		if strings.TrimSpace(m.Up) == "" || strings.TrimSpace(m.Down) == "" {
			t.Errorf("migration %d needs both up and down SQL", m.Version)
		}
		if m.Description == "" {
			t.Errorf("migration %d has no description", m.Version)
		}
	}
}

func TestMigrationsCreateTables(t *testing.T) {
	var all strings.Builder
	for _, m := range Migrations {
		all.WriteString(m.Up)
	}
	for _, table := range []string{"users", "candidates", "interests", "candidate_views", "search_activity"} {
		if !strings.Contains(all.String(), "CREATE TABLE IF NOT EXISTS "+table) {
			t.Errorf("no migration creates %s", table)
		}
	}
}

func TestInterestsOutliveCandidates(t *testing.T) {
	for _, m := range Migrations {
		if !strings.Contains(m.Up, "CREATE TABLE IF NOT EXISTS interests") &&
			!strings.Contains(m.Up, "CREATE TABLE IF NOT EXISTS candidate_views") {
			continue
		}
		up := strings.ToUpper(m.Up)
		if strings.Contains(up, "REFERENCES") || strings.Contains(up, "CASCADE") {
			t.Errorf("migration %d ties rows to candidates; deleting a candidate must keep them", m.Version)
		}
	}
}
