package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mvillegas/cabstock-backend/pkg/migrate"
)

func TestMigrationDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestInitSchemaMigrationCoversAllTables(t *testing.T) {
	content := readMigration(t, "*_init_schema.sql")

	checks := []string{
		"CREATE TABLE cabs",
		"CREATE TABLE accessories",
		"CREATE TABLE materials",
		"CREATE TABLE customers",
		"CREATE TABLE users",
		"CREATE TABLE sales",
		"CREATE TABLE sale_items",
		"REFERENCES sales (id) ON DELETE CASCADE",
		"CONSTRAINT uq_customers_email UNIQUE (email)",
		"CONSTRAINT uq_users_email UNIQUE (email)",
		"DROP TABLE IF EXISTS cabs",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestActivityLogsMigration(t *testing.T) {
	content := readMigration(t, "*_add_activity_logs.sql")

	checks := []string{
		"CREATE TABLE activity_logs",
		"idx_activity_logs_timestamp",
		"DROP TABLE IF EXISTS activity_logs",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration file matching %q", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
