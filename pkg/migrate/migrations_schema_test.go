package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kindbridge/kindbridge-backend/pkg/migrate"
)

func TestValidateMigrationsDir(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir invalid: %v", err)
	}
}

func TestOrphanagesMigrationEnforcesOneRegistrationPerUser(t *testing.T) {
	content := readMigration(t, "*_create_orphanages.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS orphanages",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_orphanages_user_id",
		"FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE",
		"CHECK (capacity >= 0)",
		"DROP TABLE IF EXISTS orphanages",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestVolunteerProfilesMigrationEnforcesOneProfilePerUser(t *testing.T) {
	content := readMigration(t, "*_create_volunteer_profiles.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS volunteer_profiles",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_volunteer_profiles_user_id",
		"skills TEXT[] NOT NULL DEFAULT '{}'",
		"availability TEXT[] NOT NULL DEFAULT '{}'",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestChildrenMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_children.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS children",
		"FOREIGN KEY (orphanage_id) REFERENCES orphanages(id) ON DELETE CASCADE",
		"CHECK (gender IN ('MALE', 'FEMALE', 'OTHER'))",
		"WHERE is_adopted = FALSE",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestActivitiesMigrationConstrainsStatus(t *testing.T) {
	content := readMigration(t, "*_create_activities.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS activities",
		"CHECK (status IN ('scheduled', 'completed', 'cancelled'))",
		"FOREIGN KEY (volunteer_id) REFERENCES volunteer_profiles(id) ON DELETE CASCADE",
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
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
