package orphanages

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kindbridge/kindbridge-backend/pkg/db"
	"github.com/kindbridge/kindbridge-backend/pkg/db/models"
)

func setupOrphanagesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	orphanagesDDL := `
CREATE TABLE IF NOT EXISTS orphanages (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  city TEXT NOT NULL DEFAULT '',
  state TEXT NOT NULL DEFAULT '',
  country TEXT NOT NULL DEFAULT '',
  postal_code TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  capacity INTEGER NOT NULL DEFAULT 0,
  website TEXT,
  registration_number TEXT NOT NULL DEFAULT '',
  is_approved INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(`DROP TABLE IF EXISTS orphanages`).Error)
	require.NoError(t, conn.Exec(orphanagesDDL).Error)
	require.NoError(t, conn.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_orphanages_user_id ON orphanages (user_id)`).Error)
	return conn
}

func TestCreateEnforcesOneOrphanagePerUser(t *testing.T) {
	conn := setupOrphanagesTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	first := &models.Orphanage{UserID: "user_1", Name: "Sunrise Home", Email: "a@example.com"}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.Orphanage{UserID: "user_1", Name: "Second Home", Email: "b@example.com"}
	err := repo.Create(ctx, second)
	require.Error(t, err)
	require.True(t, db.IsUniqueViolation(err), "expected unique violation, got %v", err)
}

func TestFindByUserID(t *testing.T) {
	conn := setupOrphanagesTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created := &models.Orphanage{UserID: "user_1", Name: "Sunrise Home", Email: "a@example.com"}
	require.NoError(t, repo.Create(ctx, created))

	found, err := repo.FindByUserID(ctx, "user_1")
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)

	_, err = repo.FindByUserID(ctx, "user_2")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateFieldsRefreshesUpdatedAt(t *testing.T) {
	conn := setupOrphanagesTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created := &models.Orphanage{UserID: "user_1", Name: "Sunrise Home", Email: "a@example.com"}
	require.NoError(t, repo.Create(ctx, created))
	before := created.UpdatedAt

	require.NoError(t, repo.UpdateFields(ctx, created.ID, map[string]any{"name": "Renamed Home"}))

	updated, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed Home", updated.Name)
	require.False(t, updated.UpdatedAt.Before(before))
}

func TestUpdateFieldsNoopOnEmptyPatch(t *testing.T) {
	conn := setupOrphanagesTestDB(t)
	repo := NewRepository(conn)

	require.NoError(t, repo.UpdateFields(context.Background(), uuid.New(), map[string]any{}))
}
