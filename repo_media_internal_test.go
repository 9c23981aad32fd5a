package vitals

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

const sqliteCreateUsersForStorage = `CREATE TABLE users (
    id TEXT NOT NULL PRIMARY KEY,
    email TEXT NOT NULL,
    storage_quota_mb INTEGER NOT NULL DEFAULT 500,
    storage_used_mb REAL NOT NULL DEFAULT 0,
    updated_at TIMESTAMP,
    deleted_at TIMESTAMP NULL
);`

func setupStorageDB(t *testing.T, usedMB float64) (*bun.DB, uuid.UUID, func()) {
	t.Helper()

	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	bunDB := bun.NewDB(db, sqlitedialect.New())

	_, err = bunDB.Exec(sqliteCreateUsersForStorage)
	require.NoError(t, err)

	userID := uuid.New()
	_, err = bunDB.Exec(
		"INSERT INTO users (id, email, storage_used_mb) VALUES (?, ?, ?)",
		userID.String(), "quota@example.com", usedMB,
	)
	require.NoError(t, err)

	cleanup := func() {
		_ = bunDB.Close()
		_ = db.Close()
	}

	return bunDB, userID, cleanup
}

func storageUsed(t *testing.T, db *bun.DB, userID uuid.UUID) float64 {
	t.Helper()

	var used float64
	err := db.NewRaw("SELECT storage_used_mb FROM users WHERE id = ?", userID.String()).
		Scan(context.Background(), &used)
	require.NoError(t, err)
	return used
}

func TestAdjustStorageUsed(t *testing.T) {
	tests := []struct {
		name     string
		startMB  float64
		deltaMB  float64
		expected float64
	}{
		{
			name:     "upload accumulates usage",
			startMB:  10.5,
			deltaMB:  2.25,
			expected: 12.75,
		},
		{
			name:     "delete releases usage",
			startMB:  10,
			deltaMB:  -4,
			expected: 6,
		},
		{
			name:     "release beyond usage clamps at zero",
			startMB:  3,
			deltaMB:  -8,
			expected: 0,
		},
		{
			name:     "release from zero stays at zero",
			startMB:  0,
			deltaMB:  -1.5,
			expected: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, userID, cleanup := setupStorageDB(t, tc.startMB)
			defer cleanup()

			err := adjustStorageUsed(context.Background(), db, userID, tc.deltaMB)
			require.NoError(t, err)

			assert.InDelta(t, tc.expected, storageUsed(t, db, userID), 0.0001)
		})
	}
}

func TestAdjustStorageUsedSkipsDeletedUsers(t *testing.T) {
	db, userID, cleanup := setupStorageDB(t, 5)
	defer cleanup()

	_, err := db.Exec("UPDATE users SET deleted_at = CURRENT_TIMESTAMP WHERE id = ?", userID.String())
	require.NoError(t, err)

	require.NoError(t, adjustStorageUsed(context.Background(), db, userID, 3))

	assert.InDelta(t, 5.0, storageUsed(t, db, userID), 0.0001)
}
