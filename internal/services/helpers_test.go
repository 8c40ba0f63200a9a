package services

import (
	"testing"

	"github.com/Conceptual-Machines/chordbook-api/internal/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testMaxTranspose = 12

const amazingGrace = `{title: Amazing Grace}
{key: G}
{start_of_verse}
[G]Amazing [G7]grace, how [C]sweet the [G]sound
{end_of_verse}`

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect("sqlite://:memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
