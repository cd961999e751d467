package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"libris/internal/database"
)

// MustOpenTestDB opens a uniquely-named in-memory SQLite database so parallel
// tests never share state. The returned connection is automatically closed
// via t.Cleanup.
func MustOpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := database.Open(database.Config{DSN: dsn})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = database.Close(db)
	})

	return db
}
