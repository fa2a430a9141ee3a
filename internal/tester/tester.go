package tester

import (
	"path/filepath"
	"testing"

	"singmeasong/internal/db"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestDB opens a migrated SQLite database in a per-test temp directory.
// The directory is removed by the testing package when the test ends.
func TestDB(t testing.TB) *gorm.DB {
	t.Helper()

	logrus.SetLevel(logrus.ErrorLevel)

	path := filepath.Join(t.TempDir(), "singmeasong.db")
	conn, err := db.Open("sqlite", path)
	require.NoError(t, err, "failed to open test database")

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return conn
}
