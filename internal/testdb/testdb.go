// Package testdb opens isolated in-memory sqlite databases for service
// tests. Each test gets a uniquely named shared-cache database with the
// full schema migrated.
package testdb

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vegmart/vegmart/internal/domain"
)

// New returns a migrated in-memory database scoped to the test. The
// connection pool is capped at one so concurrent test writers serialize
// instead of hitting sqlite busy errors.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}
