// Package testkit provides shared fixtures for the storefront's tests:
// an isolated in-memory database per test and helpers for exercising
// HTTP handlers.
package testkit

import (
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/favourfurniture/storefront/pkg/database"
	"github.com/favourfurniture/storefront/pkg/event"
)

// NewDB opens a fresh in-memory SQLite database, migrates the given models
// into it, and installs it as the global connection for the duration of the
// test. Each test gets its own database; the previous global connection is
// restored on cleanup.
func NewDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	// A named in-memory database with shared cache keeps the data alive
	// across the pooled connections gorm opens, while staying private to
	// this test.
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("testkit: open sqlite: %v", err)
	}

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			t.Fatalf("testkit: migrate: %v", err)
		}
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// FlushEvents removes all event listeners after the test so listeners
// registered by one test cannot observe another test's events.
func FlushEvents(t *testing.T) {
	t.Helper()
	t.Cleanup(event.Flush)
}
