package database

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the SQLite database at dbUrl and migrates it to the
// latest survey schema before returning. Any migration failure closes the
// handle.
//
// An in-memory database lives only as long as its connection, so for those
// the pool is pinned to one connection that is never recycled.
func Open(dbUrl string) (db *sql.DB, err error) {
	db, err = sql.Open("sqlite3", dbUrl)
	if err != nil {
		return
	}

	if IsMemory(dbUrl) {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxIdleTime(0)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(10)
		db.SetConnMaxIdleTime(5 * time.Minute)
		db.SetConnMaxLifetime(2 * time.Hour)
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		db.Close()
		return
	}

	err = migrateDB(db)
	if err != nil {
		db.Close()
		return
	}

	return
}

// IsMemory reports whether dbUrl names a SQLite in-memory database.
func IsMemory(dbUrl string) bool {
	return dbUrl == ":memory:" ||
		strings.HasPrefix(dbUrl, "file::memory:") ||
		strings.Contains(dbUrl, "mode=memory")
}
