package repositories

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// Схема для тестовой БД; зеркалит migrations/001_init.sql.
const testSchema = `
CREATE TABLE users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	email         TEXT      NOT NULL UNIQUE,
	full_name     TEXT      NOT NULL DEFAULT '',
	password_hash TEXT      NOT NULL,
	is_active     BOOLEAN   NOT NULL DEFAULT 1,
	is_staff      BOOLEAN   NOT NULL DEFAULT 0,
	is_superuser  BOOLEAN   NOT NULL DEFAULT 0,
	created_at    TIMESTAMP NOT NULL
);

CREATE TABLE tags (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL
);

CREATE TABLE tasks (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    INTEGER   NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	title      TEXT      NOT NULL,
	body       TEXT      NOT NULL DEFAULT '',
	end_date   TIMESTAMP NOT NULL,
	created_at TIMESTAMP NOT NULL,
	task_type  TEXT      NOT NULL DEFAULT 'task',
	status     TEXT      NOT NULL DEFAULT 'new'
);

CREATE TABLE task_tags (
	task_id INTEGER NOT NULL REFERENCES tasks (id) ON DELETE CASCADE,
	tag_id  INTEGER NOT NULL REFERENCES tags (id) ON DELETE CASCADE,
	PRIMARY KEY (task_id, tag_id)
);
`

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", "file:"+path+"?_foreign_keys=on")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}
