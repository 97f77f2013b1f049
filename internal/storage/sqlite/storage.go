// Package sqlite provides SQLite-backed persistence for the notification
// snapshot that survives process restarts.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/deliverly/ordertray/internal/domain"
	"github.com/deliverly/ordertray/internal/store"
)

// schemaVersion is bumped when the snapshot layout changes; older snapshots
// are discarded rather than migrated.
const schemaVersion = "1"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS notifications (
	position    INTEGER NOT NULL,
	id          TEXT PRIMARY KEY,
	type        TEXT NOT NULL,
	title       TEXT NOT NULL,
	message     TEXT NOT NULL,
	data        TEXT NOT NULL DEFAULT '{}',
	priority    TEXT NOT NULL,
	actions     TEXT NOT NULL DEFAULT '[]',
	timestamp   TEXT NOT NULL,
	read        INTEGER NOT NULL DEFAULT 0,
	expires_at  TEXT
);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

const (
	metaSchemaVersion     = "schema_version"
	metaUnreadCount       = "unread_count"
	metaPermissionGranted = "permission_granted"
)

// ErrEmptyPath indicates the snapshot path was not provided.
var ErrEmptyPath = errors.New("sqlite snapshot: db path cannot be empty")

// SnapshotStorage persists store snapshots in a SQLite database.
type SnapshotStorage struct {
	db *sql.DB
}

// NewSnapshotStorage opens (or creates) the snapshot database at dbPath.
func NewSnapshotStorage(dbPath string) (*SnapshotStorage, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, ErrEmptyPath
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite snapshot: create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite snapshot: open db: %w", err)
	}
	s := &SnapshotStorage{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying SQLite connection.
func (s *SnapshotStorage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SnapshotStorage) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite snapshot: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite snapshot: create schema: %w", err)
	}
	return nil
}

// Save replaces the stored snapshot atomically.
func (s *SnapshotStorage) Save(snap store.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite snapshot: begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM notifications"); err != nil {
		return fmt.Errorf("sqlite snapshot: clear notifications: %w", err)
	}
	for i, n := range snap.Notifications {
		data, err := json.Marshal(n.Data)
		if err != nil {
			return fmt.Errorf("sqlite snapshot: encode data for %s: %w", n.ID, err)
		}
		actions, err := json.Marshal(n.Actions)
		if err != nil {
			return fmt.Errorf("sqlite snapshot: encode actions for %s: %w", n.ID, err)
		}
		var expiresAt any
		if n.ExpiresAt != nil {
			expiresAt = n.ExpiresAt.UTC().Format(time.RFC3339Nano)
		}
		_, err = tx.Exec(
			`INSERT INTO notifications
			 (position, id, type, title, message, data, priority, actions, timestamp, read, expires_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, n.ID, n.Type.String(), n.Title, n.Message, string(data),
			n.Priority.String(), string(actions),
			n.Timestamp.UTC().Format(time.RFC3339Nano), boolToInt(n.Read), expiresAt,
		)
		if err != nil {
			return fmt.Errorf("sqlite snapshot: insert notification %s: %w", n.ID, err)
		}
	}

	meta := map[string]string{
		metaSchemaVersion:     schemaVersion,
		metaUnreadCount:       strconv.Itoa(snap.UnreadCount),
		metaPermissionGranted: strconv.FormatBool(snap.PermissionGranted),
	}
	for key, value := range meta {
		if _, err := tx.Exec(
			`INSERT INTO meta (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, value,
		); err != nil {
			return fmt.Errorf("sqlite snapshot: write meta %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite snapshot: commit save: %w", err)
	}
	return nil
}

// Load reads the stored snapshot. The second return value is false when no
// snapshot has been written yet or the schema version does not match.
func (s *SnapshotStorage) Load() (store.Snapshot, bool, error) {
	var version string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = ?", metaSchemaVersion).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Snapshot{}, false, nil
	}
	if err != nil {
		return store.Snapshot{}, false, fmt.Errorf("sqlite snapshot: read schema version: %w", err)
	}
	if version != schemaVersion {
		return store.Snapshot{}, false, nil
	}

	rows, err := s.db.Query(
		`SELECT id, type, title, message, data, priority, actions, timestamp, read, expires_at
		 FROM notifications ORDER BY position ASC`)
	if err != nil {
		return store.Snapshot{}, false, fmt.Errorf("sqlite snapshot: list notifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snap store.Snapshot
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return store.Snapshot{}, false, err
		}
		snap.Notifications = append(snap.Notifications, n)
	}
	if err := rows.Err(); err != nil {
		return store.Snapshot{}, false, fmt.Errorf("sqlite snapshot: iterate notifications: %w", err)
	}

	snap.UnreadCount, err = s.metaInt(metaUnreadCount)
	if err != nil {
		return store.Snapshot{}, false, err
	}
	snap.PermissionGranted, err = s.metaBool(metaPermissionGranted)
	if err != nil {
		return store.Snapshot{}, false, err
	}
	return snap, true, nil
}

func scanNotification(rows *sql.Rows) (domain.Notification, error) {
	var (
		n         domain.Notification
		ntype     string
		priority  string
		data      string
		actions   string
		timestamp string
		read      int
		expiresAt sql.NullString
	)
	if err := rows.Scan(&n.ID, &ntype, &n.Title, &n.Message, &data, &priority,
		&actions, &timestamp, &read, &expiresAt); err != nil {
		return domain.Notification{}, fmt.Errorf("sqlite snapshot: scan notification: %w", err)
	}
	n.Type = domain.NotificationType(ntype)
	n.Priority = domain.Priority(priority)
	n.Read = read != 0
	if err := json.Unmarshal([]byte(data), &n.Data); err != nil {
		return domain.Notification{}, fmt.Errorf("sqlite snapshot: decode data for %s: %w", n.ID, err)
	}
	if err := json.Unmarshal([]byte(actions), &n.Actions); err != nil {
		return domain.Notification{}, fmt.Errorf("sqlite snapshot: decode actions for %s: %w", n.ID, err)
	}
	ts, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return domain.Notification{}, fmt.Errorf("sqlite snapshot: parse timestamp for %s: %w", n.ID, err)
	}
	n.Timestamp = ts
	if expiresAt.Valid && expiresAt.String != "" {
		exp, err := time.Parse(time.RFC3339Nano, expiresAt.String)
		if err != nil {
			return domain.Notification{}, fmt.Errorf("sqlite snapshot: parse expiry for %s: %w", n.ID, err)
		}
		n.ExpiresAt = &exp
	}
	return n, nil
}

func (s *SnapshotStorage) metaInt(key string) (int, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("sqlite snapshot: read meta %s: %w", key, err)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("sqlite snapshot: parse meta %s: %w", key, err)
	}
	return n, nil
}

func (s *SnapshotStorage) metaBool(key string) (bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sqlite snapshot: read meta %s: %w", key, err)
	}
	return value == "true", nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
