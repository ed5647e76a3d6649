package auditlog

import (
	"database/sql"
	"fmt"
	"time"

	"nathanbeddoewebdev/dcm/internal/database"
)

// Repository defines the persistence interface for audit entries.
type Repository interface {
	Save(entry *AuditEntry) error
	List(limit int) ([]AuditEntry, error)
	ListByCommand(command string, limit int) ([]AuditEntry, error)
	ListByResource(resourceType, resourceID string, limit int) ([]AuditEntry, error)
	CountBefore(cutoff time.Time) (int64, error)
	PruneBefore(cutoff time.Time) (int64, error)
	Close() error
}

var _ Repository = (*SQLiteRepository)(nil)

// SQLiteRepository implements Repository on the dcm SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS audit_log (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp     TEXT    NOT NULL,
    command       TEXT    NOT NULL,
    args          TEXT    NOT NULL DEFAULT '',
    provider      TEXT    NOT NULL DEFAULT '',
    resource_type TEXT    NOT NULL DEFAULT '',
    resource_id   TEXT    NOT NULL DEFAULT '',
    resource_name TEXT    NOT NULL DEFAULT '',
    outcome       TEXT    NOT NULL DEFAULT '',
    detail        TEXT    NOT NULL DEFAULT '',
    duration_ms   INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_audit_log_timestamp ON audit_log(timestamp);
CREATE INDEX IF NOT EXISTS idx_audit_log_command ON audit_log(command);
CREATE INDEX IF NOT EXISTS idx_audit_log_resource ON audit_log(resource_type, resource_id);
`

const selectEntries = `
SELECT id, timestamp, command, args, provider, resource_type, resource_id,
       resource_name, outcome, detail, duration_ms
FROM audit_log`

// Open creates or opens the audit repository at the default database path.
func Open() (*SQLiteRepository, error) {
	db, err := database.OpenDefault()
	if err != nil {
		return nil, fmt.Errorf("auditlog: %w", err)
	}
	return newRepository(db)
}

// OpenAt creates or opens the audit repository at path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("auditlog: %w", err)
	}
	return newRepository(db)
}

func newRepository(db *sql.DB) (*SQLiteRepository, error) {
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("auditlog: migration failed: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// Save inserts entry and assigns its ID. A zero timestamp is set to now.
func (r *SQLiteRepository) Save(entry *AuditEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	result, err := r.db.Exec(`
INSERT INTO audit_log (timestamp, command, args, provider, resource_type,
                       resource_id, resource_name, outcome, detail, duration_ms)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		formatTime(entry.Timestamp), entry.Command, entry.Args, entry.Provider,
		entry.ResourceType, entry.ResourceID, entry.ResourceName,
		entry.Outcome, entry.Detail, entry.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("auditlog: insert failed: %w", err)
	}

	if entry.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("auditlog: failed to get last insert ID: %w", err)
	}
	return nil
}

// List returns the most recent limit entries, newest first.
func (r *SQLiteRepository) List(limit int) ([]AuditEntry, error) {
	return r.query(selectEntries+` ORDER BY timestamp DESC LIMIT ?`, limit)
}

// ListByCommand returns the most recent limit entries for a command.
func (r *SQLiteRepository) ListByCommand(command string, limit int) ([]AuditEntry, error) {
	return r.query(selectEntries+` WHERE command = ? ORDER BY timestamp DESC LIMIT ?`, command, limit)
}

// ListByResource returns the most recent limit entries touching one
// resource, e.g. ("provider", providerUUID).
func (r *SQLiteRepository) ListByResource(resourceType, resourceID string, limit int) ([]AuditEntry, error) {
	return r.query(selectEntries+` WHERE resource_type = ? AND resource_id = ? ORDER BY timestamp DESC LIMIT ?`,
		resourceType, resourceID, limit)
}

// CountBefore reports how many entries PruneBefore(cutoff) would remove.
func (r *SQLiteRepository) CountBefore(cutoff time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM audit_log WHERE timestamp < ?`, formatTime(cutoff)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("auditlog: count failed: %w", err)
	}
	return n, nil
}

// PruneBefore deletes entries recorded before cutoff.
func (r *SQLiteRepository) PruneBefore(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM audit_log WHERE timestamp < ?`, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("auditlog: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) query(q string, args ...any) ([]AuditEntry, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("auditlog: query failed: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var (
			entry AuditEntry
			ts    string
		)
		err := rows.Scan(
			&entry.ID, &ts, &entry.Command, &entry.Args, &entry.Provider,
			&entry.ResourceType, &entry.ResourceID, &entry.ResourceName,
			&entry.Outcome, &entry.Detail, &entry.DurationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("auditlog: scan failed: %w", err)
		}
		entry.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// formatTime stores timestamps in UTC so lexical order matches time order.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
