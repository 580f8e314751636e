package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/perbu/advomatch/pkg/advocate"

	_ "modernc.org/sqlite" // cgo-free driver
)

const schema = `
CREATE TABLE IF NOT EXISTS advocates (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name          TEXT    NOT NULL,
	last_name           TEXT    NOT NULL,
	city                TEXT    NOT NULL,
	degree              TEXT    NOT NULL,
	specialties         TEXT    NOT NULL DEFAULT '[]',
	years_of_experience INTEGER NOT NULL,
	phone_number        TEXT    NOT NULL,
	created_at          INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
);`

// SQLiteStore is the durable advocate store.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma failed: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema failed: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Path returns the database path.
func (s *SQLiteStore) Path() string { return s.path }

// Insert stores a and returns the assigned id. A non-zero a.ID is kept.
func (s *SQLiteStore) Insert(ctx context.Context, a advocate.Advocate) (int64, error) {
	return insert(ctx, s.db, a)
}

// ReplaceAll deletes every advocate and inserts the given ones in one transaction.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, advocates []advocate.Advocate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM advocates"); err != nil {
		return fmt.Errorf("clear advocates: %w", err)
	}
	for _, a := range advocates {
		if _, err := insert(ctx, tx, a); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListAdvocates returns all advocates ordered by id.
func (s *SQLiteStore) ListAdvocates(ctx context.Context) ([]advocate.Advocate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, city, degree, specialties,
		       years_of_experience, phone_number, created_at
		FROM advocates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query advocates: %w", err)
	}
	defer rows.Close()

	var advocates []advocate.Advocate
	for rows.Next() {
		var (
			a           advocate.Advocate
			specialties string
			createdAt   int64
		)
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.City, &a.Degree,
			&specialties, &a.YearsOfExperience, &a.PhoneNumber, &createdAt); err != nil {
			return nil, fmt.Errorf("scan advocate: %w", err)
		}
		if err := json.Unmarshal([]byte(specialties), &a.Specialties); err != nil {
			return nil, fmt.Errorf("advocate %d: decode specialties: %w", a.ID, err)
		}
		a.CreatedAt = time.Unix(createdAt, 0).UTC()
		advocates = append(advocates, a)
	}
	return advocates, rows.Err()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, db execer, a advocate.Advocate) (int64, error) {
	specialties := a.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	specialtiesJSON, err := json.Marshal(specialties)
	if err != nil {
		return 0, fmt.Errorf("encode specialties: %w", err)
	}

	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var id any
	if a.ID != 0 {
		id = a.ID
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO advocates (id, first_name, last_name, city, degree, specialties,
		                       years_of_experience, phone_number, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, a.FirstName, a.LastName, a.City, a.Degree, string(specialtiesJSON),
		a.YearsOfExperience, a.PhoneNumber, createdAt.Unix())
	if err != nil {
		return 0, fmt.Errorf("insert advocate %q: %w", a.FullName(), err)
	}
	return res.LastInsertId()
}
