// Package sqlite persists recruiter contact submissions. The original
// deployment forwarded contacts to an external workspace tool; this
// adapter keeps them in a local SQLite database instead so the backend
// has no third-party data dependency.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vrcrush/ai-interview-clone/internal/adapter/httpapi"
)

// Store implements httpapi.ContactStore using SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a new SQLite store at the given path.
// Use ":memory:" for an in-memory database (useful for testing).
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return s, nil
}

// createSchema creates all tables and indexes if they don't exist.
func (s *Store) createSchema() error {
	schema := `
	-- Recruiter contact submissions from the chat frontend
	CREATE TABLE IF NOT EXISTS contacts (
		contact_id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		company TEXT,
		linkedin TEXT,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_contacts_created ON contacts(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_contacts_email ON contacts(email);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveContact stores one recruiter contact submission.
func (s *Store) SaveContact(ctx context.Context, contact httpapi.Contact) error {
	query := `
		INSERT INTO contacts (name, email, company, linkedin, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		contact.Name,
		contact.Email,
		contact.Company,
		contact.LinkedIn,
		time.Now().Unix(),
	)

	if err != nil {
		return fmt.Errorf("failed to save contact: %w", err)
	}

	return nil
}

// ContactRecord is a stored contact with its submission time.
type ContactRecord struct {
	ContactID int
	Name      string
	Email     string
	Company   string
	LinkedIn  string
	CreatedAt time.Time
}

// ListContacts retrieves the most recent contacts, limited by count.
func (s *Store) ListContacts(ctx context.Context, limit int) ([]ContactRecord, error) {
	query := `
		SELECT contact_id, name, email, company, linkedin, created_at
		FROM contacts
		ORDER BY created_at DESC, contact_id DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []ContactRecord
	for rows.Next() {
		var record ContactRecord
		var createdAt int64

		if err := rows.Scan(
			&record.ContactID,
			&record.Name,
			&record.Email,
			&record.Company,
			&record.LinkedIn,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}

		record.CreatedAt = time.Unix(createdAt, 0)
		contacts = append(contacts, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}

	return contacts, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
