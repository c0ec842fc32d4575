// Package store persists summaries of decoded DNS messages to SQLite.
//
// Every capture row records where and when a message arrived plus the
// decoded header essentials and section sizes. Schema changes are managed
// through embedded migrations.
package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Capture is one persisted message summary.
type Capture struct {
	ID          int64     `json:"id"`
	ReceivedAt  time.Time `json:"received_at"`
	Source      string    `json:"source"`
	Size        int       `json:"size"`
	MsgID       uint16    `json:"msg_id"`
	Response    bool      `json:"response"`
	Opcode      uint8     `json:"opcode"`
	RCode       uint8     `json:"rcode"`
	QName       string    `json:"qname"`
	QType       uint16    `json:"qtype"`
	Questions   int       `json:"questions"`
	Answers     int       `json:"answers"`
	Authorities int       `json:"authorities"`
	Additionals int       `json:"additionals"`
}

// Store wraps the SQLite capture database.
type Store struct {
	conn *sql.DB
}

// Open opens or creates the capture database at path and runs any pending
// migrations.
func Open(path string) (*Store, error) {
	// WAL mode for concurrent reads while the tap is inserting.
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	if err := runMigrations(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Store{conn: conn}, nil
}

// runMigrations applies the embedded migrations to the open connection.
func runMigrations(conn *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("preparing migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("preparing migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Health checks database connectivity.
func (s *Store) Health() error {
	return s.conn.Ping()
}

// Insert persists one capture and returns its row ID.
func (s *Store) Insert(c Capture) (int64, error) {
	res, err := s.conn.Exec(`
		INSERT INTO captures (
			received_at, source, size, msg_id, response, opcode, rcode,
			qname, qtype, questions, answers, authorities, additionals
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		c.ReceivedAt.UTC(), c.Source, c.Size, c.MsgID, c.Response, c.Opcode,
		c.RCode, c.QName, c.QType, c.Questions, c.Answers, c.Authorities,
		c.Additionals,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert capture: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit captures, newest first.
func (s *Store) Recent(limit int) ([]Capture, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.conn.Query(`
		SELECT id, received_at, source, size, msg_id, response, opcode,
		       rcode, qname, qtype, questions, answers, authorities, additionals
		FROM captures
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query captures: %w", err)
	}
	defer rows.Close()

	var out []Capture
	for rows.Next() {
		var c Capture
		if err := rows.Scan(
			&c.ID, &c.ReceivedAt, &c.Source, &c.Size, &c.MsgID, &c.Response,
			&c.Opcode, &c.RCode, &c.QName, &c.QType, &c.Questions, &c.Answers,
			&c.Authorities, &c.Additionals,
		); err != nil {
			return nil, fmt.Errorf("failed to scan capture: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Count returns the total number of stored captures.
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.conn.QueryRow("SELECT COUNT(*) FROM captures").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count captures: %w", err)
	}
	return n, nil
}
