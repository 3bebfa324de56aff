// Package store keeps registered users in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/horizons-app/horizons/internal/models"
)

var (
	ErrUserExists         = errors.New("store: username or email already registered")
	ErrInvalidCredentials = errors.New("store: invalid credentials")
	ErrNotFound           = errors.New("store: user not found")
	ErrInvalidUsername    = errors.New("store: invalid username")
	ErrPasswordTooLong    = errors.New("store: password longer than 72 bytes")
)

// MaxPasswordBytes is the longest password bcrypt can hash.
const MaxPasswordBytes = 72

type userRow struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    string `db:"created_at"`
}

func (r userRow) user() *models.User {
	return &models.User{ID: r.ID, Username: r.Username, Email: r.Email}
}

// Store wraps a SQLite connection holding the users table.
type Store struct {
	conn *sqlx.DB
	cost int
}

// Open opens or creates a SQLite database at the given path. Use
// ":memory:" for a throwaway database.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// SQLite allows one writer, and ":memory:" is private to a connection.
	conn.SetMaxOpenConns(1)

	s := &Store{conn: conn, cost: bcrypt.DefaultCost}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// SetHashCost changes the bcrypt cost of new passwords. Tests lower it.
func (s *Store) SetHashCost(cost int) { s.cost = cost }

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// CreateUser registers a user with a bcrypt hash of password.
// The username also names the local profile directory, so it must be a
// valid profile name.
func (s *Store) CreateUser(ctx context.Context, username, email, password string) (*models.User, error) {
	if !models.ValidProfileName(username) {
		return nil, ErrInvalidUsername
	}
	if len(password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	var n int
	err := s.conn.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM users WHERE email = ? OR username = ?`, email, username)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if n > 0 {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`,
		username, email, string(hash))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &models.User{ID: id, Username: username, Email: email}, nil
}

// Authenticate returns the user with email if password matches.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var row userRow
	err := s.conn.GetContext(ctx, &row, `SELECT * FROM users WHERE email = ?`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return row.user(), nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var row userRow
	err := s.conn.GetContext(ctx, &row, `SELECT * FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return row.user(), nil
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}
