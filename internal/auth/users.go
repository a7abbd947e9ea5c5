// internal/auth/users.go
//
// User accounts.
// Defines:
//   - User: a registered player (id, display name, bcrypt hash).
//   - Users: repository interface with SQL and in-memory implementations.
//
// Usernames are unique case-insensitively; the display form keeps its case.

package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/trongtricoder/Footy-Feud/internal/database"
)

var (
	ErrUsernameTaken = errors.New("username taken")
	ErrUserNotFound  = errors.New("user not found")
)

type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"-" json:"createdAt"`
}

type Users interface {
	Create(ctx context.Context, u User) error
	ByUsername(ctx context.Context, username string) (User, error)
	ByID(ctx context.Context, id string) (User, error)
}

// ------------------------------- SQL ----------------------------------------

type SQLUsers struct{ db *database.DB }

func NewSQLUsers(db *database.DB) *SQLUsers { return &SQLUsers{db: db} }

type userRow struct {
	User
	Created string `db:"created_at"`
}

func (s *SQLUsers) Create(ctx context.Context, u User) error {
	var exists int
	err := s.db.GetContext(ctx, &exists,
		s.db.Rebind(`SELECT 1 FROM users WHERE username_lower = ?`), strings.ToLower(u.Username))
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	_, err = s.db.ExecContext(ctx, s.db.Rebind(
		`INSERT INTO users (id, username, username_lower, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`),
		u.ID, u.Username, strings.ToLower(u.Username), u.PasswordHash, u.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *SQLUsers) ByUsername(ctx context.Context, username string) (User, error) {
	return s.one(ctx, `WHERE username_lower = ?`, strings.ToLower(strings.TrimSpace(username)))
}

func (s *SQLUsers) ByID(ctx context.Context, id string) (User, error) {
	return s.one(ctx, `WHERE id = ?`, id)
}

func (s *SQLUsers) one(ctx context.Context, where string, arg any) (User, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(
		`SELECT id, username, password_hash, created_at FROM users `+where), arg)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	u := row.User
	u.CreatedAt, _ = time.Parse(time.RFC3339, row.Created)
	return u, nil
}

// ------------------------------ memory --------------------------------------

// MemoryUsers is a process-local Users for tests and DATABASE_TYPE=memory.
type MemoryUsers struct {
	mu      sync.RWMutex
	byID    map[string]User
	byLower map[string]string
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{byID: map[string]User{}, byLower: map[string]string{}}
}

func (m *MemoryUsers) Create(_ context.Context, u User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(u.Username)
	if _, ok := m.byLower[key]; ok {
		return ErrUsernameTaken
	}
	m.byID[u.ID] = u
	m.byLower[key] = u.ID
	return nil
}

func (m *MemoryUsers) ByUsername(_ context.Context, username string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byLower[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return m.byID[id], nil
}

func (m *MemoryUsers) ByID(_ context.Context, id string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.byID[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}
