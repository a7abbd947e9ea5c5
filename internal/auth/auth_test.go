package auth

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/trongtricoder/Footy-Feud/internal/database"
)

func newService(t *testing.T, users Users) *Service {
	t.Helper()
	return NewService(users, Options{Secret: []byte("test-secret"), TTL: time.Hour, Cost: bcrypt.MinCost}, zerolog.New(io.Discard))
}

func sqlUsers(t *testing.T) *SQLUsers {
	t.Helper()
	db, err := database.Open(context.Background(), database.Config{Type: "sqlite", Path: database.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLUsers(db)
}

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name string
		c    Credentials
		ok   bool
	}{
		{"valid", Credentials{"kit_22", "secret"}, true},
		{"dash", Credentials{"a-b", "secret"}, true},
		{"short name", Credentials{"ab", "secret"}, false},
		{"long name", Credentials{"abcdefghijklmnopqrstu", "secret"}, false},
		{"bad chars", Credentials{"kit kat", "secret"}, false},
		{"short password", Credentials{"kit", "12345"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestSignupLogin(t *testing.T) {
	for name, users := range map[string]Users{"memory": NewMemoryUsers(), "sql": sqlUsers(t)} {
		t.Run(name, func(t *testing.T) {
			svc := newService(t, users)
			ctx := context.Background()

			u, err := svc.Signup(ctx, Credentials{Username: " Kit_22 ", Password: "secret1"})
			require.NoError(t, err)
			assert.Equal(t, "Kit_22", u.Username)
			assert.NotEmpty(t, u.ID)

			_, err = svc.Signup(ctx, Credentials{Username: "kit_22", Password: "another"})
			assert.ErrorIs(t, err, ErrUsernameTaken)

			got, err := svc.Login(ctx, Credentials{Username: "KIT_22", Password: "secret1"})
			require.NoError(t, err)
			assert.Equal(t, u.ID, got.ID)

			_, err = svc.Login(ctx, Credentials{Username: "kit_22", Password: "wrong"})
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			_, err = svc.Login(ctx, Credentials{Username: "ghost", Password: "secret1"})
			assert.ErrorIs(t, err, ErrInvalidCredentials)

			byID, err := users.ByID(ctx, u.ID)
			require.NoError(t, err)
			assert.Equal(t, "Kit_22", byID.Username)
			_, err = users.ByID(ctx, "missing")
			assert.ErrorIs(t, err, ErrUserNotFound)
		})
	}
}

func TestTokens(t *testing.T) {
	users := NewMemoryUsers()
	svc := newService(t, users)
	ctx := context.Background()
	u, err := svc.Signup(ctx, Credentials{Username: "sam", Password: "secret1"})
	require.NoError(t, err)

	tok, exp, err := svc.Sign(u)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := svc.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Subject)
	assert.Equal(t, "sam", claims.Username)

	authed, err := svc.Authenticate(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, authed.ID)

	_, err = svc.Parse(tok + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewService(users, Options{Secret: []byte("other")}, zerolog.New(io.Discard))
	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// a valid token for a user that no longer exists
	ghost, _, err := svc.Sign(User{ID: "gone", Username: "gone"})
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, ghost)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredAndForeignAlg(t *testing.T) {
	svc := newService(t, NewMemoryUsers())

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: "sam",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "id",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	ss, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Parse(ss)
	assert.ErrorIs(t, err, ErrInvalidToken)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		Username:         "sam",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "id"},
	})
	ss, err = hs512.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Parse(ss)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
