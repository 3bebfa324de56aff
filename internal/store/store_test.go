package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	s.SetHashCost(bcrypt.MinCost)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	u, err := s.CreateUser(ctx, "ana", "ana@example.com", "secreto")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "ana", u.Username)

	got, err := s.Authenticate(ctx, "ana@example.com", "secreto")
	require.NoError(t, err)
	assert.Equal(t, u, got)

	_, err = s.Authenticate(ctx, "ana@example.com", "otro")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Authenticate(ctx, "nadie@example.com", "secreto")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	byID, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, byID)
	_, err = s.GetUser(ctx, u.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDuplicateUser(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.CreateUser(ctx, "ana", "ana@example.com", "secreto")
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "ana", "otra@example.com", "x")
	assert.ErrorIs(t, err, ErrUserExists)
	_, err = s.CreateUser(ctx, "otra", "ana@example.com", "x")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestPasswordIsHashed(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	_, err := s.CreateUser(ctx, "ana", "ana@example.com", "secreto")
	require.NoError(t, err)

	var hash string
	require.NoError(t, s.conn.Get(&hash, `SELECT password_hash FROM users WHERE username = 'ana'`))
	assert.NotEqual(t, "secreto", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secreto")))
}

func TestMemoryStore(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()
	assert.NoError(t, s.Ping(context.Background()))
}

func TestCreateUserRejectsUnsafeUsernames(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	for _, name := range []string{"../ana", "ana/b", `ana\b`, "..", "."} {
		_, err := s.CreateUser(ctx, name, name+"@example.com", "secreto")
		assert.ErrorIs(t, err, ErrInvalidUsername, name)
	}

	var n int
	require.NoError(t, s.conn.Get(&n, `SELECT COUNT(*) FROM users`))
	assert.Zero(t, n)
}

func TestCreateUserRejectsLongPassword(t *testing.T) {
	s := openTestStore(t)
	_, err := s.CreateUser(context.Background(), "ana", "ana@example.com", strings.Repeat("x", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = s.CreateUser(context.Background(), "ana", "ana@example.com", strings.Repeat("x", MaxPasswordBytes))
	assert.NoError(t, err)
}
