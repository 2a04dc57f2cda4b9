package auth

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db), mock
}

func TestGetByEmailMapsNoRows(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("SELECT id, name, email, password_hash, role, created_at FROM users").
		WithArgs("nobody@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSeedFromFileMissingFileIsNotAnError(t *testing.T) {
	store, mock := newTestStore(t)

	err := store.SeedFromFile(context.Background(), "does/not/exist.yaml")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedFromFileSkipsExistingUsers(t *testing.T) {
	store, mock := newTestStore(t)

	dir := t.TempDir()
	path := dir + "/users.yaml"
	content := []byte("users:\n  - name: Admin\n    email: admin@example.com\n    password: change-me\n    role: admin\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	mock.ExpectQuery("SELECT id, name, email, password_hash, role, created_at FROM users").
		WithArgs("admin@example.com").
		WillReturnRows(userRow(t, 1, "Admin", "admin@example.com", "change-me", RoleAdmin))

	err := store.SeedFromFile(context.Background(), path)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
