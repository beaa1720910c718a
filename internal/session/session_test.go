package session_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shopfront/internal/models"
	"shopfront/internal/repo"
	"shopfront/internal/session"
)

func newManager(t *testing.T, ttl time.Duration) (*session.Manager, *models.User) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Session{}))

	user := models.User{Email: "a@x.com", Name: "Ann", PasswordHash: "h", Role: "user"}
	require.NoError(t, db.Create(&user).Error)

	return &session.Manager{Repo: &repo.GormRepo{DB: db}, TTL: ttl}, &user
}

func TestIssueAndResolve(t *testing.T) {
	m, user := newManager(t, time.Hour)
	ctx := t.Context()

	ck, err := m.Issue(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, session.CookieName, ck.Name)
	require.NotEmpty(t, ck.Value)
	require.True(t, ck.HttpOnly)

	got, err := m.Resolve(ctx, ck.Value)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	// The raw token never hits the database.
	var stored models.Session
	require.NoError(t, m.Repo.DB.First(&stored).Error)
	require.NotEqual(t, ck.Value, stored.TokenHash)
}

func TestRevokedSessionStopsResolving(t *testing.T) {
	m, user := newManager(t, time.Hour)
	ctx := t.Context()

	ck, err := m.Issue(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, m.Revoke(ctx, ck.Value))

	_, err = m.Resolve(ctx, ck.Value)
	require.ErrorIs(t, err, repo.ErrNotFound)
}

func TestExpiredSessionStopsResolving(t *testing.T) {
	m, user := newManager(t, -time.Minute)
	ctx := t.Context()

	ck, err := m.Issue(ctx, user.ID)
	require.NoError(t, err)

	_, err = m.Resolve(ctx, ck.Value)
	require.ErrorIs(t, err, repo.ErrNotFound)
}

func TestResolveUnknownToken(t *testing.T) {
	m, _ := newManager(t, time.Hour)

	_, err := m.Resolve(t.Context(), "not-a-token")
	require.ErrorIs(t, err, repo.ErrNotFound)
}
