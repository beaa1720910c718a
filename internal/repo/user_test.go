package repo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"shopfront/internal/models"
	"shopfront/internal/repo"
)

func TestCreateUserDuplicateEmail(t *testing.T) {
	r := newTestRepo(t)
	ctx := t.Context()

	u := models.User{Email: "a@x.com", Name: "Ann", PasswordHash: "h1", Role: "user"}
	require.NoError(t, r.CreateUser(ctx, &u))

	dup := models.User{Email: "a@x.com", Name: "Imposter", PasswordHash: "h2", Role: "user"}
	require.ErrorIs(t, r.CreateUser(ctx, &dup), repo.ErrEmailTaken)

	var count int64
	require.NoError(t, r.DB.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestFindUserByEmail(t *testing.T) {
	r := newTestRepo(t)
	ctx := t.Context()

	u := models.User{Email: "a@x.com", Name: "Ann", PasswordHash: "h1", Role: "user"}
	require.NoError(t, r.CreateUser(ctx, &u))

	got, err := r.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = r.FindUserByEmail(ctx, "missing@x.com")
	require.ErrorIs(t, err, repo.ErrNotFound)
}
