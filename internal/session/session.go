package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/google/uuid"

	"shopfront/internal/models"
	"shopfront/internal/repo"
)

const CookieName = "session"

// Manager issues and resolves opaque login sessions. The cookie carries a
// random token; only its sha256 hex ever reaches the database.
type Manager struct {
	Repo   *repo.GormRepo
	TTL    time.Duration
	Secure bool
}

func (m *Manager) Issue(ctx context.Context, userID uint) (*http.Cookie, error) {
	token := uuid.NewString()
	exp := time.Now().Add(m.TTL)

	s := models.Session{
		TokenHash: sha256Hex(token),
		UserID:    userID,
		ExpiresAt: exp.Unix(),
	}
	if err := m.Repo.CreateSession(ctx, &s); err != nil {
		return nil, err
	}
	return m.newCookie(token, exp), nil
}

func (m *Manager) Resolve(ctx context.Context, token string) (*models.User, error) {
	s, err := m.Repo.FindSession(ctx, sha256Hex(token))
	if err != nil {
		return nil, err
	}
	if s.Revoked || time.Now().Unix() > s.ExpiresAt {
		return nil, repo.ErrNotFound
	}
	return m.Repo.GetUserByID(ctx, s.UserID)
}

func (m *Manager) Revoke(ctx context.Context, token string) error {
	return m.Repo.RevokeSession(ctx, sha256Hex(token))
}

func (m *Manager) newCookie(value string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (m *Manager) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
