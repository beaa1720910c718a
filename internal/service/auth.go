package service

import (
	"context"
	"errors"

	"shopfront/internal/hash"
	"shopfront/internal/logging"
	"shopfront/internal/models"
	"shopfront/internal/repo"
)

var (
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidPassword = errors.New("invalid password")
)

type AuthService struct {
	Repo *repo.GormRepo
}

// Register hashes the password and creates the account. The caller is
// expected to log the new user in on success.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register failed", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Email:        email,
		Name:         name,
		PasswordHash: pwHash,
		Role:         "user",
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			l.Warn("register failed", "reason", "email already exists")
			return nil, err
		}
		l.Error("register failed", "error", err)
		return nil, err
	}

	l.Info("user registered", "userID", user.ID)
	return &user, nil
}

// Login distinguishes an unknown email from a wrong password so the form can
// show the matching message; neither path reveals the stored hash.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "email", email)

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login failed", "reason", "unknown email")
			return nil, ErrInvalidEmail
		}
		l.Error("login failed", "error", err)
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login failed", "reason", "wrong password")
		return nil, ErrInvalidPassword
	}

	l.Info("user logged in", "userID", user.ID)
	return user, nil
}
