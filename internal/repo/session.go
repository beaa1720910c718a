package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopfront/internal/models"
)

func (r *GormRepo) CreateSession(ctx context.Context, s *models.Session) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *GormRepo) FindSession(ctx context.Context, tokenHash string) (*models.Session, error) {
	var s models.Session
	if err := r.DB.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *GormRepo) RevokeSession(ctx context.Context, tokenHash string) error {
	return r.DB.WithContext(ctx).Model(&models.Session{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}
