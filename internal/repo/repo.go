package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken       = errors.New("email already exists")
	ErrProductNameTaken = errors.New("product name already exists")
	ErrNotFound         = errors.New("record not found")
)

type GormRepo struct {
	DB *gorm.DB
}
