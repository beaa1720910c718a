package service

import (
	"context"
	"errors"

	"shopfront/internal/models"
	"shopfront/internal/repo"
)

var ErrNegativePrice = errors.New("price cannot be negative")

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) List(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.ListProducts(ctx, offset, limit)
}

func (s *CatalogService) Create(ctx context.Context, p *models.Product) error {
	if p.Price < 0 {
		return ErrNegativePrice
	}
	return s.Repo.CreateProduct(ctx, p)
}

func (s *CatalogService) Update(ctx context.Context, id uint, fields models.Product) (*models.Product, error) {
	if fields.Price < 0 {
		return nil, ErrNegativePrice
	}
	return s.Repo.UpdateProduct(ctx, id, fields)
}

func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	return s.Repo.DeleteProduct(ctx, id)
}

func (s *CatalogService) Search(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.SearchProducts(ctx, q, offset, limit)
}
