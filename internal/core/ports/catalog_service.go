package ports

import (
	"context"

	"github.com/vendora/catalog-api/internal/core/domain"
)

// ProductInput is the create/update form. Price and Quantity are pointers so a
// missing value can be told apart from zero.
type ProductInput struct {
	Name     string   `json:"name"     validate:"required"`
	SKU      string   `json:"sku"      validate:"required"`
	Price    *float64 `json:"price"    validate:"required,gte=0"`
	Quantity *int     `json:"quantity" validate:"required,gte=0"`
}

// CatalogService manages the products of a single, already authenticated owner.
type CatalogService interface {
	List(ctx context.Context, owner domain.Identity) ([]*domain.Product, error)
	Create(ctx context.Context, owner domain.Identity, input ProductInput) (*domain.Product, error)
	Get(ctx context.Context, owner domain.Identity, id string) (*domain.Product, error)
	Update(ctx context.Context, owner domain.Identity, id string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, owner domain.Identity, id string) error
}
