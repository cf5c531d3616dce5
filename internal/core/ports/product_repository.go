package ports

import (
	"context"
	"time"

	"github.com/vendora/catalog-api/internal/core/domain"
)

// ProductChanges holds the mutable fields of a product.
type ProductChanges struct {
	Name      string
	SKU       string
	Price     float64
	Quantity  int
	UpdatedAt time.Time
}

// ProductRepository is the product store. Every method takes the owner ID and
// applies it as a query predicate; a product owned by someone else is reported
// exactly like a missing one (domain.ErrProductNotFound).
type ProductRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	FindForOwner(ctx context.Context, id, ownerID string) (*domain.Product, error)
	UpdateForOwner(ctx context.Context, id, ownerID string, changes ProductChanges) (*domain.Product, error)
	DeleteForOwner(ctx context.Context, id, ownerID string) error
}
