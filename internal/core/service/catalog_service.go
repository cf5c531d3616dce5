package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vendora/catalog-api/internal/core/domain"
	"github.com/vendora/catalog-api/internal/core/ports"
	"github.com/vendora/catalog-api/internal/core/validation"
)

// CatalogService implements product CRUD for the owner passed to each call.
// Ownership is never checked after the fact: the owner ID goes into every
// repository query.
type CatalogService struct {
	repo      ports.ProductRepository
	validator *validation.Validator
	log       zerolog.Logger
	now       func() time.Time
}

func NewCatalogService(repo ports.ProductRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		repo:      repo,
		validator: validation.New(),
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List returns every product of owner in storage order.
func (s *CatalogService) List(ctx context.Context, owner domain.Identity) ([]*domain.Product, error) {
	if owner.UserID == "" {
		return nil, domain.ErrUnauthorized
	}

	products, err := s.repo.ListByOwner(ctx, owner.UserID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", owner.UserID).Msg("failed to list products")
		return nil, internal("list products", err)
	}
	if products == nil {
		products = []*domain.Product{}
	}
	return products, nil
}

// Create validates the form and stores a product owned by owner.
func (s *CatalogService) Create(ctx context.Context, owner domain.Identity, in ports.ProductInput) (*domain.Product, error) {
	if owner.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	in = trimProductInput(in)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	now := s.now()
	p := &domain.Product{
		UserID:    owner.UserID,
		Name:      in.Name,
		SKU:       in.SKU,
		Price:     *in.Price,
		Quantity:  *in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error().Err(err).Str("user_id", owner.UserID).Msg("failed to create product")
		return nil, internal("create product", err)
	}

	s.log.Info().Str("product_id", p.ID).Str("user_id", owner.UserID).Msg("product created")
	return p, nil
}

// Get returns the product only when owner owns it.
func (s *CatalogService) Get(ctx context.Context, owner domain.Identity, id string) (*domain.Product, error) {
	if owner.UserID == "" {
		return nil, domain.ErrUnauthorized
	}

	p, err := s.repo.FindForOwner(ctx, id, owner.UserID)
	if err != nil {
		return nil, notFoundOrInternal("find product", err)
	}
	return p, nil
}

// Update applies the same rules as Create, then mutates only a product owned
// by owner.
func (s *CatalogService) Update(ctx context.Context, owner domain.Identity, id string, in ports.ProductInput) (*domain.Product, error) {
	if owner.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	in = trimProductInput(in)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	p, err := s.repo.UpdateForOwner(ctx, id, owner.UserID, ports.ProductChanges{
		Name:      in.Name,
		SKU:       in.SKU,
		Price:     *in.Price,
		Quantity:  *in.Quantity,
		UpdatedAt: s.now(),
	})
	if err != nil {
		return nil, notFoundOrInternal("update product", err)
	}

	s.log.Info().Str("product_id", p.ID).Str("user_id", owner.UserID).Msg("product updated")
	return p, nil
}

// Delete removes a product owned by owner. Deleting it again reports
// domain.ErrProductNotFound.
func (s *CatalogService) Delete(ctx context.Context, owner domain.Identity, id string) error {
	if owner.UserID == "" {
		return domain.ErrUnauthorized
	}

	if err := s.repo.DeleteForOwner(ctx, id, owner.UserID); err != nil {
		return notFoundOrInternal("delete product", err)
	}

	s.log.Info().Str("product_id", id).Str("user_id", owner.UserID).Msg("product deleted")
	return nil
}

func trimProductInput(in ports.ProductInput) ports.ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.SKU = strings.TrimSpace(in.SKU)
	return in
}

func notFoundOrInternal(op string, err error) error {
	if errors.Is(err, domain.ErrProductNotFound) {
		return domain.ErrProductNotFound
	}
	return internal(op, err)
}
