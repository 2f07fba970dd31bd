package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrotomenko-dotcom/madagaskar/internal/dto"
	"github.com/dmitrotomenko-dotcom/madagaskar/internal/model"
	"github.com/dmitrotomenko-dotcom/madagaskar/internal/store"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
)

type CatalogService struct {
	store *store.Store
}

func NewCatalogService(st *store.Store) *CatalogService {
	return &CatalogService{store: st}
}

func (s *CatalogService) List(ctx context.Context) []model.Product {
	return s.store.Products(ctx)
}

// ListByCategory filters the catalog; an empty category returns everything.
func (s *CatalogService) ListByCategory(ctx context.Context, category model.Category) []model.Product {
	products := s.store.Products(ctx)
	if category == "" {
		return products
	}
	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (s *CatalogService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	for _, p := range s.store.Products(ctx) {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (s *CatalogService) Create(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error) {
	now := time.Now().UTC()
	product := model.Product{
		ID:            uuid.New(),
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Images:        req.Images,
		Category:      req.Category,
		Sizes:         req.Sizes,
		Colors:        req.Colors,
		InStock:       req.InStock,
		StockQuantity: req.StockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	err := s.store.Update(ctx, func(tx *store.Tx) error {
		products := append(tx.Products(ctx), product)
		return tx.SaveProducts(ctx, products)
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &product, nil
}

func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*model.Product, error) {
	var updated model.Product
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		products := tx.Products(ctx)
		i := indexByID(products, id)
		if i < 0 {
			return ErrProductNotFound
		}

		p := products[i]
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.Images != nil {
			p.Images = req.Images
		}
		if req.Category != nil {
			p.Category = *req.Category
		}
		if req.Sizes != nil {
			p.Sizes = req.Sizes
		}
		if req.Colors != nil {
			p.Colors = req.Colors
		}
		if req.InStock != nil {
			p.InStock = *req.InStock
		}
		if req.StockQuantity != nil {
			p.StockQuantity = *req.StockQuantity
		}
		p.UpdatedAt = time.Now().UTC()

		if err := validateProduct(p); err != nil {
			return err
		}
		products[i] = p
		updated = p
		return tx.SaveProducts(ctx, products)
	})
	if err != nil {
		if errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrInvalidProduct) {
			return nil, err
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.store.Update(ctx, func(tx *store.Tx) error {
		products := tx.Products(ctx)
		i := indexByID(products, id)
		if i < 0 {
			return ErrProductNotFound
		}
		return tx.SaveProducts(ctx, append(products[:i], products[i+1:]...))
	})
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return err
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// SetInStock toggles availability without touching the rest of the record.
func (s *CatalogService) SetInStock(ctx context.Context, id uuid.UUID, inStock bool) (*model.Product, error) {
	return s.Update(ctx, id, dto.UpdateProductRequest{InStock: &inStock})
}

func validateProduct(p model.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if !p.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", ErrInvalidProduct)
	}
	if p.StockQuantity < 0 {
		return fmt.Errorf("%w: stock quantity must not be negative", ErrInvalidProduct)
	}
	if !p.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidProduct, p.Category)
	}
	if len(p.Sizes) == 0 {
		return fmt.Errorf("%w: at least one size is required", ErrInvalidProduct)
	}
	for _, size := range p.Sizes {
		if !model.KnownSize(size) {
			return fmt.Errorf("%w: unknown size %q", ErrInvalidProduct, size)
		}
	}
	if len(p.Colors) == 0 {
		return fmt.Errorf("%w: at least one color is required", ErrInvalidProduct)
	}
	for _, color := range p.Colors {
		if !model.KnownColor(color) {
			return fmt.Errorf("%w: unknown color %q", ErrInvalidProduct, color)
		}
	}
	return nil
}

func indexByID(products []model.Product, id uuid.UUID) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
