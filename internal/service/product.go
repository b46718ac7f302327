package service

import (
	"context"
	"log/slog"

	"yame/internal/domain"
	"yame/internal/repository"
	"yame/internal/telemetry"
)

// ProductService provides business logic for the storefront catalog.
type ProductService interface {
	// List pages through catalog products matching the query filters.
	List(ctx context.Context, q domain.ProductQuery) ([]domain.ProductListItem, int, error)

	// GetBySlug loads one product with variants, images, specs, and reviews.
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)

	// AddReview records a customer review. Rating must be 1..5.
	AddReview(ctx context.Context, productID int64, rating int, comment string) error
}

type productService struct {
	store   repository.Store
	logger  *slog.Logger
	metrics *telemetry.BusinessMetrics
}

// NewProductService creates a new ProductService instance.
func NewProductService(store repository.Store, logger *slog.Logger, metrics *telemetry.BusinessMetrics) ProductService {
	return &productService{
		store:   store,
		logger:  logger.With("service", "product"),
		metrics: metrics,
	}
}

func (s *productService) List(ctx context.Context, q domain.ProductQuery) ([]domain.ProductListItem, int, error) {
	const op = "product.list"

	q.Normalize()
	items, total, err := s.store.Products().List(ctx, q)
	if err != nil {
		return nil, 0, domain.Internal(err, op, "failed to list products")
	}

	if s.metrics != nil {
		s.metrics.ProductSearches.WithLabelValues(searchFilterType(q)).Inc()
	}
	return items, total, nil
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	const op = "product.get"

	p, err := s.store.Products().GetBySlug(ctx, slug)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load product")
	}
	if p == nil {
		return nil, domain.NotFound(op, "product", slug)
	}

	if s.metrics != nil {
		s.metrics.ProductViews.WithLabelValues(slug).Inc()
	}
	return p, nil
}

func (s *productService) AddReview(ctx context.Context, productID int64, rating int, comment string) error {
	const op = "product.add_review"

	if rating < 1 || rating > 5 {
		return domain.Invalid(op, "Rating must be between 1 and 5")
	}

	if err := s.store.Products().AddReview(ctx, productID, rating, comment); err != nil {
		return domain.Internal(err, op, "failed to save review")
	}
	return nil
}

func searchFilterType(q domain.ProductQuery) string {
	switch {
	case q.Q != "":
		return "query"
	case q.Category != "":
		return "category"
	case q.PriceMin != nil || q.PriceMax != nil:
		return "price"
	default:
		return "none"
	}
}
