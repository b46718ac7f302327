package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"yame/internal/domain"
	"yame/internal/repository"
	"yame/internal/telemetry"
)

// CartService provides business logic for cart operations.
type CartService interface {
	// Create makes a new empty cart and returns its ID.
	Create(ctx context.Context) (string, error)

	// Get loads a cart with its items and freshly computed totals.
	Get(ctx context.Context, cartID string) (*domain.Cart, error)

	// AddItem puts quantity units of the variant in the cart. The variant's
	// price is captured now and kept for the life of the line. Adding a
	// variant already in the cart merges into the existing line.
	AddItem(ctx context.Context, cartID string, variantID int64, quantity int32) (*domain.Cart, error)

	// UpdateItem sets an item's quantity. Zero or negative removes the item.
	UpdateItem(ctx context.Context, cartID, itemID string, quantity int32) (*domain.Cart, error)

	// RemoveItem deletes one line from the cart.
	RemoveItem(ctx context.Context, cartID, itemID string) (*domain.Cart, error)
}

type cartService struct {
	store   repository.Store
	logger  *slog.Logger
	metrics *telemetry.BusinessMetrics
}

// NewCartService creates a new CartService instance.
func NewCartService(store repository.Store, logger *slog.Logger, metrics *telemetry.BusinessMetrics) CartService {
	return &cartService{
		store:   store,
		logger:  logger.With("service", "cart"),
		metrics: metrics,
	}
}

func (s *cartService) Create(ctx context.Context) (string, error) {
	const op = "cart.create"

	cartID := uuid.NewString()
	if err := s.store.Carts().CreateCart(ctx, cartID); err != nil {
		return "", domain.Internal(err, op, "failed to create cart")
	}

	s.logger.InfoContext(ctx, "cart created", "cart_id", cartID)
	if s.metrics != nil {
		s.metrics.CartCreated.Inc()
	}
	return cartID, nil
}

func (s *cartService) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	const op = "cart.get"

	exists, err := s.store.Carts().CartExists(ctx, cartID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to look up cart")
	}
	if !exists {
		return nil, domain.NotFound(op, "cart", cartID)
	}
	return s.load(ctx, op, cartID)
}

func (s *cartService) AddItem(ctx context.Context, cartID string, variantID int64, quantity int32) (*domain.Cart, error) {
	const op = "cart.add_item"

	if quantity < 1 {
		return nil, ErrInvalidQuantity(op, quantity)
	}

	exists, err := s.store.Carts().CartExists(ctx, cartID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to look up cart")
	}
	if !exists {
		return nil, domain.NotFound(op, "cart", cartID)
	}

	variant, err := s.store.Variants().GetByID(ctx, variantID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to look up variant")
	}
	if variant == nil {
		return nil, ErrVariantNotFound(op, variantID)
	}

	existing, err := s.store.Carts().FindItemByVariant(ctx, cartID, variantID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to look up cart item")
	}

	if existing != nil {
		newQty := existing.Quantity + quantity
		if err := s.store.Carts().UpdateItemQuantity(ctx, cartID, existing.ID, newQty); err != nil {
			return nil, domain.Internal(err, op, "failed to update cart item")
		}
	} else {
		price := variant.Price
		err := s.store.Carts().AddItem(ctx, repository.AddCartItemParams{
			ItemID:    uuid.NewString(),
			CartID:    cartID,
			VariantID: variantID,
			Quantity:  quantity,
			UnitPrice: price,
		})
		if err != nil {
			return nil, domain.Internal(err, op, "failed to add cart item")
		}
	}

	s.logger.InfoContext(ctx, "item added to cart",
		"cart_id", cartID,
		"variant_id", variantID,
		"quantity", quantity,
	)
	if s.metrics != nil {
		s.metrics.CartUpdated.WithLabelValues("add").Inc()
		s.metrics.CartItemsAdd.Add(float64(quantity))
	}
	return s.load(ctx, op, cartID)
}

func (s *cartService) UpdateItem(ctx context.Context, cartID, itemID string, quantity int32) (*domain.Cart, error) {
	const op = "cart.update_item"

	if quantity < 1 {
		return s.RemoveItem(ctx, cartID, itemID)
	}

	if err := s.store.Carts().UpdateItemQuantity(ctx, cartID, itemID, quantity); err != nil {
		if isNoRows(err) {
			return nil, domain.NotFound(op, "cart item", itemID)
		}
		return nil, domain.Internal(err, op, "failed to update cart item")
	}

	if s.metrics != nil {
		s.metrics.CartUpdated.WithLabelValues("update_quantity").Inc()
	}
	return s.load(ctx, op, cartID)
}

func (s *cartService) RemoveItem(ctx context.Context, cartID, itemID string) (*domain.Cart, error) {
	const op = "cart.remove_item"

	if err := s.store.Carts().RemoveItem(ctx, cartID, itemID); err != nil {
		if isNoRows(err) {
			return nil, domain.NotFound(op, "cart item", itemID)
		}
		return nil, domain.Internal(err, op, "failed to remove cart item")
	}

	if s.metrics != nil {
		s.metrics.CartUpdated.WithLabelValues("remove").Inc()
	}
	return s.load(ctx, op, cartID)
}

// load reads the cart's items and recomputes totals. Carts are never stored
// with totals; every read derives them from the lines.
func (s *cartService) load(ctx context.Context, op, cartID string) (*domain.Cart, error) {
	items, err := s.store.Carts().GetItems(ctx, cartID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load cart items")
	}

	cart := &domain.Cart{ID: cartID, Items: items}
	cart.Recalculate()
	return cart, nil
}
