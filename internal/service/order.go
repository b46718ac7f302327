package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"yame/internal/domain"
	"yame/internal/repository"
	"yame/internal/telemetry"
)

// Checkout defaults applied when the request leaves them blank.
const (
	DefaultPaymentMethod  = "COD"
	DefaultShippingMethod = "Standard"
)

// CheckoutResult identifies the order created by a successful checkout.
type CheckoutResult struct {
	OrderID     int64
	OrderNumber string
}

// OrderService provides business logic for checkout and order reads.
type OrderService interface {
	// Checkout converts a cart into an order atomically: stock is decremented
	// per line, the order and its lines are written, and the cart is emptied.
	// Any failure rolls the whole conversion back, leaving cart and stock
	// untouched. userID links the order to an account; nil means guest.
	Checkout(ctx context.Context, req domain.CheckoutRequest, userID *int64) (*CheckoutResult, error)

	// GetOrder loads one order with its items.
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)

	// GetOrdersByUser lists an account's orders, newest first, items included.
	GetOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error)

	// UpdateStatus transitions an order to a new lifecycle state.
	UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error

	// List pages through all orders, optionally filtered by status.
	List(ctx context.Context, arg repository.ListOrdersParams) ([]domain.Order, int, error)

	// Stats aggregates dashboard numbers.
	Stats(ctx context.Context) (*domain.OrderStats, error)
}

type orderService struct {
	store   repository.Store
	logger  *slog.Logger
	metrics *telemetry.BusinessMetrics

	// now is injectable so order numbers are deterministic under test.
	now func() time.Time
}

// NewOrderService creates a new OrderService instance.
func NewOrderService(store repository.Store, logger *slog.Logger, metrics *telemetry.BusinessMetrics) OrderService {
	return &orderService{
		store:   store,
		logger:  logger.With("service", "order"),
		metrics: metrics,
		now:     time.Now,
	}
}

func (s *orderService) Checkout(ctx context.Context, req domain.CheckoutRequest, userID *int64) (*CheckoutResult, error) {
	const op = "order.checkout"

	exists, err := s.store.Carts().CartExists(ctx, req.CartID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to look up cart")
	}
	if !exists {
		s.countFailure("empty_cart")
		return nil, ErrCartNotFound(op)
	}

	var result CheckoutResult
	var itemCount int
	var orderTotal int64

	err = s.store.WithinTx(ctx, func(tx repository.Repos) error {
		items, err := tx.Carts().GetItems(ctx, req.CartID)
		if err != nil {
			return domain.Internal(err, op, "failed to load cart items")
		}
		if len(items) == 0 {
			return ErrCartNotFound(op)
		}

		// Reserve stock line by line. The conditional decrement is the
		// authoritative availability check; the Stock snapshot on each item
		// is display data and may already be stale.
		for _, item := range items {
			ok, err := tx.Variants().DecrementStock(ctx, item.VariantID, item.Quantity)
			if err != nil {
				return domain.Internal(err, op, "failed to decrement stock")
			}
			if !ok {
				return ErrInsufficientStock(op, item.ProductTitle)
			}
		}

		customerID, err := s.resolveCustomer(ctx, tx, req, userID)
		if err != nil {
			return err
		}

		cart := &domain.Cart{ID: req.CartID, Items: items}
		cart.Recalculate()

		now := s.now()
		orderNumber := "YM" + now.Format("20060102150405")

		shippingAddr := fmt.Sprintf("%s, %s, %s, %s", req.ShippingAddress, req.Ward, req.District, req.City)
		billingAddr := shippingAddr
		if req.BillingAddress != nil && *req.BillingAddress != "" {
			billingAddr = *req.BillingAddress
		}
		paymentMethod := req.PaymentMethod
		if paymentMethod == "" {
			paymentMethod = DefaultPaymentMethod
		}
		shippingMethod := req.ShippingMethod
		if shippingMethod == "" {
			shippingMethod = DefaultShippingMethod
		}

		orderID, err := tx.Orders().Create(ctx, repository.CreateOrderParams{
			CustomerID:      customerID,
			OrderNumber:     orderNumber,
			OrderDate:       now,
			SubTotal:        cart.SubTotal,
			Discount:        cart.Discount,
			Shipping:        cart.Shipping,
			Tax:             cart.Tax,
			Total:           cart.Total,
			Status:          domain.OrderStatusPending,
			ShippingAddress: shippingAddr,
			BillingAddress:  billingAddr,
			PaymentMethod:   paymentMethod,
			ShippingMethod:  shippingMethod,
			Notes:           req.Notes,
		})
		if err != nil {
			return domain.Internal(err, op, "failed to create order")
		}

		for _, item := range items {
			err := tx.Orders().AddItem(ctx, repository.CreateOrderItemParams{
				OrderID:   orderID,
				VariantID: item.VariantID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				LineTotal: item.LineTotal,
			})
			if err != nil {
				return domain.Internal(err, op, "failed to create order item")
			}
		}

		// Empty the cart but keep the cart row; the shopper can reuse it.
		if err := tx.Carts().ClearItems(ctx, req.CartID); err != nil {
			return domain.Internal(err, op, "failed to clear cart")
		}

		result = CheckoutResult{OrderID: orderID, OrderNumber: orderNumber}
		itemCount = len(items)
		orderTotal = cart.Total
		return nil
	})
	if err != nil {
		switch domain.ErrorCode(err) {
		case domain.ECONFLICT:
			s.countFailure("insufficient_stock")
		case domain.EINVALID:
			s.countFailure("empty_cart")
		default:
			s.countFailure("internal")
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "checkout completed",
		"order_id", result.OrderID,
		"order_number", result.OrderNumber,
		"cart_id", req.CartID,
		"total", orderTotal,
		"items", itemCount,
	)
	if s.metrics != nil {
		s.metrics.CheckoutCompleted.Inc()
		s.metrics.OrdersCreated.Inc()
		s.metrics.OrderValue.Observe(float64(orderTotal))
		s.metrics.OrderItemCount.Observe(float64(itemCount))
	}
	return &result, nil
}

// resolveCustomer finds or creates the customer record the order points at.
// Authenticated users reuse their existing record; guests get a fresh one
// every checkout.
func (s *orderService) resolveCustomer(ctx context.Context, tx repository.Repos, req domain.CheckoutRequest, userID *int64) (int64, error) {
	const op = "order.checkout"

	if userID != nil {
		existing, err := tx.Customers().GetByUserID(ctx, *userID)
		if err != nil {
			return 0, domain.Internal(err, op, "failed to look up customer")
		}
		if existing != nil {
			return existing.ID, nil
		}
	}

	address := fmt.Sprintf("%s, %s, %s, %s", req.ShippingAddress, req.Ward, req.District, req.City)
	id, err := tx.Customers().Create(ctx, repository.CreateCustomerParams{
		UserID:   userID,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  address,
	})
	if err != nil {
		return 0, domain.Internal(err, op, "failed to create customer")
	}
	return id, nil
}

func (s *orderService) countFailure(reason string) {
	if s.metrics != nil {
		s.metrics.CheckoutFailed.WithLabelValues(reason).Inc()
	}
}

func (s *orderService) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	const op = "order.get"

	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load order")
	}
	if order == nil {
		return nil, ErrOrderNotFound(op, orderID)
	}

	items, err := s.store.Orders().GetItems(ctx, orderID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load order items")
	}
	order.Items = items
	return order, nil
}

func (s *orderService) GetOrdersByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	const op = "order.list_by_user"

	orders, err := s.store.Orders().ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list orders")
	}
	for i := range orders {
		items, err := s.store.Orders().GetItems(ctx, orders[i].ID)
		if err != nil {
			return nil, domain.Internal(err, op, "failed to load order items")
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	const op = "order.update_status"

	if !domain.ValidOrderStatus(status) {
		return ErrInvalidStatus(op, status)
	}

	ok, err := s.store.Orders().UpdateStatus(ctx, orderID, status)
	if err != nil {
		return domain.Internal(err, op, "failed to update order status")
	}
	if !ok {
		return ErrOrderNotFound(op, orderID)
	}

	s.logger.InfoContext(ctx, "order status updated", "order_id", orderID, "status", status)
	return nil
}

func (s *orderService) List(ctx context.Context, arg repository.ListOrdersParams) ([]domain.Order, int, error) {
	const op = "order.list"

	if arg.Page < 1 {
		arg.Page = 1
	}
	if arg.PageSize < 1 || arg.PageSize > 100 {
		arg.PageSize = 20
	}
	if arg.Status != nil && !domain.ValidOrderStatus(*arg.Status) {
		return nil, 0, ErrInvalidStatus(op, *arg.Status)
	}

	orders, total, err := s.store.Orders().List(ctx, arg)
	if err != nil {
		return nil, 0, domain.Internal(err, op, "failed to list orders")
	}
	return orders, total, nil
}

func (s *orderService) Stats(ctx context.Context) (*domain.OrderStats, error) {
	const op = "order.stats"

	stats, err := s.store.Orders().Stats(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load order stats")
	}
	return stats, nil
}
