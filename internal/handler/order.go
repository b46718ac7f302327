package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"yame/internal/domain"
	"yame/internal/middleware"
	"yame/internal/service"
)

// OrderHandler serves checkout and order history endpoints.
type OrderHandler struct {
	orders service.OrderService
	logger *slog.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger.With("handler", "order")}
}

// checkoutResponse is the envelope the storefront expects from checkout,
// success or failure.
type checkoutResponse struct {
	Success     bool   `json:"success"`
	OrderID     int64  `json:"orderId,omitempty"`
	OrderNumber string `json:"orderNumber,omitempty"`
	Message     string `json:"message"`
}

type orderItemResponse struct {
	ID           int64  `json:"id"`
	VariantID    int64  `json:"variantId"`
	Quantity     int32  `json:"quantity"`
	UnitPrice    int64  `json:"unitPrice"`
	LineTotal    int64  `json:"lineTotal"`
	ProductID    int64  `json:"productId"`
	ProductTitle string `json:"productTitle"`
	ProductSlug  string `json:"productSlug"`
	Size         string `json:"size"`
	Color        string `json:"color"`
	ImageURL     string `json:"imageUrl"`
}

type orderResponse struct {
	ID              int64               `json:"id"`
	OrderNumber     string              `json:"orderNumber"`
	OrderDate       string              `json:"orderDate"`
	SubTotal        int64               `json:"subTotal"`
	Discount        int64               `json:"discount"`
	Shipping        int64               `json:"shipping"`
	Tax             int64               `json:"tax"`
	Total           int64               `json:"total"`
	Status          domain.OrderStatus  `json:"status"`
	ShippingAddress string              `json:"shippingAddress"`
	BillingAddress  string              `json:"billingAddress"`
	PaymentMethod   string              `json:"paymentMethod"`
	ShippingMethod  string              `json:"shippingMethod"`
	Notes           string              `json:"notes,omitempty"`
	Items           []orderItemResponse `json:"items"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemResponse{
			ID:           it.ID,
			VariantID:    it.VariantID,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			LineTotal:    it.LineTotal,
			ProductID:    it.ProductID,
			ProductTitle: it.ProductTitle,
			ProductSlug:  it.ProductSlug,
			Size:         it.Size,
			Color:        it.Color,
			ImageURL:     it.ImageURL,
		})
	}
	return orderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		OrderDate:       o.OrderDate.Format("2006-01-02T15:04:05Z07:00"),
		SubTotal:        o.SubTotal,
		Discount:        o.Discount,
		Shipping:        o.Shipping,
		Tax:             o.Tax,
		Total:           o.Total,
		Status:          o.Status,
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
		PaymentMethod:   o.PaymentMethod,
		ShippingMethod:  o.ShippingMethod,
		Notes:           o.Notes,
		Items:           items,
	}
}

// Checkout handles POST /api/v1/orders/checkout
func (h *OrderHandler) Checkout(c echo.Context) error {
	var req domain.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, checkoutResponse{Success: false, Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.orders.Checkout(c.Request().Context(), req, middleware.UserID(c))
	if err != nil {
		status := statusOf(err)
		if status == http.StatusInternalServerError {
			h.logger.ErrorContext(c.Request().Context(), "checkout failed",
				"op", domain.ErrorOp(err),
				"error", err,
			)
		}
		return c.JSON(status, checkoutResponse{Success: false, Message: domain.ErrorMessage(err)})
	}

	return c.JSON(http.StatusOK, checkoutResponse{
		Success:     true,
		OrderID:     result.OrderID,
		OrderNumber: result.OrderNumber,
		Message:     "Order created successfully",
	})
}

// Get handles GET /api/v1/orders/:id
func (h *OrderHandler) Get(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.orders.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// ListMine handles GET /api/v1/orders
func (h *OrderHandler) ListMine(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := h.orders.GetOrdersByUser(c.Request().Context(), *userID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	resp := make([]orderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}
	return c.JSON(http.StatusOK, resp)
}
