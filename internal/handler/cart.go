package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"yame/internal/domain"
	"yame/internal/service"
)

// CartHandler serves the shopping cart endpoints.
type CartHandler struct {
	carts  service.CartService
	logger *slog.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: logger.With("handler", "cart")}
}

type addCartItemRequest struct {
	VariantID int64 `json:"variantId" validate:"required"`
	Quantity  int32 `json:"quantity" validate:"required,min=1"`
}

type updateCartItemRequest struct {
	Quantity int32 `json:"quantity"`
}

type cartItemResponse struct {
	ID           string `json:"id"`
	VariantID    int64  `json:"variantId"`
	Quantity     int32  `json:"quantity"`
	UnitPrice    int64  `json:"unitPrice"`
	LineTotal    int64  `json:"lineTotal"`
	ProductID    int64  `json:"productId"`
	ProductTitle string `json:"productTitle"`
	ProductSlug  string `json:"productSlug"`
	ProductPrice int64  `json:"productPrice"`
	SalePrice    *int64 `json:"salePrice"`
	Size         string `json:"size"`
	Color        string `json:"color"`
	Stock        int32  `json:"stock"`
	ImageURL     string `json:"imageUrl"`
}

type cartResponse struct {
	ID       string             `json:"id"`
	Items    []cartItemResponse `json:"items"`
	SubTotal int64              `json:"subTotal"`
	Discount int64              `json:"discount"`
	Shipping int64              `json:"shipping"`
	Tax      int64              `json:"tax"`
	Total    int64              `json:"total"`
}

func toCartResponse(cart *domain.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, cartItemResponse{
			ID:           it.ID,
			VariantID:    it.VariantID,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			LineTotal:    it.LineTotal,
			ProductID:    it.ProductID,
			ProductTitle: it.ProductTitle,
			ProductSlug:  it.ProductSlug,
			ProductPrice: it.ProductPrice,
			SalePrice:    it.SalePrice,
			Size:         it.Size,
			Color:        it.Color,
			Stock:        it.Stock,
			ImageURL:     it.ImageURL,
		})
	}
	return cartResponse{
		ID:       cart.ID,
		Items:    items,
		SubTotal: cart.SubTotal,
		Discount: cart.Discount,
		Shipping: cart.Shipping,
		Tax:      cart.Tax,
		Total:    cart.Total,
	}
}

// Create handles POST /api/v1/carts
func (h *CartHandler) Create(c echo.Context) error {
	cartID, err := h.carts.Create(c.Request().Context())
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"cartId": cartID})
}

// Get handles GET /api/v1/carts/:id
func (h *CartHandler) Get(c echo.Context) error {
	cart, err := h.carts.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// AddItem handles POST /api/v1/carts/:id/items
func (h *CartHandler) AddItem(c echo.Context) error {
	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cart, err := h.carts.AddItem(c.Request().Context(), c.Param("id"), req.VariantID, req.Quantity)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// UpdateItem handles PUT /api/v1/carts/:id/items/:itemId
func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	cart, err := h.carts.UpdateItem(c.Request().Context(), c.Param("id"), c.Param("itemId"), req.Quantity)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// RemoveItem handles DELETE /api/v1/carts/:id/items/:itemId
func (h *CartHandler) RemoveItem(c echo.Context) error {
	cart, err := h.carts.RemoveItem(c.Request().Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}
