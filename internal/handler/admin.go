package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"yame/internal/domain"
	"yame/internal/repository"
	"yame/internal/service"
)

// AdminHandler serves the back-office order endpoints.
type AdminHandler struct {
	orders service.OrderService
	logger *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(orders service.OrderService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{orders: orders, logger: logger.With("handler", "admin")}
}

type updateStatusRequest struct {
	Status domain.OrderStatus `json:"status" validate:"required"`
}

type adminOrderListResponse struct {
	Orders   []orderResponse `json:"orders"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

type statsResponse struct {
	TotalOrders int64                        `json:"totalOrders"`
	Revenue     int64                        `json:"revenue"`
	ByStatus    map[domain.OrderStatus]int64 `json:"byStatus"`
}

// ListOrders handles GET /api/v1/admin/orders
func (h *AdminHandler) ListOrders(c echo.Context) error {
	arg := repository.ListOrdersParams{}
	if s := c.QueryParam("status"); s != "" {
		status := domain.OrderStatus(s)
		arg.Status = &status
	}
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		arg.Page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil {
		arg.PageSize = v
	}
	if arg.Page < 1 {
		arg.Page = 1
	}
	if arg.PageSize < 1 || arg.PageSize > 100 {
		arg.PageSize = 20
	}

	orders, total, err := h.orders.List(c.Request().Context(), arg)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	resp := adminOrderListResponse{
		Orders:   make([]orderResponse, 0, len(orders)),
		Total:    total,
		Page:     arg.Page,
		PageSize: arg.PageSize,
	}
	for i := range orders {
		resp.Orders = append(resp.Orders, toOrderResponse(&orders[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetOrder handles GET /api/v1/admin/orders/:id
func (h *AdminHandler) GetOrder(c echo.Context) error {
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

// UpdateStatus handles PUT /api/v1/admin/orders/:id/status
func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.orders.UpdateStatus(c.Request().Context(), orderID, req.Status); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "status updated"})
}

// Stats handles GET /api/v1/admin/dashboard
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.orders.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, statsResponse{
		TotalOrders: stats.TotalOrders,
		Revenue:     stats.Revenue,
		ByStatus:    stats.ByStatus,
	})
}
