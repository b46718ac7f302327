package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"yame/internal/domain"
	"yame/internal/service"
)

// ProductHandler serves the public catalog endpoints.
type ProductHandler struct {
	products service.ProductService
	logger   *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(products service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger.With("handler", "product")}
}

type productListItemResponse struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Price           int64  `json:"price"`
	SalePrice       *int64 `json:"salePrice"`
	ImageURL        string `json:"imageUrl"`
	Availability    bool   `json:"availability"`
	PrimaryCategory string `json:"primaryCategory"`
}

type productListResponse struct {
	Items    []productListItemResponse `json:"items"`
	Total    int                       `json:"total"`
	Page     int                       `json:"page"`
	PageSize int                       `json:"pageSize"`
}

type variantResponse struct {
	ID    int64  `json:"id"`
	SKU   string `json:"sku"`
	Size  string `json:"size"`
	Color string `json:"color"`
	Stock int32  `json:"stock"`
	Price int64  `json:"price"`
}

type productDetailResponse struct {
	ID               int64             `json:"id"`
	Title            string            `json:"title"`
	Slug             string            `json:"slug"`
	ShortDescription string            `json:"shortDescription"`
	Description      string            `json:"description"`
	Price            int64             `json:"price"`
	SalePrice        *int64            `json:"salePrice"`
	Images           []string          `json:"images"`
	Variants         []variantResponse `json:"variants"`
	Availability     bool              `json:"availability"`
	Tags             []string          `json:"tags"`
	PrimaryCategory  string            `json:"primaryCategory"`
	Specs            *specsResponse    `json:"specs,omitempty"`
	Reviews          *reviewsResponse  `json:"reviews,omitempty"`
}

type specsResponse struct {
	Material string `json:"material"`
	MadeIn   string `json:"madeIn"`
}

type reviewsResponse struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type addReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// List handles GET /api/v1/products
func (h *ProductHandler) List(c echo.Context) error {
	q := parseProductQuery(c)

	items, total, err := h.products.List(c.Request().Context(), q)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	resp := productListResponse{
		Items:    make([]productListItemResponse, 0, len(items)),
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, productListItemResponse{
			ID:              it.ID,
			Title:           it.Title,
			Slug:            it.Slug,
			Price:           it.Price,
			SalePrice:       it.SalePrice,
			ImageURL:        it.ImageURL,
			Availability:    it.Availability,
			PrimaryCategory: it.PrimaryCategory,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/v1/products/:slug
func (h *ProductHandler) Get(c echo.Context) error {
	p, err := h.products.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, h.logger, err)
	}

	resp := productDetailResponse{
		ID:               p.ID,
		Title:            p.Title,
		Slug:             p.Slug,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		Price:            p.Price,
		SalePrice:        p.SalePrice,
		Images:           p.Images,
		Availability:     p.Availability,
		Tags:             p.Tags,
		PrimaryCategory:  p.PrimaryCategory,
	}
	for _, v := range p.Variants {
		resp.Variants = append(resp.Variants, variantResponse{
			ID:    v.ID,
			SKU:   v.SKU,
			Size:  v.Size,
			Color: v.Color,
			Stock: v.Stock,
			Price: v.Price,
		})
	}
	if p.Specs != nil {
		resp.Specs = &specsResponse{Material: p.Specs.Material, MadeIn: p.Specs.MadeIn}
	}
	if p.Reviews != nil {
		resp.Reviews = &reviewsResponse{Average: p.Reviews.Average, Count: p.Reviews.Count}
	}
	return c.JSON(http.StatusOK, resp)
}

// AddReview handles POST /api/v1/products/:id/reviews
func (h *ProductHandler) AddReview(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var req addReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.products.AddReview(c.Request().Context(), productID, req.Rating, req.Comment); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "review added"})
}

func parseProductQuery(c echo.Context) domain.ProductQuery {
	q := domain.ProductQuery{
		Q:        c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Sort:     c.QueryParam("sort"),
	}
	if v, err := strconv.ParseInt(c.QueryParam("priceMin"), 10, 64); err == nil {
		q.PriceMin = &v
	}
	if v, err := strconv.ParseInt(c.QueryParam("priceMax"), 10, 64); err == nil {
		q.PriceMax = &v
	}
	if s := c.QueryParam("sizes"); s != "" {
		q.Sizes = strings.Split(s, ",")
	}
	if s := c.QueryParam("colors"); s != "" {
		q.Colors = strings.Split(s, ",")
	}
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		q.Page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil {
		q.PageSize = v
	}
	q.OnSale = c.QueryParam("onSale") == "true"
	q.AvailableOnly = c.QueryParam("available") == "true"
	q.Normalize()
	return q
}
