package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"yame/internal/domain"
	"yame/internal/repository"
)

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	db DBTX
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

// buildListFilter turns a normalized ProductQuery into a WHERE clause and its
// positional args. Sale price takes precedence over list price when filtering
// and sorting by price, matching what the customer actually pays.
func buildListFilter(q domain.ProductQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Q != "" {
		p := next("%" + q.Q + "%")
		conds = append(conds, fmt.Sprintf("(p.title ILIKE %[1]s OR p.short_description ILIKE %[1]s)", p))
	}
	if q.Category != "" {
		p := next(q.Category)
		conds = append(conds, fmt.Sprintf("p.primary_category = %s", p))
	}
	if q.PriceMin != nil {
		p := next(*q.PriceMin)
		conds = append(conds, fmt.Sprintf("coalesce(p.sale_price, p.price) >= %s", p))
	}
	if q.PriceMax != nil {
		p := next(*q.PriceMax)
		conds = append(conds, fmt.Sprintf("coalesce(p.sale_price, p.price) <= %s", p))
	}
	if len(q.Sizes) > 0 {
		p := next(q.Sizes)
		conds = append(conds, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM product_variants pv
			WHERE pv.product_id = p.product_id AND pv.size = ANY(%s)
		)`, p))
	}
	if len(q.Colors) > 0 {
		p := next(q.Colors)
		conds = append(conds, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM product_variants pv
			WHERE pv.product_id = p.product_id AND pv.color = ANY(%s)
		)`, p))
	}
	if q.OnSale {
		conds = append(conds, "p.sale_price IS NOT NULL")
	}
	if q.AvailableOnly {
		conds = append(conds, "p.availability")
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func listOrderBy(sort string) string {
	switch sort {
	case domain.SortPriceAsc:
		return "coalesce(p.sale_price, p.price) ASC, p.product_id"
	case domain.SortPriceDesc:
		return "coalesce(p.sale_price, p.price) DESC, p.product_id"
	case domain.SortNewest:
		return "p.created_at DESC, p.product_id"
	default:
		return "p.product_id"
	}
}

func (r *ProductRepository) List(ctx context.Context, q domain.ProductQuery) ([]domain.ProductListItem, int, error) {
	q.Normalize()
	where, args := buildListFilter(q)

	var total int
	countSQL := "SELECT count(*) FROM products p " + where
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	args = append(args, q.PageSize, (q.Page-1)*q.PageSize)
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT p.product_id, p.title, p.slug, p.price, p.sale_price,
			p.availability, p.primary_category, pi.image_url
		FROM products p
		LEFT JOIN LATERAL (
			SELECT image_url FROM product_images
			WHERE product_id = p.product_id
			ORDER BY sort_order, image_id
			LIMIT 1
		) pi ON true
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, where, listOrderBy(q.Sort), len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var items []domain.ProductListItem
	for rows.Next() {
		var (
			item      domain.ProductListItem
			salePrice pgtype.Int8
			imageURL  pgtype.Text
		)
		err := rows.Scan(
			&item.ID, &item.Title, &item.Slug, &item.Price, &salePrice,
			&item.Availability, &item.PrimaryCategory, &imageURL,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		if salePrice.Valid {
			v := salePrice.Int64
			item.SalePrice = &v
		}
		item.ImageURL = imageURL.String
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}
	return items, total, nil
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var (
		p         domain.Product
		salePrice pgtype.Int8
		material  pgtype.Text
		madeIn    pgtype.Text
	)
	err := r.db.QueryRow(ctx, `
		SELECT product_id, title, slug, short_description, description,
			price, sale_price, availability, tags, primary_category,
			material, made_in
		FROM products
		WHERE slug = $1
	`, slug).Scan(
		&p.ID, &p.Title, &p.Slug, &p.ShortDescription, &p.Description,
		&p.Price, &salePrice, &p.Availability, &p.Tags, &p.PrimaryCategory,
		&material, &madeIn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	if salePrice.Valid {
		v := salePrice.Int64
		p.SalePrice = &v
	}
	if material.Valid || madeIn.Valid {
		p.Specs = &domain.ProductSpecs{Material: material.String, MadeIn: madeIn.String}
	}

	if p.Images, err = r.images(ctx, p.ID); err != nil {
		return nil, err
	}
	if p.Variants, err = r.variants(ctx, p.ID); err != nil {
		return nil, err
	}
	if p.Reviews, err = r.reviewSummary(ctx, p.ID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) images(ctx context.Context, productID int64) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT image_url FROM product_images
		WHERE product_id = $1
		ORDER BY sort_order, image_id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query product images: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan product image: %w", err)
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

func (r *ProductRepository) variants(ctx context.Context, productID int64) ([]domain.ProductVariant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT variant_id, product_id, sku, size, color, stock, price
		FROM product_variants
		WHERE product_id = $1
		ORDER BY variant_id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query product variants: %w", err)
	}
	defer rows.Close()

	var variants []domain.ProductVariant
	for rows.Next() {
		var v domain.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Size, &v.Color, &v.Stock, &v.Price); err != nil {
			return nil, fmt.Errorf("failed to scan product variant: %w", err)
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

func (r *ProductRepository) reviewSummary(ctx context.Context, productID int64) (*domain.ReviewSummary, error) {
	var s domain.ReviewSummary
	err := r.db.QueryRow(ctx, `
		SELECT coalesce(avg(rating), 0), count(*)
		FROM reviews
		WHERE product_id = $1
	`, productID).Scan(&s.Average, &s.Count)
	if err != nil {
		return nil, fmt.Errorf("failed to query review summary: %w", err)
	}
	if s.Count == 0 {
		return nil, nil
	}
	return &s, nil
}

func (r *ProductRepository) AddReview(ctx context.Context, productID int64, rating int, comment string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reviews (product_id, rating, comment, created_at)
		VALUES ($1, $2, $3, now())
	`, productID, rating, comment)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}
