package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"yame/internal/domain"
	"yame/internal/repository"
)

// CartRepository implements repository.CartRepository using PostgreSQL.
type CartRepository struct {
	db DBTX
}

var _ repository.CartRepository = (*CartRepository)(nil)

func (r *CartRepository) CreateCart(ctx context.Context, cartID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO carts (cart_id, created_at, updated_at)
		VALUES ($1, now(), now())
	`, cartID)
	if err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

func (r *CartRepository) CartExists(ctx context.Context, cartID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM carts WHERE cart_id = $1)
	`, cartID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check cart existence: %w", err)
	}
	return exists, nil
}

// cartItemColumns is the joined select list shared by item reads.
const cartItemColumns = `
	ci.item_id, ci.variant_id, ci.quantity, ci.unit_price,
	p.product_id, p.title, p.slug, p.price, p.sale_price,
	pv.size, pv.color, pv.stock,
	pi.image_url
`

const cartItemJoins = `
	FROM cart_items ci
	JOIN product_variants pv ON pv.variant_id = ci.variant_id
	JOIN products p ON p.product_id = pv.product_id
	LEFT JOIN LATERAL (
		SELECT image_url FROM product_images
		WHERE product_id = p.product_id
		ORDER BY sort_order, image_id
		LIMIT 1
	) pi ON true
`

func (r *CartRepository) GetItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+cartItemColumns+cartItemJoins+`
		WHERE ci.cart_id = $1
		ORDER BY ci.added_at, ci.item_id
	`, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}
	return items, nil
}

func (r *CartRepository) FindItemByVariant(ctx context.Context, cartID string, variantID int64) (*domain.CartItem, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+cartItemColumns+cartItemJoins+`
		WHERE ci.cart_id = $1 AND ci.variant_id = $2
	`, cartID, variantID)

	item, err := scanCartItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find cart item: %w", err)
	}
	return item, nil
}

func (r *CartRepository) AddItem(ctx context.Context, arg repository.AddCartItemParams) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO cart_items (item_id, cart_id, variant_id, quantity, unit_price, added_at)
		VALUES ($1, $2, $3, $4, $5, now())
	`, arg.ItemID, arg.CartID, arg.VariantID, arg.Quantity, arg.UnitPrice)
	if err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}
	return nil
}

func (r *CartRepository) UpdateItemQuantity(ctx context.Context, cartID, itemID string, quantity int32) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE cart_items SET quantity = $3
		WHERE cart_id = $1 AND item_id = $2
	`, cartID, itemID, quantity)
	if err != nil {
		return fmt.Errorf("failed to update cart item quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *CartRepository) RemoveItem(ctx context.Context, cartID, itemID string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM cart_items WHERE cart_id = $1 AND item_id = $2
	`, cartID, itemID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *CartRepository) ClearItems(ctx context.Context, cartID string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM cart_items WHERE cart_id = $1
	`, cartID)
	if err != nil {
		return fmt.Errorf("failed to clear cart items: %w", err)
	}
	return nil
}

// scanCartItem scans one joined cart item row.
func scanCartItem(row pgx.Row) (*domain.CartItem, error) {
	var (
		item      domain.CartItem
		salePrice pgtype.Int8
		imageURL  pgtype.Text
	)
	err := row.Scan(
		&item.ID, &item.VariantID, &item.Quantity, &item.UnitPrice,
		&item.ProductID, &item.ProductTitle, &item.ProductSlug, &item.ProductPrice, &salePrice,
		&item.Size, &item.Color, &item.Stock,
		&imageURL,
	)
	if err != nil {
		return nil, err
	}
	if salePrice.Valid {
		v := salePrice.Int64
		item.SalePrice = &v
	}
	if imageURL.Valid {
		item.ImageURL = imageURL.String
	}
	item.LineTotal = item.UnitPrice * int64(item.Quantity)
	return &item, nil
}
