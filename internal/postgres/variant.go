package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"yame/internal/domain"
	"yame/internal/repository"
)

// VariantRepository implements repository.VariantRepository using PostgreSQL.
type VariantRepository struct {
	db DBTX
}

var _ repository.VariantRepository = (*VariantRepository)(nil)

func (r *VariantRepository) GetByID(ctx context.Context, variantID int64) (*domain.ProductVariant, error) {
	var v domain.ProductVariant
	err := r.db.QueryRow(ctx, `
		SELECT variant_id, product_id, sku, size, color, stock, price
		FROM product_variants
		WHERE variant_id = $1
	`, variantID).Scan(&v.ID, &v.ProductID, &v.SKU, &v.Size, &v.Color, &v.Stock, &v.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query variant: %w", err)
	}
	return &v, nil
}

// DecrementStock performs the conditional decrement. The stock >= quantity
// guard makes concurrent checkouts against the same variant serialize on the
// row: the loser matches no row and the caller aborts its transaction.
func (r *VariantRepository) DecrementStock(ctx context.Context, variantID int64, quantity int32) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE product_variants
		SET stock = stock - $2
		WHERE variant_id = $1 AND stock >= $2
	`, variantID, quantity)
	if err != nil {
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
