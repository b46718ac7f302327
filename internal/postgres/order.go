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

// OrderRepository implements repository.OrderRepository using PostgreSQL.
type OrderRepository struct {
	db DBTX
}

var _ repository.OrderRepository = (*OrderRepository)(nil)

func (r *OrderRepository) Create(ctx context.Context, arg repository.CreateOrderParams) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO orders (
			customer_id, order_number, order_date,
			sub_total, discount, shipping, tax, total,
			status, shipping_address, billing_address,
			payment_method, shipping_method, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING order_id
	`,
		arg.CustomerID, arg.OrderNumber, arg.OrderDate,
		arg.SubTotal, arg.Discount, arg.Shipping, arg.Tax, arg.Total,
		arg.Status, arg.ShippingAddress, arg.BillingAddress,
		arg.PaymentMethod, arg.ShippingMethod, arg.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create order: %w", err)
	}
	return id, nil
}

func (r *OrderRepository) AddItem(ctx context.Context, arg repository.CreateOrderItemParams) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO order_items (order_id, variant_id, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5)
	`, arg.OrderID, arg.VariantID, arg.Quantity, arg.UnitPrice, arg.LineTotal)
	if err != nil {
		return fmt.Errorf("failed to create order item: %w", err)
	}
	return nil
}

const orderColumns = `
	order_id, customer_id, order_number, order_date,
	sub_total, discount, shipping, tax, total,
	status, shipping_address, billing_address,
	payment_method, shipping_method, notes
`

func (r *OrderRepository) GetByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE order_id = $1
	`, orderID)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	return o, nil
}

func (r *OrderRepository) GetItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			oi.order_item_id, oi.order_id, oi.variant_id, oi.quantity, oi.unit_price, oi.line_total,
			p.product_id, p.title, p.slug, p.price,
			pv.size, pv.color,
			pi.image_url
		FROM order_items oi
		JOIN product_variants pv ON pv.variant_id = oi.variant_id
		JOIN products p ON p.product_id = pv.product_id
		LEFT JOIN LATERAL (
			SELECT image_url FROM product_images
			WHERE product_id = p.product_id
			ORDER BY sort_order, image_id
			LIMIT 1
		) pi ON true
		WHERE oi.order_id = $1
		ORDER BY oi.order_item_id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var (
			item     domain.OrderItem
			imageURL pgtype.Text
		)
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.VariantID, &item.Quantity, &item.UnitPrice, &item.LineTotal,
			&item.ProductID, &item.ProductTitle, &item.ProductSlug, &item.ProductPrice,
			&item.Size, &item.Color,
			&imageURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		if imageURL.Valid {
			item.ImageURL = imageURL.String
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}
	return items, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+qualifyOrderColumns("o")+`
		FROM orders o
		JOIN customers c ON c.customer_id = o.customer_id
		WHERE c.user_id = $1
		ORDER BY o.order_date DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *OrderRepository) List(ctx context.Context, arg repository.ListOrdersParams) ([]domain.Order, int, error) {
	where := ""
	args := []any{}
	if arg.Status != nil {
		where = "WHERE status = $1"
		args = append(args, *arg.Status)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM orders `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	limit := arg.PageSize
	offset := (arg.Page - 1) * arg.PageSize
	args = append(args, limit, offset)
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM orders %s
		ORDER BY order_date DESC
		LIMIT $%d OFFSET $%d
	`, orderColumns, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET status = $2 WHERE order_id = $1
	`, orderID, status)
	if err != nil {
		return false, fmt.Errorf("failed to update order status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *OrderRepository) Stats(ctx context.Context) (*domain.OrderStats, error) {
	rows, err := r.db.Query(ctx, `
		SELECT status, count(*), coalesce(sum(total), 0)
		FROM orders
		GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query order stats: %w", err)
	}
	defer rows.Close()

	stats := &domain.OrderStats{ByStatus: make(map[domain.OrderStatus]int64)}
	for rows.Next() {
		var (
			status  domain.OrderStatus
			count   int64
			revenue int64
		)
		if err := rows.Scan(&status, &count, &revenue); err != nil {
			return nil, fmt.Errorf("failed to scan order stats: %w", err)
		}
		stats.TotalOrders += count
		stats.ByStatus[status] = count
		if status != domain.OrderStatusCancelled {
			stats.Revenue += revenue
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order stats: %w", err)
	}
	return stats, nil
}

// scanOrder scans one order header row.
func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o        domain.Order
		shipAddr pgtype.Text
		billAddr pgtype.Text
		payment  pgtype.Text
		shipping pgtype.Text
		notes    pgtype.Text
	)
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.OrderNumber, &o.OrderDate,
		&o.SubTotal, &o.Discount, &o.Shipping, &o.Tax, &o.Total,
		&o.Status, &shipAddr, &billAddr,
		&payment, &shipping, &notes,
	)
	if err != nil {
		return nil, err
	}
	o.ShippingAddress = shipAddr.String
	o.BillingAddress = billAddr.String
	o.PaymentMethod = payment.String
	o.ShippingMethod = shipping.String
	o.Notes = notes.String
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	return orders, nil
}

// qualifyOrderColumns prefixes the shared order column list with a table alias.
func qualifyOrderColumns(alias string) string {
	return fmt.Sprintf(`
		%[1]s.order_id, %[1]s.customer_id, %[1]s.order_number, %[1]s.order_date,
		%[1]s.sub_total, %[1]s.discount, %[1]s.shipping, %[1]s.tax, %[1]s.total,
		%[1]s.status, %[1]s.shipping_address, %[1]s.billing_address,
		%[1]s.payment_method, %[1]s.shipping_method, %[1]s.notes
	`, alias)
}
