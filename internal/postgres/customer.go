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

// CustomerRepository implements repository.CustomerRepository using PostgreSQL.
type CustomerRepository struct {
	db DBTX
}

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return r.get(ctx, `WHERE customer_id = $1`, id)
}

func (r *CustomerRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Customer, error) {
	return r.get(ctx, `WHERE user_id = $1`, userID)
}

func (r *CustomerRepository) get(ctx context.Context, where string, arg any) (*domain.Customer, error) {
	var (
		c      domain.Customer
		userID pgtype.Int8
	)
	err := r.db.QueryRow(ctx, `
		SELECT customer_id, user_id, full_name, email, phone, address
		FROM customers `+where,
		arg,
	).Scan(&c.ID, &userID, &c.FullName, &c.Email, &c.Phone, &c.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}
	if userID.Valid {
		v := userID.Int64
		c.UserID = &v
	}
	return &c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, arg repository.CreateCustomerParams) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO customers (user_id, full_name, email, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING customer_id
	`, arg.UserID, arg.FullName, arg.Email, arg.Phone, arg.Address).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create customer: %w", err)
	}
	return id, nil
}

func (r *CustomerRepository) Update(ctx context.Context, arg repository.UpdateCustomerParams) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE customers
		SET full_name = $2, phone = $3, address = $4
		WHERE customer_id = $1
	`, arg.ID, arg.FullName, arg.Phone, arg.Address)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
