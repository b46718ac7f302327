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

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db DBTX
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, arg repository.CreateUserParams) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, role, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING user_id
	`, arg.Email, arg.PasswordHash, arg.Role).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// userColumns joins in the customer profile so callers get name and phone in
// one read. Accounts without a customer record scan NULLs.
const userColumns = `
	SELECT u.user_id, u.email, u.password_hash, u.role, u.created_at,
		c.full_name, c.phone
	FROM users u
	LEFT JOIN customers c ON c.user_id = u.user_id
`

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	u, err := r.get(ctx, `WHERE u.email = $1`, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.UserAccount, error) {
	u, err := r.get(ctx, `WHERE u.user_id = $1`, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) get(ctx context.Context, where string, arg any) (*domain.UserAccount, error) {
	var (
		u        domain.UserAccount
		fullName pgtype.Text
		phone    pgtype.Text
	)
	err := r.db.QueryRow(ctx, userColumns+where, arg).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &fullName, &phone)
	if err != nil {
		return nil, err
	}
	u.FullName = fullName.String
	u.Phone = phone.String
	return &u, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET password_hash = $2 WHERE user_id = $1
	`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
