package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"yame/internal/repository"
)

// DBTX is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx,
// letting every repository run against the pool or inside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements repository.Store over a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool

	carts     *CartRepository
	variants  *VariantRepository
	customers *CustomerRepository
	orders    *OrderRepository
	users     *UserRepository
	products  *ProductRepository
}

// Compile-time check that Store implements repository.Store.
var _ repository.Store = (*Store)(nil)

// NewStore creates a PostgreSQL-backed store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:      pool,
		carts:     &CartRepository{db: pool},
		variants:  &VariantRepository{db: pool},
		customers: &CustomerRepository{db: pool},
		orders:    &OrderRepository{db: pool},
		users:     &UserRepository{db: pool},
		products:  &ProductRepository{db: pool},
	}
}

func (s *Store) Carts() repository.CartRepository         { return s.carts }
func (s *Store) Variants() repository.VariantRepository   { return s.variants }
func (s *Store) Customers() repository.CustomerRepository { return s.customers }
func (s *Store) Orders() repository.OrderRepository       { return s.orders }
func (s *Store) Users() repository.UserRepository         { return s.users }
func (s *Store) Products() repository.ProductRepository   { return s.products }

// txRepos is the repository set bound to one open transaction.
type txRepos struct {
	carts     *CartRepository
	variants  *VariantRepository
	customers *CustomerRepository
	orders    *OrderRepository
}

func (r *txRepos) Carts() repository.CartRepository         { return r.carts }
func (r *txRepos) Variants() repository.VariantRepository   { return r.variants }
func (r *txRepos) Customers() repository.CustomerRepository { return r.customers }
func (r *txRepos) Orders() repository.OrderRepository       { return r.orders }

// WithinTx runs fn inside a single database transaction. The transaction is
// committed when fn returns nil and rolled back on any error or panic, so
// callers never pair begin/commit/rollback by hand.
func (s *Store) WithinTx(ctx context.Context, fn func(tx repository.Repos) error) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		r := &txRepos{
			carts:     &CartRepository{db: tx},
			variants:  &VariantRepository{db: tx},
			customers: &CustomerRepository{db: tx},
			orders:    &OrderRepository{db: tx},
		}
		return fn(r)
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}
