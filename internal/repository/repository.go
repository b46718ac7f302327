// Package repository defines the storage capability contracts the services
// depend on. Implementations live in internal/postgres; tests substitute
// in-memory fakes.
package repository

import (
	"context"
	"time"

	"yame/internal/domain"
)

// AddCartItemParams carries one new cart line.
type AddCartItemParams struct {
	ItemID    string
	CartID    string
	VariantID int64
	Quantity  int32
	UnitPrice int64
}

// CreateCustomerParams creates a customer record. UserID is nil for guests.
type CreateCustomerParams struct {
	UserID   *int64
	FullName string
	Email    string
	Phone    string
	Address  string
}

// UpdateCustomerParams updates a customer's contact fields.
type UpdateCustomerParams struct {
	ID       int64
	FullName string
	Phone    string
	Address  string
}

// CreateOrderParams carries an order header insert.
type CreateOrderParams struct {
	CustomerID      int64
	OrderNumber     string
	OrderDate       time.Time
	SubTotal        int64
	Discount        int64
	Shipping        int64
	Tax             int64
	Total           int64
	Status          domain.OrderStatus
	ShippingAddress string
	BillingAddress  string
	PaymentMethod   string
	ShippingMethod  string
	Notes           *string
}

// CreateOrderItemParams carries one order line insert.
type CreateOrderItemParams struct {
	OrderID   int64
	VariantID int64
	Quantity  int32
	UnitPrice int64
	LineTotal int64
}

// ListOrdersParams filters the admin order listing.
type ListOrdersParams struct {
	Status   *domain.OrderStatus
	Page     int
	PageSize int
}

// CreateUserParams creates an authenticated account.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	Role         string
}

// CartRepository stores carts and their line items. Reads join in product and
// variant display data, including current stock.
type CartRepository interface {
	CreateCart(ctx context.Context, cartID string) error
	CartExists(ctx context.Context, cartID string) (bool, error)
	GetItems(ctx context.Context, cartID string) ([]domain.CartItem, error)
	FindItemByVariant(ctx context.Context, cartID string, variantID int64) (*domain.CartItem, error)
	AddItem(ctx context.Context, arg AddCartItemParams) error
	UpdateItemQuantity(ctx context.Context, cartID, itemID string, quantity int32) error
	RemoveItem(ctx context.Context, cartID, itemID string) error
	// ClearItems deletes every item in the cart; the cart row survives.
	ClearItems(ctx context.Context, cartID string) error
}

// VariantRepository reads and mutates purchasable variants.
type VariantRepository interface {
	GetByID(ctx context.Context, variantID int64) (*domain.ProductVariant, error)
	// DecrementStock subtracts quantity from the variant's stock only if
	// enough remains, returning false when the conditional update matched no
	// row. This is the re-check that serializes concurrent checkouts.
	DecrementStock(ctx context.Context, variantID int64, quantity int32) (bool, error)
}

// CustomerRepository stores customer contact records.
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	// GetByUserID returns nil without error when the user has no customer record.
	GetByUserID(ctx context.Context, userID int64) (*domain.Customer, error)
	Create(ctx context.Context, arg CreateCustomerParams) (int64, error)
	Update(ctx context.Context, arg UpdateCustomerParams) error
}

// OrderRepository stores order headers and lines. Item reads join in the
// product/variant display snapshot.
type OrderRepository interface {
	Create(ctx context.Context, arg CreateOrderParams) (int64, error)
	AddItem(ctx context.Context, arg CreateOrderItemParams) error
	// GetByID returns nil without error when the order does not exist.
	GetByID(ctx context.Context, orderID int64) (*domain.Order, error)
	GetItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	List(ctx context.Context, arg ListOrdersParams) ([]domain.Order, int, error)
	// UpdateStatus returns false when the order does not exist.
	UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (bool, error)
	Stats(ctx context.Context) (*domain.OrderStats, error)
}

// UserRepository stores authenticated accounts.
type UserRepository interface {
	Create(ctx context.Context, arg CreateUserParams) (int64, error)
	// GetByEmail returns nil without error when no account matches.
	GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error)
	GetByID(ctx context.Context, id int64) (*domain.UserAccount, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// ProductRepository serves the read-only catalog.
type ProductRepository interface {
	List(ctx context.Context, q domain.ProductQuery) ([]domain.ProductListItem, int, error)
	// GetBySlug returns nil without error when no product matches.
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	AddReview(ctx context.Context, productID int64, rating int, comment string) error
}

// Repos is the repository set visible inside a transaction. The checkout
// workflow only ever touches these four.
type Repos interface {
	Carts() CartRepository
	Variants() VariantRepository
	Customers() CustomerRepository
	Orders() OrderRepository
}

// Store is the full storage surface. WithinTx runs fn inside one database
// transaction: if fn returns an error the transaction is rolled back,
// otherwise it is committed. The Repos handed to fn must not escape fn.
type Store interface {
	Repos
	Users() UserRepository
	Products() ProductRepository
	WithinTx(ctx context.Context, fn func(tx Repos) error) error
}
