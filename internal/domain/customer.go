package domain

import "time"

// Customer is the contact/shipping record an order points at. UserID links it
// to an authenticated account; guest checkouts leave it nil. Customer records
// are created lazily at registration or checkout and never mutated by the
// checkout flow.
type Customer struct {
	ID       int64
	UserID   *int64
	FullName string
	Email    string
	Phone    string
	Address  string
}

// UserAccount is an authenticated storefront account. FullName and Phone come
// from the linked customer record when present.
type UserAccount struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	FullName     string
	Phone        string
}

// Account roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)
