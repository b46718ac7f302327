package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"yame/internal/domain"
	"yame/internal/repository"
)

// fakeStore is an in-memory repository.Store. WithinTx snapshots the state
// before running fn and restores it when fn fails, mirroring a rollback.
type fakeStore struct {
	carts      map[string][]domain.CartItem
	variants   map[int64]*domain.ProductVariant
	customers  map[int64]*domain.Customer
	orders     map[int64]*domain.Order
	orderItems map[int64][]domain.OrderItem
	users      map[int64]*domain.UserAccount

	nextCustomerID int64
	nextOrderID    int64
	nextUserID     int64

	failDecrement bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		carts:          map[string][]domain.CartItem{},
		variants:       map[int64]*domain.ProductVariant{},
		customers:      map[int64]*domain.Customer{},
		orders:         map[int64]*domain.Order{},
		orderItems:     map[int64][]domain.OrderItem{},
		users:          map[int64]*domain.UserAccount{},
		nextCustomerID: 1,
		nextOrderID:    1,
		nextUserID:     1,
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	cp := newFakeStore()
	cp.nextCustomerID = s.nextCustomerID
	cp.nextOrderID = s.nextOrderID
	cp.nextUserID = s.nextUserID
	for k, v := range s.carts {
		items := make([]domain.CartItem, len(v))
		copy(items, v)
		cp.carts[k] = items
	}
	for k, v := range s.variants {
		c := *v
		cp.variants[k] = &c
	}
	for k, v := range s.customers {
		c := *v
		cp.customers[k] = &c
	}
	for k, v := range s.orders {
		c := *v
		cp.orders[k] = &c
	}
	for k, v := range s.orderItems {
		items := make([]domain.OrderItem, len(v))
		copy(items, v)
		cp.orderItems[k] = items
	}
	for k, v := range s.users {
		c := *v
		cp.users[k] = &c
	}
	return cp
}

func (s *fakeStore) restore(from *fakeStore) {
	s.carts = from.carts
	s.variants = from.variants
	s.customers = from.customers
	s.orders = from.orders
	s.orderItems = from.orderItems
	s.users = from.users
	s.nextCustomerID = from.nextCustomerID
	s.nextOrderID = from.nextOrderID
	s.nextUserID = from.nextUserID
}

func (s *fakeStore) Carts() repository.CartRepository         { return &fakeCarts{s} }
func (s *fakeStore) Variants() repository.VariantRepository   { return &fakeVariants{s} }
func (s *fakeStore) Customers() repository.CustomerRepository { return &fakeCustomers{s} }
func (s *fakeStore) Orders() repository.OrderRepository       { return &fakeOrders{s} }
func (s *fakeStore) Users() repository.UserRepository         { return &fakeUsers{s} }
func (s *fakeStore) Products() repository.ProductRepository   { return &fakeProducts{} }

func (s *fakeStore) WithinTx(ctx context.Context, fn func(tx repository.Repos) error) error {
	snap := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(snap)
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// addVariant seeds a variant and returns it.
func (s *fakeStore) addVariant(id int64, title string, stock int32, price int64) *domain.ProductVariant {
	v := &domain.ProductVariant{ID: id, ProductID: id, SKU: fmt.Sprintf("SKU-%d", id), Stock: stock, Price: price}
	s.variants[id] = v
	return v
}

// addCartItem seeds a cart line, creating the cart if needed.
func (s *fakeStore) addCartItem(cartID, itemID string, variantID int64, title string, qty int32, unitPrice int64) {
	if _, ok := s.carts[cartID]; !ok {
		s.carts[cartID] = []domain.CartItem{}
	}
	s.carts[cartID] = append(s.carts[cartID], domain.CartItem{
		ID:           itemID,
		VariantID:    variantID,
		Quantity:     qty,
		UnitPrice:    unitPrice,
		LineTotal:    unitPrice * int64(qty),
		ProductTitle: title,
	})
}

type fakeCarts struct{ s *fakeStore }

func (f *fakeCarts) CreateCart(ctx context.Context, cartID string) error {
	f.s.carts[cartID] = []domain.CartItem{}
	return nil
}

func (f *fakeCarts) CartExists(ctx context.Context, cartID string) (bool, error) {
	_, ok := f.s.carts[cartID]
	return ok, nil
}

func (f *fakeCarts) GetItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	items := make([]domain.CartItem, len(f.s.carts[cartID]))
	copy(items, f.s.carts[cartID])
	return items, nil
}

func (f *fakeCarts) FindItemByVariant(ctx context.Context, cartID string, variantID int64) (*domain.CartItem, error) {
	for _, it := range f.s.carts[cartID] {
		if it.VariantID == variantID {
			c := it
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCarts) AddItem(ctx context.Context, arg repository.AddCartItemParams) error {
	f.s.addCartItem(arg.CartID, arg.ItemID, arg.VariantID, "", arg.Quantity, arg.UnitPrice)
	return nil
}

func (f *fakeCarts) UpdateItemQuantity(ctx context.Context, cartID, itemID string, quantity int32) error {
	items := f.s.carts[cartID]
	for i := range items {
		if items[i].ID == itemID {
			items[i].Quantity = quantity
			items[i].LineTotal = items[i].UnitPrice * int64(quantity)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeCarts) RemoveItem(ctx context.Context, cartID, itemID string) error {
	items := f.s.carts[cartID]
	for i := range items {
		if items[i].ID == itemID {
			f.s.carts[cartID] = append(items[:i:i], items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeCarts) ClearItems(ctx context.Context, cartID string) error {
	f.s.carts[cartID] = []domain.CartItem{}
	return nil
}

type fakeVariants struct{ s *fakeStore }

func (f *fakeVariants) GetByID(ctx context.Context, variantID int64) (*domain.ProductVariant, error) {
	v, ok := f.s.variants[variantID]
	if !ok {
		return nil, nil
	}
	c := *v
	return &c, nil
}

func (f *fakeVariants) DecrementStock(ctx context.Context, variantID int64, quantity int32) (bool, error) {
	if f.s.failDecrement {
		return false, fmt.Errorf("connection reset")
	}
	v, ok := f.s.variants[variantID]
	if !ok || v.Stock < quantity {
		return false, nil
	}
	v.Stock -= quantity
	return true, nil
}

type fakeCustomers struct{ s *fakeStore }

func (f *fakeCustomers) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	c, ok := f.s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomers) GetByUserID(ctx context.Context, userID int64) (*domain.Customer, error) {
	for _, c := range f.s.customers {
		if c.UserID != nil && *c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomers) Create(ctx context.Context, arg repository.CreateCustomerParams) (int64, error) {
	id := f.s.nextCustomerID
	f.s.nextCustomerID++
	f.s.customers[id] = &domain.Customer{
		ID:       id,
		UserID:   arg.UserID,
		FullName: arg.FullName,
		Email:    arg.Email,
		Phone:    arg.Phone,
		Address:  arg.Address,
	}
	return id, nil
}

func (f *fakeCustomers) Update(ctx context.Context, arg repository.UpdateCustomerParams) error {
	c, ok := f.s.customers[arg.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	c.FullName = arg.FullName
	c.Phone = arg.Phone
	c.Address = arg.Address
	return nil
}

type fakeOrders struct{ s *fakeStore }

func (f *fakeOrders) Create(ctx context.Context, arg repository.CreateOrderParams) (int64, error) {
	id := f.s.nextOrderID
	f.s.nextOrderID++
	notes := ""
	if arg.Notes != nil {
		notes = *arg.Notes
	}
	f.s.orders[id] = &domain.Order{
		ID:              id,
		CustomerID:      arg.CustomerID,
		OrderNumber:     arg.OrderNumber,
		OrderDate:       arg.OrderDate,
		SubTotal:        arg.SubTotal,
		Discount:        arg.Discount,
		Shipping:        arg.Shipping,
		Tax:             arg.Tax,
		Total:           arg.Total,
		Status:          arg.Status,
		ShippingAddress: arg.ShippingAddress,
		BillingAddress:  arg.BillingAddress,
		PaymentMethod:   arg.PaymentMethod,
		ShippingMethod:  arg.ShippingMethod,
		Notes:           notes,
	}
	return id, nil
}

func (f *fakeOrders) AddItem(ctx context.Context, arg repository.CreateOrderItemParams) error {
	items := f.s.orderItems[arg.OrderID]
	f.s.orderItems[arg.OrderID] = append(items, domain.OrderItem{
		ID:        int64(len(items) + 1),
		OrderID:   arg.OrderID,
		VariantID: arg.VariantID,
		Quantity:  arg.Quantity,
		UnitPrice: arg.UnitPrice,
		LineTotal: arg.LineTotal,
	})
	return nil
}

func (f *fakeOrders) GetByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	o, ok := f.s.orders[orderID]
	if !ok {
		return nil, nil
	}
	c := *o
	return &c, nil
}

func (f *fakeOrders) GetItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, len(f.s.orderItems[orderID]))
	copy(items, f.s.orderItems[orderID])
	return items, nil
}

func (f *fakeOrders) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.s.orders {
		c := f.s.customers[o.CustomerID]
		if c != nil && c.UserID != nil && *c.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrders) List(ctx context.Context, arg repository.ListOrdersParams) ([]domain.Order, int, error) {
	var out []domain.Order
	for _, o := range f.s.orders {
		if arg.Status != nil && o.Status != *arg.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, len(out), nil
}

func (f *fakeOrders) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (bool, error) {
	o, ok := f.s.orders[orderID]
	if !ok {
		return false, nil
	}
	o.Status = status
	return true, nil
}

func (f *fakeOrders) Stats(ctx context.Context) (*domain.OrderStats, error) {
	stats := &domain.OrderStats{ByStatus: map[domain.OrderStatus]int64{}}
	for _, o := range f.s.orders {
		stats.TotalOrders++
		stats.ByStatus[o.Status]++
		if o.Status != domain.OrderStatusCancelled {
			stats.Revenue += o.Total
		}
	}
	return stats, nil
}

type fakeUsers struct{ s *fakeStore }

func (f *fakeUsers) Create(ctx context.Context, arg repository.CreateUserParams) (int64, error) {
	id := f.s.nextUserID
	f.s.nextUserID++
	f.s.users[id] = &domain.UserAccount{
		ID:           id,
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
		Role:         arg.Role,
	}
	return id, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	for _, u := range f.s.users {
		if u.Email == email {
			return f.withCustomer(u), nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id int64) (*domain.UserAccount, error) {
	u, ok := f.s.users[id]
	if !ok {
		return nil, nil
	}
	return f.withCustomer(u), nil
}

// withCustomer mirrors the production query, which joins the customer record
// in for the display fields.
func (f *fakeUsers) withCustomer(u *domain.UserAccount) *domain.UserAccount {
	c := *u
	for _, cust := range f.s.customers {
		if cust.UserID != nil && *cust.UserID == u.ID {
			c.FullName = cust.FullName
			c.Phone = cust.Phone
			break
		}
	}
	return &c
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	u, ok := f.s.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakeProducts struct{}

func (f *fakeProducts) List(ctx context.Context, q domain.ProductQuery) ([]domain.ProductListItem, int, error) {
	return nil, 0, nil
}

func (f *fakeProducts) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return nil, nil
}

func (f *fakeProducts) AddReview(ctx context.Context, productID int64, rating int, comment string) error {
	return nil
}

var _ repository.Store = (*fakeStore)(nil)
