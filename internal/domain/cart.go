package domain

// Cart is a pre-order collection of line items identified by an opaque token.
// Totals are computed from the items on every read; carts are never persisted
// with stale totals.
type Cart struct {
	ID       string
	Items    []CartItem
	SubTotal int64
	Discount int64
	Shipping int64
	Tax      int64
	Total    int64
}

// CartItem is one cart line. UnitPrice is captured when the item is added and
// is not re-fetched at checkout. The product/variant fields are a display
// snapshot joined in on read; Stock reflects the variant's current stock.
type CartItem struct {
	ID        string
	VariantID int64
	Quantity  int32
	UnitPrice int64
	LineTotal int64

	ProductID    int64
	ProductTitle string
	ProductSlug  string
	ProductPrice int64
	SalePrice    *int64
	Size         string
	Color        string
	Stock        int32
	ImageURL     string
}

// Recalculate recomputes line totals and the cart's monetary breakdown.
// Total = SubTotal - Discount + Shipping + Tax.
func (c *Cart) Recalculate() {
	var subtotal int64
	for i := range c.Items {
		c.Items[i].LineTotal = c.Items[i].UnitPrice * int64(c.Items[i].Quantity)
		subtotal += c.Items[i].LineTotal
	}
	c.SubTotal = subtotal
	c.Total = c.SubTotal - c.Discount + c.Shipping + c.Tax
}
