package domain

import "testing"

func TestCartRecalculate(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			{UnitPrice: 100000, Quantity: 3},
			{UnitPrice: 250000, Quantity: 1},
		},
	}

	cart.Recalculate()

	if cart.Items[0].LineTotal != 300000 {
		t.Errorf("first line total = %d, want 300000", cart.Items[0].LineTotal)
	}
	if cart.SubTotal != 550000 {
		t.Errorf("subtotal = %d, want 550000", cart.SubTotal)
	}
	if cart.Total != 550000 {
		t.Errorf("total = %d, want 550000", cart.Total)
	}
}

func TestCartRecalculateWithAdjustments(t *testing.T) {
	cart := &Cart{
		Items:    []CartItem{{UnitPrice: 500000, Quantity: 2}},
		Discount: 100000,
		Shipping: 30000,
		Tax:      50000,
	}

	cart.Recalculate()

	// Total = SubTotal - Discount + Shipping + Tax
	if cart.Total != 980000 {
		t.Errorf("total = %d, want 980000", cart.Total)
	}
}

func TestCartRecalculateEmpty(t *testing.T) {
	cart := &Cart{}
	cart.Recalculate()

	if cart.SubTotal != 0 || cart.Total != 0 {
		t.Errorf("empty cart totals = %d/%d, want 0/0", cart.SubTotal, cart.Total)
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		if !ValidOrderStatus(s) {
			t.Errorf("ValidOrderStatus(%q) = false, want true", s)
		}
	}
	if ValidOrderStatus("Lost") {
		t.Error(`ValidOrderStatus("Lost") = true, want false`)
	}
}

func TestProductQueryNormalize(t *testing.T) {
	q := ProductQuery{Page: 0, PageSize: 500, Sort: "cheapest"}
	q.Normalize()

	if q.Page != 1 {
		t.Errorf("page = %d, want 1", q.Page)
	}
	if q.PageSize != 12 {
		t.Errorf("pageSize = %d, want 12", q.PageSize)
	}
	if q.Sort != SortRelevance {
		t.Errorf("sort = %q, want %q", q.Sort, SortRelevance)
	}
}
