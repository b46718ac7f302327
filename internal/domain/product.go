package domain

// Product is a catalog entry with its variants, images, and review summary.
// Price fields are whole Vietnamese dong amounts.
type Product struct {
	ID               int64
	Title            string
	Slug             string
	ShortDescription string
	Description      string
	Price            int64
	SalePrice        *int64
	Images           []string
	Variants         []ProductVariant
	Availability     bool
	Tags             []string
	PrimaryCategory  string
	Specs            *ProductSpecs
	Reviews          *ReviewSummary
}

// ProductVariant is a purchasable size/color configuration of a product.
// Stock is decremented at checkout and never goes negative.
type ProductVariant struct {
	ID        int64
	ProductID int64
	SKU       string
	Size      string
	Color     string
	Stock     int32
	Price     int64
}

// ProductSpecs holds optional material/origin details shown on detail pages.
type ProductSpecs struct {
	Material string
	MadeIn   string
}

// ReviewSummary aggregates customer reviews for a product.
type ReviewSummary struct {
	Average float64
	Count   int
}

// ProductListItem is the lightweight shape returned by catalog listings.
type ProductListItem struct {
	ID              int64
	Title           string
	Slug            string
	Price           int64
	SalePrice       *int64
	ImageURL        string
	Availability    bool
	PrimaryCategory string
}

// Product sort keys accepted by catalog listings.
const (
	SortRelevance = "relevance"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
)

// ProductQuery carries catalog listing filters. Zero values mean "no filter".
type ProductQuery struct {
	Q             string
	Category      string
	PriceMin      *int64
	PriceMax      *int64
	Sizes         []string
	Colors        []string
	Sort          string
	Page          int
	PageSize      int
	OnSale        bool
	AvailableOnly bool
}

// Normalize clamps paging values and defaults the sort key.
func (q *ProductQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 12
	}
	switch q.Sort {
	case SortPriceAsc, SortPriceDesc, SortNewest:
	default:
		q.Sort = SortRelevance
	}
}
