package domain

// DefaultTopProductsLimit caps the top-products listing when the
// caller does not ask for a specific size.
const DefaultTopProductsLimit = 10

// RegionSales summarizes order volume and revenue for one region.
type RegionSales struct {
	Region        string
	OrderCount    int64
	TotalRevenue  float64
	AvgOrderValue float64
}

// ProductSales summarizes completed sales for one product. UnitsSold
// counts delivered and shipped orders only.
type ProductSales struct {
	Name         string
	Category     string
	UnitsSold    int64
	TotalRevenue float64
}

// CategoryStats summarizes catalog size and sales for one category.
type CategoryStats struct {
	Category     string
	ProductCount int64
	TotalOrders  int64
	TotalRevenue float64
	AvgRating    float64
}
