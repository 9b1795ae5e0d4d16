// control-tower/internal/domain/dashboard.go
package domain

// KPISummary holds the top-level dashboard figures. Rates and means over
// all-null columns are nil, never coerced to zero.
type KPISummary struct {
	TotalOrders      int      `json:"total_orders"`
	TotalRevenue     float64  `json:"total_revenue"`
	OnTimeRate       *float64 `json:"on_time_rate"`
	AvgDelayDays     *float64 `json:"avg_delay_days"`
	AvgCostPerOrder  *float64 `json:"avg_cost_per_order"`
	TotalEmissionsKg float64  `json:"total_emissions_kg"`
}

// GroupPerformance is one row of a group-by on-time summary.
type GroupPerformance struct {
	Key          string   `json:"key"`
	Orders       int      `json:"orders"`
	OnTimeRate   *float64 `json:"on_time_rate"`
	AvgDelayDays *float64 `json:"avg_delay_days"`
}

// GroupCosts is one row of a group-by cost component breakdown.
type GroupCosts struct {
	Key             string  `json:"key"`
	FuelCost        float64 `json:"fuel_cost"`
	LaborCost       float64 `json:"labor_cost"`
	MaintenanceCost float64 `json:"maintenance_cost"`
	InsuranceCost   float64 `json:"insurance_cost"`
	PackagingCost   float64 `json:"packaging_cost"`
	TechnologyFee   float64 `json:"technology_fee"`
	OtherOverhead   float64 `json:"other_overhead"`
}

// OriginEmissions is the emission footprint of one origin warehouse.
type OriginEmissions struct {
	Origin     string  `json:"origin"`
	TotalCO2Kg float64 `json:"total_co2_kg"`
	AvgCO2Kg   float64 `json:"avg_co2_kg"`
}

// LaneCost is one (origin, destination) lane ranked by average cost.
type LaneCost struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	AvgCost     float64 `json:"avg_cost"`
	AvgCO2Kg    float64 `json:"avg_co2_kg"`
}

// ScoredRoute is one master order with normalized signals and a composite
// route score (lower is better).
type ScoredRoute struct {
	OrderID      string  `json:"order_id"`
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
	Carrier      string  `json:"carrier"`
	Priority     string  `json:"priority"`
	Cost         float64 `json:"cost"`
	DelayDays    float64 `json:"delay_days"`
	EmissionsKg  float64 `json:"emissions_kg"`
	CostNorm     float64 `json:"cost_norm"`
	DelayNorm    float64 `json:"delay_norm"`
	EmissionNorm float64 `json:"emission_norm"`
	Score        float64 `json:"score"`
}

// RouteExtremes carries the best and worst scored routes of a selection.
// Best is ascending by score; worst is descending so the worst route leads.
type RouteExtremes struct {
	Best  []ScoredRoute `json:"best"`
	Worst []ScoredRoute `json:"worst"`
}

// LaneSummary aggregates performance per (origin, destination, carrier)
// lane. Lanes with an empty carrier are kept; lane identity survives an
// unknown carrier.
type LaneSummary struct {
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	Carrier       string   `json:"carrier"`
	Orders        int      `json:"orders"`
	AvgCost       *float64 `json:"avg_cost"`
	AvgDelayDays  *float64 `json:"avg_delay_days"`
	AvgEmissionKg *float64 `json:"avg_emission_kg"`
	OnTimeRate    *float64 `json:"on_time_rate"`
}

// CategoryDemand is the observed order demand for one (warehouse, product
// category) pair over the demand window.
type CategoryDemand struct {
	Warehouse       string  `json:"warehouse"`
	ProductCategory string  `json:"product_category"`
	OrdersCount     float64 `json:"orders_count"`
	TotalOrderValue float64 `json:"total_order_value"`
}

// EnrichedInventory is an inventory cell joined with demand and classified.
type EnrichedInventory struct {
	InventoryCell
	OrdersCount          float64 `json:"orders_count"`
	TotalOrderValue      float64 `json:"total_order_value"`
	EstimatedDailyDemand float64 `json:"estimated_daily_demand"`
	StockCoverDays       float64 `json:"stock_cover_days"` // +Inf when demand is zero
	Understock           bool    `json:"understock"`
	Overstock            bool    `json:"overstock"`
}

// Transfer is one proposed stock movement between warehouses.
type Transfer struct {
	Source          string  `json:"source"`
	Destination     string  `json:"destination"`
	ProductCategory string  `json:"product_category"`
	Quantity        float64 `json:"quantity"`
}

// Reorder is one proposed replenishment for an understocked cell.
type Reorder struct {
	Warehouse         string  `json:"warehouse"`
	ProductCategory   string  `json:"product_category"`
	SuggestedQuantity float64 `json:"suggested_quantity"`
}

// RatingPoint is one bucket of the weekly rating trend.
type RatingPoint struct {
	WeekStart string  `json:"week_start"`
	AvgRating float64 `json:"avg_rating"`
	Count     int     `json:"count"`
}

// IssueRating summarizes feedback per issue category.
type IssueRating struct {
	IssueCategory string  `json:"issue_category"`
	AvgRating     float64 `json:"avg_rating"`
	Count         int     `json:"count"`
}

// ThemeCount is one frequent word in feedback text.
type ThemeCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}
