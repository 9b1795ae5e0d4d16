// control-tower/internal/domain/master.go
package domain

import "time"

// MasterOrder is one joined, derived-field-enriched row per order. Fields
// sourced from optional tables are pointers: nil means the secondary table
// had no row for this order ("unknown"). Cost components are an exception
// and default to zero.
type MasterOrder struct {
	OrderID         string     `json:"order_id"`
	OrderDate       *time.Time `json:"order_date"`
	Origin          string     `json:"origin"`
	Destination     string     `json:"destination"`
	Priority        string     `json:"priority"`
	ProductCategory string     `json:"product_category"`
	CustomerSegment string     `json:"customer_segment"`
	Carrier         string     `json:"carrier"`
	OrderValue      float64    `json:"order_value"`

	PromisedDeliveryDate *time.Time `json:"promised_delivery_date"`
	ActualDeliveryDate   *time.Time `json:"actual_delivery_date"`
	CustomerRating       *float64   `json:"customer_rating"`

	DistanceKM    *float64 `json:"distance_km"`
	FuelConsumedL *float64 `json:"fuel_consumed_l"`

	// Cost components after the join, nulls already coerced to zero.
	DeliveryCost    float64 `json:"delivery_cost"`
	FuelCost        float64 `json:"fuel_cost"`
	LaborCost       float64 `json:"labor_cost"`
	MaintenanceCost float64 `json:"maintenance_cost"`
	InsuranceCost   float64 `json:"insurance_cost"`
	PackagingCost   float64 `json:"packaging_cost"`
	TechnologyFee   float64 `json:"technology_fee"`
	OtherOverhead   float64 `json:"other_overhead"`
	TollCost        float64 `json:"toll_cost"`

	// Derived metrics, computed once at join time and immutable thereafter.
	TotalVariableCost float64  `json:"total_variable_cost"`
	TotalDeliveryCost float64  `json:"total_delivery_cost"`
	DeliveryDelayDays *int     `json:"delivery_delay_days"`
	OnTime            *bool    `json:"on_time"`
	CostPerKM         *float64 `json:"cost_per_km"`
	FuelEfficiency    *float64 `json:"fuel_efficiency_km_per_l"`
	EstimatedCO2Kg    float64  `json:"estimated_co2_kg"`
}

// FilterCriteria is a conjunction of optional predicates over master orders.
// A nil date bound means unbounded on that side; an empty slice means no
// restriction on that dimension.
type FilterCriteria struct {
	From         *time.Time `json:"from"`
	To           *time.Time `json:"to"`
	Priorities   []string   `json:"priorities"`
	Products     []string   `json:"products"`
	Origins      []string   `json:"origins"`
	Destinations []string   `json:"destinations"`
	Segments     []string   `json:"segments"`
}

// IsZero reports whether no criterion is set.
func (c FilterCriteria) IsZero() bool {
	return c.From == nil && c.To == nil &&
		len(c.Priorities) == 0 && len(c.Products) == 0 &&
		len(c.Origins) == 0 && len(c.Destinations) == 0 &&
		len(c.Segments) == 0
}
