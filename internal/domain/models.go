// control-tower/internal/domain/models.go
package domain

import "time"

// Order is one shipment as recorded in the orders source. Order IDs are
// unique within a dataset; every other table left-joins onto this one.
type Order struct {
	OrderID         string     `json:"order_id" db:"order_id" csv:"Order_ID"`
	OrderDate       *time.Time `json:"order_date" db:"order_date" csv:"Order_Date"`
	Origin          string     `json:"origin" db:"origin" csv:"Origin"`
	Destination     string     `json:"destination" db:"destination" csv:"Destination"`
	Priority        string     `json:"priority" db:"priority" csv:"Priority"`
	ProductCategory string     `json:"product_category" db:"product_category" csv:"Product_Category"`
	CustomerSegment string     `json:"customer_segment" db:"customer_segment" csv:"Customer_Segment"`
	OrderValue      float64    `json:"order_value" db:"order_value" csv:"Order_Value_INR"`
}

// DeliveryPerformance holds the promised/actual delivery outcome of an order.
type DeliveryPerformance struct {
	OrderID              string     `json:"order_id" db:"order_id" csv:"Order_ID"`
	Carrier              string     `json:"carrier" db:"carrier" csv:"Carrier"`
	PromisedDeliveryDate *time.Time `json:"promised_delivery_date" db:"promised_delivery_date" csv:"Promised_Delivery_Date"`
	ActualDeliveryDate   *time.Time `json:"actual_delivery_date" db:"actual_delivery_date" csv:"Actual_Delivery_Date"`
	DeliveryCost         *float64   `json:"delivery_cost" db:"delivery_cost" csv:"Delivery_Cost_INR"`
	CustomerRating       *float64   `json:"customer_rating" db:"customer_rating" csv:"Customer_Rating"`
}

// RouteDistance holds the travelled distance and fuel burn of an order.
type RouteDistance struct {
	OrderID       string   `json:"order_id" db:"order_id" csv:"Order_ID"`
	DistanceKM    *float64 `json:"distance_km" db:"distance_km" csv:"Distance_km"`
	FuelConsumedL *float64 `json:"fuel_consumed_l" db:"fuel_consumed_l" csv:"Fuel_Consumed_L"`
}

// CostBreakdown itemizes the variable cost components of an order. A missing
// component means "no such cost", so all fields default to zero.
type CostBreakdown struct {
	OrderID         string  `json:"order_id" db:"order_id" csv:"Order_ID"`
	FuelCost        float64 `json:"fuel_cost" db:"fuel_cost" csv:"Fuel_Cost_INR"`
	LaborCost       float64 `json:"labor_cost" db:"labor_cost" csv:"Labor_Cost_INR"`
	MaintenanceCost float64 `json:"maintenance_cost" db:"maintenance_cost" csv:"Maintenance_Cost_INR"`
	InsuranceCost   float64 `json:"insurance_cost" db:"insurance_cost" csv:"Insurance_Cost_INR"`
	PackagingCost   float64 `json:"packaging_cost" db:"packaging_cost" csv:"Packaging_Cost_INR"`
	TechnologyFee   float64 `json:"technology_fee" db:"technology_fee" csv:"Technology_Fee_INR"`
	OtherOverhead   float64 `json:"other_overhead" db:"other_overhead" csv:"Other_Overhead_INR"`
	TollCost        float64 `json:"toll_cost" db:"toll_cost" csv:"Toll_Cost_INR"`
}

// Vehicle is one fleet vehicle; its per-km CO2 figure feeds the dataset-wide
// emission factor.
type Vehicle struct {
	VehicleID   string  `json:"vehicle_id" db:"vehicle_id" csv:"Vehicle_ID"`
	VehicleType string  `json:"vehicle_type" db:"vehicle_type" csv:"Vehicle_Type"`
	CO2KgPerKM  float64 `json:"co2_kg_per_km" db:"co2_kg_per_km" csv:"CO2_kg_per_km"`
}

// InventoryCell is the stock position of one (warehouse, product category)
// pair.
type InventoryCell struct {
	Warehouse          string     `json:"warehouse" db:"warehouse" csv:"Warehouse"`
	ProductCategory    string     `json:"product_category" db:"product_category" csv:"Product_Category"`
	StockLevel         float64    `json:"stock_level" db:"stock_level" csv:"Stock_Level"`
	ReorderLevel       float64    `json:"reorder_level" db:"reorder_level" csv:"Reorder_Level"`
	LastRestockedDate  *time.Time `json:"last_restocked_date" db:"last_restocked_date" csv:"Last_Restocked_Date"`
	StorageCostPerUnit float64    `json:"storage_cost_per_unit" db:"storage_cost_per_unit" csv:"Storage_Cost_Per_Unit"`
}

// Feedback is one customer feedback entry.
type Feedback struct {
	FeedbackID    string     `json:"feedback_id" db:"feedback_id" csv:"Feedback_ID"`
	OrderID       string     `json:"order_id" db:"order_id" csv:"Order_ID"`
	FeedbackDate  *time.Time `json:"feedback_date" db:"feedback_date" csv:"Feedback_Date"`
	Rating        *float64   `json:"rating" db:"rating" csv:"Rating"`
	FeedbackText  string     `json:"feedback_text" db:"feedback_text" csv:"Feedback_Text"`
	IssueCategory string     `json:"issue_category" db:"issue_category" csv:"Issue_Category"`
}

// Dataset bundles the raw source tables of one dataset load. Absent sources
// are represented as empty slices, never nil-with-meaning.
type Dataset struct {
	Orders              []Order
	DeliveryPerformance []DeliveryPerformance
	RouteDistances      []RouteDistance
	CostBreakdowns      []CostBreakdown
	Fleet               []Vehicle
	Inventory           []InventoryCell
	Feedback            []Feedback
}
