// control-tower/internal/analytics/master_test.go
package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/nexgenlogistics/control-tower/internal/domain"
)

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func datetime(s string) *time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func f64(v float64) *float64 { return &v }

func TestBuildMasterOrders_EmptyOrders(t *testing.T) {
	ds := &domain.Dataset{
		DeliveryPerformance: []domain.DeliveryPerformance{{OrderID: "O1"}},
		RouteDistances:      []domain.RouteDistance{{OrderID: "O1"}},
	}
	if got := BuildMasterOrders(ds); len(got) != 0 {
		t.Fatalf("expected empty master for empty orders, got %d rows", len(got))
	}
	if got := BuildMasterOrders(nil); got != nil {
		t.Fatalf("expected nil master for nil dataset")
	}
}

func TestBuildMasterOrders_JoinCompleteness(t *testing.T) {
	ds := &domain.Dataset{
		Orders: []domain.Order{
			{OrderID: "O1"},
			{OrderID: "O2"},
			{OrderID: "O3"},
		},
		// O1 matched everywhere, O2 partially, O3 nowhere.
		DeliveryPerformance: []domain.DeliveryPerformance{
			{OrderID: "O1", Carrier: "BlueDart"},
			{OrderID: "O2", Carrier: "Delhivery"},
		},
		RouteDistances: []domain.RouteDistance{
			{OrderID: "O1", DistanceKM: f64(100)},
		},
		CostBreakdowns: []domain.CostBreakdown{
			{OrderID: "O1", FuelCost: 10},
		},
	}

	master := BuildMasterOrders(ds)
	if len(master) != 3 {
		t.Fatalf("expected one master row per order, got %d", len(master))
	}
	byID := map[string]domain.MasterOrder{}
	for _, m := range master {
		byID[m.OrderID] = m
	}

	if byID["O1"].Carrier != "BlueDart" || byID["O1"].DistanceKM == nil {
		t.Errorf("O1 should carry joined fields: %+v", byID["O1"])
	}
	if byID["O2"].DistanceKM != nil {
		t.Errorf("O2 has no route row, distance should be unknown")
	}
	if byID["O3"].Carrier != "" || byID["O3"].DistanceKM != nil || byID["O3"].DeliveryDelayDays != nil {
		t.Errorf("O3 matched nothing, joined fields should stay unknown: %+v", byID["O3"])
	}
	// Missing cost lines mean zero cost, not unknown.
	if byID["O3"].TotalDeliveryCost != 0 {
		t.Errorf("O3 total cost = %v, want 0", byID["O3"].TotalDeliveryCost)
	}
}

func TestBuildMasterOrders_CostTotals(t *testing.T) {
	ds := &domain.Dataset{
		Orders: []domain.Order{{OrderID: "O1"}},
		DeliveryPerformance: []domain.DeliveryPerformance{
			{OrderID: "O1", DeliveryCost: f64(50)},
		},
		CostBreakdowns: []domain.CostBreakdown{{
			OrderID:         "O1",
			FuelCost:        10,
			LaborCost:       20,
			MaintenanceCost: 5,
			InsuranceCost:   3,
			PackagingCost:   2,
			TechnologyFee:   1,
			OtherOverhead:   4,
			TollCost:        6,
		}},
	}

	m := BuildMasterOrders(ds)[0]
	if want := 10.0 + 20 + 5 + 6 + 4; m.TotalVariableCost != want {
		t.Errorf("TotalVariableCost = %v, want %v", m.TotalVariableCost, want)
	}
	if want := 50.0 + 10 + 20 + 5 + 3 + 2 + 1 + 4 + 6; m.TotalDeliveryCost != want {
		t.Errorf("TotalDeliveryCost = %v, want %v", m.TotalDeliveryCost, want)
	}
}

func TestBuildMasterOrders_DelayAndOnTime(t *testing.T) {
	tests := []struct {
		name     string
		promised *time.Time
		actual   *time.Time
		delay    *int
		onTime   *bool
	}{
		{"early", date("2024-03-10"), date("2024-03-09"), intp(-1), boolp(true)},
		{"exact", date("2024-03-10"), date("2024-03-10"), intp(0), boolp(true)},
		{"late", date("2024-03-10"), date("2024-03-13"), intp(3), boolp(false)},
		// Partial days floor rather than truncate toward zero.
		{"early partial day", datetime("2024-03-10 00:00:00"), datetime("2024-03-08 18:00:00"), intp(-2), boolp(true)},
		{"late partial day", datetime("2024-03-10 00:00:00"), datetime("2024-03-11 06:00:00"), intp(1), boolp(false)},
		{"missing promised", nil, date("2024-03-13"), nil, nil},
		{"missing actual", date("2024-03-10"), nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := &domain.Dataset{
				Orders: []domain.Order{{OrderID: "O1"}},
				DeliveryPerformance: []domain.DeliveryPerformance{{
					OrderID:              "O1",
					PromisedDeliveryDate: tt.promised,
					ActualDeliveryDate:   tt.actual,
				}},
			}
			m := BuildMasterOrders(ds)[0]
			if !eqIntPtr(m.DeliveryDelayDays, tt.delay) {
				t.Errorf("delay = %v, want %v", fmtIntPtr(m.DeliveryDelayDays), fmtIntPtr(tt.delay))
			}
			if !eqBoolPtr(m.OnTime, tt.onTime) {
				t.Errorf("on-time = %v, want %v", m.OnTime, tt.onTime)
			}
		})
	}
}

func TestBuildMasterOrders_CostPerKMAndEmissions(t *testing.T) {
	ds := &domain.Dataset{
		Orders: []domain.Order{{OrderID: "O1"}, {OrderID: "O2"}},
		RouteDistances: []domain.RouteDistance{
			{OrderID: "O1", DistanceKM: f64(100), FuelConsumedL: f64(10)},
			{OrderID: "O2", DistanceKM: f64(0)},
		},
		CostBreakdowns: []domain.CostBreakdown{
			{OrderID: "O1", FuelCost: 10, LaborCost: 20},
		},
		Fleet: []domain.Vehicle{
			{VehicleID: "V1", CO2KgPerKM: 0.5},
			{VehicleID: "V2", CO2KgPerKM: 0}, // zero entries excluded from the average
		},
	}

	master := BuildMasterOrders(ds)
	byID := map[string]domain.MasterOrder{}
	for _, m := range master {
		byID[m.OrderID] = m
	}

	o1 := byID["O1"]
	if o1.CostPerKM == nil || *o1.CostPerKM != 0.3 {
		t.Errorf("O1 cost per km = %v, want 0.3", fmtF64Ptr(o1.CostPerKM))
	}
	if o1.FuelEfficiency == nil || *o1.FuelEfficiency != 10 {
		t.Errorf("O1 fuel efficiency = %v, want 10", fmtF64Ptr(o1.FuelEfficiency))
	}
	if o1.EstimatedCO2Kg != 50 {
		t.Errorf("O1 estimated CO2 = %v, want 50", o1.EstimatedCO2Kg)
	}

	// Distance 0: cost per km undefined, emissions zero.
	o2 := byID["O2"]
	if o2.CostPerKM != nil {
		t.Errorf("O2 cost per km should be unknown for zero distance")
	}
	if o2.EstimatedCO2Kg != 0 {
		t.Errorf("O2 estimated CO2 = %v, want 0", o2.EstimatedCO2Kg)
	}
}

func TestFleetEmissionFactor(t *testing.T) {
	tests := []struct {
		name  string
		fleet []domain.Vehicle
		want  float64
	}{
		{"empty fleet falls back", nil, FallbackCO2KgPerKM},
		{"all zero falls back", []domain.Vehicle{{CO2KgPerKM: 0}}, FallbackCO2KgPerKM},
		{"averages non-zero entries", []domain.Vehicle{
			{CO2KgPerKM: 0.4}, {CO2KgPerKM: 0}, {CO2KgPerKM: 0.8},
		}, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FleetEmissionFactor(tt.fleet); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("FleetEmissionFactor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateBounds(t *testing.T) {
	master := []domain.MasterOrder{
		{OrderDate: date("2024-02-10")},
		{OrderDate: nil},
		{OrderDate: date("2024-01-05")},
	}
	min, max, ok := DateBounds(master)
	if !ok || min != "2024-01-05" || max != "2024-02-10" {
		t.Errorf("DateBounds = (%s, %s, %v)", min, max, ok)
	}
	if _, _, ok := DateBounds(nil); ok {
		t.Errorf("DateBounds over empty set should report not-ok")
	}
}

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }

func eqIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqBoolPtr(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func fmtIntPtr(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func fmtF64Ptr(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
