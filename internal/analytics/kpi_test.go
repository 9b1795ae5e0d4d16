// control-tower/internal/analytics/kpi_test.go
package analytics

import (
	"math"
	"testing"

	"github.com/nexgenlogistics/control-tower/internal/domain"
)

func TestOverallKPIs_Empty(t *testing.T) {
	kpi := OverallKPIs(nil)
	if kpi.TotalOrders != 0 || kpi.TotalRevenue != 0 || kpi.TotalEmissionsKg != 0 {
		t.Errorf("empty KPIs should be zero-valued: %+v", kpi)
	}
	if kpi.OnTimeRate != nil || kpi.AvgDelayDays != nil || kpi.AvgCostPerOrder != nil {
		t.Errorf("means over an empty set must be undefined, not zero")
	}
}

func TestOverallKPIs(t *testing.T) {
	master := []domain.MasterOrder{
		{OrderValue: 100, TotalDeliveryCost: 40, EstimatedCO2Kg: 10, OnTime: boolp(true), DeliveryDelayDays: intp(-1)},
		{OrderValue: 200, TotalDeliveryCost: 60, EstimatedCO2Kg: 20, OnTime: boolp(false), DeliveryDelayDays: intp(3)},
		{OrderValue: 50, TotalDeliveryCost: 20, EstimatedCO2Kg: 5}, // delivery outcome unknown
	}

	kpi := OverallKPIs(master)
	if kpi.TotalOrders != 3 || kpi.TotalRevenue != 350 || kpi.TotalEmissionsKg != 35 {
		t.Errorf("totals wrong: %+v", kpi)
	}
	if kpi.OnTimeRate == nil || *kpi.OnTimeRate != 0.5 {
		t.Errorf("on-time rate = %v, want 0.5 (unknowns excluded)", fmtF64Ptr(kpi.OnTimeRate))
	}
	if kpi.AvgDelayDays == nil || *kpi.AvgDelayDays != 1 {
		t.Errorf("avg delay = %v, want 1", fmtF64Ptr(kpi.AvgDelayDays))
	}
	if kpi.AvgCostPerOrder == nil || *kpi.AvgCostPerOrder != 40 {
		t.Errorf("avg cost = %v, want 40", fmtF64Ptr(kpi.AvgCostPerOrder))
	}
}

func TestOverallKPIs_AllNullColumnUndefined(t *testing.T) {
	master := []domain.MasterOrder{
		{OrderValue: 100},
		{OrderValue: 200},
	}
	kpi := OverallKPIs(master)
	if kpi.OnTimeRate != nil {
		t.Error("on-time rate over an all-null column must be undefined")
	}
	if kpi.AvgDelayDays != nil {
		t.Error("avg delay over an all-null column must be undefined")
	}
}

func TestSummarizeByGroup(t *testing.T) {
	master := []domain.MasterOrder{
		{Carrier: "BlueDart", OnTime: boolp(true), DeliveryDelayDays: intp(0)},
		{Carrier: "BlueDart", OnTime: boolp(false), DeliveryDelayDays: intp(2)},
		{Carrier: "Delhivery", OnTime: boolp(true), DeliveryDelayDays: intp(-1)},
		{Carrier: ""}, // null group key: excluded, not bucketed as unknown
	}

	groups := SummarizeByGroup(master, GroupByCarrier)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d: %+v", len(groups), groups)
	}
	if groups[0].Key != "BlueDart" || groups[1].Key != "Delhivery" {
		t.Fatalf("groups should be sorted by key: %+v", groups)
	}
	bd := groups[0]
	if bd.Orders != 2 || bd.OnTimeRate == nil || *bd.OnTimeRate != 0.5 || bd.AvgDelayDays == nil || *bd.AvgDelayDays != 1 {
		t.Errorf("BlueDart summary wrong: %+v", bd)
	}
}

func TestSummarizeByGroup_UnsupportedColumn(t *testing.T) {
	master := []domain.MasterOrder{{Carrier: "BlueDart"}}
	if got := SummarizeByGroup(master, GroupColumn("vehicle")); len(got) != 0 {
		t.Errorf("unsupported column should produce no groups, got %+v", got)
	}
}

func TestCostBreakdownByGroup(t *testing.T) {
	master := []domain.MasterOrder{
		{Priority: "Express", FuelCost: 10, LaborCost: 5, TechnologyFee: 1},
		{Priority: "Express", FuelCost: 20, InsuranceCost: 3},
		{Priority: "Standard", PackagingCost: 2},
	}
	groups := CostBreakdownByGroup(master, GroupByPriority)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	express := groups[0]
	if express.Key != "Express" || express.FuelCost != 30 || express.LaborCost != 5 ||
		express.InsuranceCost != 3 || express.TechnologyFee != 1 {
		t.Errorf("express costs wrong: %+v", express)
	}
}

func TestEmissionsByOrigin(t *testing.T) {
	master := []domain.MasterOrder{
		{Origin: "Mumbai", EstimatedCO2Kg: 10},
		{Origin: "Mumbai", EstimatedCO2Kg: 30},
		{Origin: "Delhi", EstimatedCO2Kg: 8},
	}
	rows := EmissionsByOrigin(master)
	if len(rows) != 2 {
		t.Fatalf("expected 2 origins, got %d", len(rows))
	}
	mumbai := rows[1]
	if mumbai.Origin != "Mumbai" || mumbai.TotalCO2Kg != 40 || math.Abs(mumbai.AvgCO2Kg-20) > 1e-9 {
		t.Errorf("mumbai emissions wrong: %+v", mumbai)
	}
}

func TestHighCostLanes(t *testing.T) {
	master := []domain.MasterOrder{
		{Origin: "Mumbai", Destination: "Delhi", TotalDeliveryCost: 100, EstimatedCO2Kg: 10},
		{Origin: "Mumbai", Destination: "Delhi", TotalDeliveryCost: 200, EstimatedCO2Kg: 20},
		{Origin: "Delhi", Destination: "Chennai", TotalDeliveryCost: 400, EstimatedCO2Kg: 40},
		{Origin: "Chennai", Destination: "Kolkata", TotalDeliveryCost: 50, EstimatedCO2Kg: 5},
	}

	lanes := HighCostLanes(master, 2)
	if len(lanes) != 2 {
		t.Fatalf("expected 2 lanes, got %d", len(lanes))
	}
	if lanes[0].Origin != "Delhi" || lanes[0].AvgCost != 400 {
		t.Errorf("top lane wrong: %+v", lanes[0])
	}
	if lanes[1].Origin != "Mumbai" || lanes[1].AvgCost != 150 {
		t.Errorf("second lane wrong: %+v", lanes[1])
	}
}
