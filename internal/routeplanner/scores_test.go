// control-tower/internal/routeplanner/scores_test.go
package routeplanner

import (
	"errors"
	"math"
	"testing"

	"github.com/nexgenlogistics/control-tower/internal/domain"
)

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }

func scoringMaster() []domain.MasterOrder {
	return []domain.MasterOrder{
		{OrderID: "O1", Origin: "Mumbai", Destination: "Delhi", Carrier: "BlueDart", TotalDeliveryCost: 100, DeliveryDelayDays: intp(0), EstimatedCO2Kg: 10},
		{OrderID: "O2", Origin: "Mumbai", Destination: "Delhi", Carrier: "BlueDart", TotalDeliveryCost: 200, DeliveryDelayDays: intp(2), EstimatedCO2Kg: 30},
		{OrderID: "O3", Origin: "Delhi", Destination: "Chennai", Carrier: "", TotalDeliveryCost: 300, DeliveryDelayDays: intp(4), EstimatedCO2Kg: 50},
	}
}

func TestWeightsNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      Weights
		want    Weights
		wantErr bool
	}{
		{"already normalized", Weights{0.4, 0.35, 0.25}, Weights{0.4, 0.35, 0.25}, false},
		{"scaled triple", Weights{0.8, 0.7, 0.5}, Weights{0.4, 0.35, 0.25}, false},
		{"all zero", Weights{}, Weights{}, true},
		{"negative component", Weights{1, -0.1, 0.1}, Weights{}, true},
		{"nan component", Weights{math.NaN(), 1, 0}, Weights{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Normalize()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidWeights) {
					t.Fatalf("expected ErrInvalidWeights, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got.Cost-tt.want.Cost) > 1e-9 ||
				math.Abs(got.Delay-tt.want.Delay) > 1e-9 ||
				math.Abs(got.Emission-tt.want.Emission) > 1e-9 {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeRouteScores_NormalizationBounds(t *testing.T) {
	scored, err := ComputeRouteScores(scoringMaster(), Weights{0.4, 0.35, 0.25})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scored) != 3 {
		t.Fatalf("expected 3 scored rows, got %d", len(scored))
	}

	for _, s := range scored {
		for _, v := range []float64{s.CostNorm, s.DelayNorm, s.EmissionNorm} {
			if v < 0 || v > 1 {
				t.Errorf("normalized value %v out of [0,1] for %s", v, s.OrderID)
			}
		}
	}
	// Best first: the cheapest, fastest, cleanest row normalizes to 0 on
	// every signal and must lead.
	if scored[0].OrderID != "O1" || scored[0].Score != 0 {
		t.Errorf("best row = %+v, want O1 with score 0", scored[0])
	}
	if scored[2].OrderID != "O3" || math.Abs(scored[2].Score-1) > 1e-9 {
		t.Errorf("worst row = %+v, want O3 with score 1", scored[2])
	}
}

func TestComputeRouteScores_DegenerateSignalsZero(t *testing.T) {
	master := []domain.MasterOrder{
		{OrderID: "O1", TotalDeliveryCost: 100, EstimatedCO2Kg: 10},
		{OrderID: "O2", TotalDeliveryCost: 100, EstimatedCO2Kg: 10},
	}
	scored, err := ComputeRouteScores(master, Weights{0.5, 0.3, 0.2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range scored {
		if s.CostNorm != 0 || s.DelayNorm != 0 || s.EmissionNorm != 0 || s.Score != 0 {
			t.Errorf("degenerate signals should normalize to zero: %+v", s)
		}
	}
}

func TestComputeRouteScores_NilDelayScoresAsZero(t *testing.T) {
	master := []domain.MasterOrder{
		{OrderID: "O1", DeliveryDelayDays: nil},
		{OrderID: "O2", DeliveryDelayDays: intp(5)},
	}
	scored, err := ComputeRouteScores(master, Weights{0, 1, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scored[0].OrderID != "O1" || scored[0].DelayNorm != 0 {
		t.Errorf("unknown delay should be scored optimistically: %+v", scored[0])
	}
}

func TestComputeRouteScores_RatioInvariantRanking(t *testing.T) {
	master := scoringMaster()
	a, err := ComputeRouteScores(master, mustNormalize(t, Weights{0.4, 0.35, 0.25}))
	if err != nil {
		t.Fatal(err)
	}
	b, err := ComputeRouteScores(master, mustNormalize(t, Weights{0.8, 0.7, 0.5}))
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i].OrderID != b[i].OrderID {
			t.Fatalf("ranking differs under proportional weights: %v vs %v", a[i].OrderID, b[i].OrderID)
		}
	}
}

func mustNormalize(t *testing.T, w Weights) Weights {
	t.Helper()
	n, err := w.Normalize()
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestComputeRouteScores_InvalidWeights(t *testing.T) {
	if _, err := ComputeRouteScores(scoringMaster(), Weights{}); !errors.Is(err, ErrInvalidWeights) {
		t.Fatalf("expected ErrInvalidWeights, got %v", err)
	}
}

func TestComputeRouteScores_EmptyMaster(t *testing.T) {
	scored, err := ComputeRouteScores(nil, Weights{0.4, 0.35, 0.25})
	if err != nil || scored != nil {
		t.Fatalf("empty selection should yield empty result, got (%v, %v)", scored, err)
	}
}

func TestBestAndWorstRoutes(t *testing.T) {
	scored, err := ComputeRouteScores(scoringMaster(), Weights{0.4, 0.35, 0.25})
	if err != nil {
		t.Fatal(err)
	}

	extremes := BestAndWorstRoutes(scored, 2)
	if len(extremes.Best) != 2 || len(extremes.Worst) != 2 {
		t.Fatalf("expected 2 best and 2 worst, got %d/%d", len(extremes.Best), len(extremes.Worst))
	}
	if extremes.Best[0].OrderID != "O1" {
		t.Errorf("best[0] = %s, want O1", extremes.Best[0].OrderID)
	}
	// Worst re-sorted descending: worst-of-worst leads.
	if extremes.Worst[0].OrderID != "O3" {
		t.Errorf("worst[0] = %s, want O3", extremes.Worst[0].OrderID)
	}
	if extremes.Worst[0].Score < extremes.Worst[1].Score {
		t.Errorf("worst rows should be descending by score")
	}

	// n larger than the population clamps.
	all := BestAndWorstRoutes(scored, 10)
	if len(all.Best) != 3 || len(all.Worst) != 3 {
		t.Errorf("clamped extremes wrong: %d/%d", len(all.Best), len(all.Worst))
	}
	if got := BestAndWorstRoutes(nil, 5); got.Best != nil || got.Worst != nil {
		t.Errorf("empty input should produce empty extremes")
	}
}

func TestSummarizeLanes_KeepsNullCarrier(t *testing.T) {
	master := []domain.MasterOrder{
		{Origin: "Mumbai", Destination: "Delhi", Carrier: "BlueDart", TotalDeliveryCost: 100, DeliveryDelayDays: intp(1), EstimatedCO2Kg: 10, OnTime: boolp(false)},
		{Origin: "Mumbai", Destination: "Delhi", Carrier: "BlueDart", TotalDeliveryCost: 300, DeliveryDelayDays: intp(3), EstimatedCO2Kg: 30, OnTime: boolp(false)},
		{Origin: "Delhi", Destination: "Chennai", Carrier: "", TotalDeliveryCost: 50, EstimatedCO2Kg: 5},
	}

	lanes := SummarizeLanes(master)
	if len(lanes) != 2 {
		t.Fatalf("expected 2 lanes (null carrier kept), got %d", len(lanes))
	}

	unknown := lanes[0]
	if unknown.Origin != "Delhi" || unknown.Carrier != "" || unknown.Orders != 1 {
		t.Errorf("null-carrier lane wrong: %+v", unknown)
	}
	if unknown.AvgDelayDays != nil || unknown.OnTimeRate != nil {
		t.Errorf("lane without delivery data should have undefined delay/on-time")
	}

	bd := lanes[1]
	if bd.Orders != 2 || *bd.AvgCost != 200 || *bd.AvgDelayDays != 2 || *bd.AvgEmissionKg != 20 || *bd.OnTimeRate != 0 {
		t.Errorf("BlueDart lane wrong: %+v", bd)
	}
}
