// control-tower/internal/service/analytics_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/nexgenlogistics/control-tower/internal/cache"
	"github.com/nexgenlogistics/control-tower/internal/config"
	"github.com/nexgenlogistics/control-tower/internal/domain"
	"github.com/nexgenlogistics/control-tower/internal/routeplanner"
)

type stubRepo struct {
	dataset *domain.Dataset
	version string
	loads   int
}

func (s *stubRepo) LoadDataset(ctx context.Context) (*domain.Dataset, error) {
	s.loads++
	return s.dataset, nil
}

func (s *stubRepo) Version(ctx context.Context) (string, error) {
	return s.version, nil
}

func testConfig() config.AnalyticsConfig {
	return config.AnalyticsConfig{
		DefaultCostWeight:     0.4,
		DefaultDelayWeight:    0.35,
		DefaultEmissionWeight: 0.25,
		TopRoutes:             10,
	}
}

func testDataset() *domain.Dataset {
	d1 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)
	return &domain.Dataset{
		Orders: []domain.Order{
			{OrderID: "O1", OrderDate: &d1, Origin: "Mumbai", Destination: "Delhi",
				Priority: "Express", ProductCategory: "Electronics", CustomerSegment: "B2B", OrderValue: 100},
			{OrderID: "O2", OrderDate: &d2, Origin: "Chennai", Destination: "Pune",
				Priority: "Standard", ProductCategory: "Apparel", CustomerSegment: "B2C", OrderValue: 200},
		},
		RouteDistances: []domain.RouteDistance{
			{OrderID: "O1", DistanceKM: f64(100)},
			{OrderID: "O2", DistanceKM: f64(300)},
		},
		Inventory: []domain.InventoryCell{
			{Warehouse: "Mumbai", ProductCategory: "Electronics", StockLevel: 100, ReorderLevel: 20},
			{Warehouse: "Chennai", ProductCategory: "Electronics", StockLevel: 5, ReorderLevel: 20},
		},
	}
}

func newTestService(t *testing.T) (*AnalyticsService, *stubRepo) {
	t.Helper()
	repo := &stubRepo{dataset: testDataset(), version: "v1"}
	svc := NewAnalyticsService(repo, cache.NewNoopResultCache(), testConfig())
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	return svc, repo
}

func TestOperationsBeforeReload(t *testing.T) {
	svc := NewAnalyticsService(&stubRepo{dataset: testDataset(), version: "v1"},
		cache.NewNoopResultCache(), testConfig())
	if _, err := svc.Summary(context.Background(), domain.FilterCriteria{}); err == nil {
		t.Fatal("operations before the first reload must fail")
	}
}

func TestSummaryAndFilters(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	summary, err := svc.Summary(ctx, domain.FilterCriteria{})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.TotalOrders != 2 || summary.TotalRevenue != 300 {
		t.Errorf("summary wrong: %+v", summary)
	}

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	filtered, err := svc.Summary(ctx, domain.FilterCriteria{From: &from})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if filtered.TotalOrders != 1 || filtered.TotalRevenue != 200 {
		t.Errorf("filtered summary wrong: %+v", filtered)
	}
}

func TestFilterOptions(t *testing.T) {
	svc, _ := newTestService(t)

	options, err := svc.FilterOptions(context.Background())
	if err != nil {
		t.Fatalf("FilterOptions: %v", err)
	}
	if len(options.Origins) != 2 || options.Origins[0] != "Chennai" {
		t.Errorf("origins wrong: %+v", options.Origins)
	}
	if len(options.Priorities) != 2 {
		t.Errorf("priorities wrong: %+v", options.Priorities)
	}
}

func TestRouteScoresUseDefaultWeights(t *testing.T) {
	svc, _ := newTestService(t)

	scored, err := svc.RouteScores(context.Background(), domain.FilterCriteria{}, svc.DefaultWeights())
	if err != nil {
		t.Fatalf("RouteScores: %v", err)
	}
	if len(scored) != 2 {
		t.Fatalf("expected 2 scored routes, got %d", len(scored))
	}
	// O1 has lower cost and emissions, so it must rank first.
	if scored[0].OrderID != "O1" {
		t.Errorf("expected O1 first, got %+v", scored[0])
	}
}

func TestRouteScoresRejectInvalidWeights(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RouteScores(context.Background(), domain.FilterCriteria{},
		routeplanner.Weights{Cost: -1, Delay: 1, Emission: 0})
	if err == nil {
		t.Fatal("negative weights must be rejected")
	}
}

func TestWarehousePlan(t *testing.T) {
	svc, _ := newTestService(t)

	plan, err := svc.WarehousePlan(context.Background(), domain.FilterCriteria{})
	if err != nil {
		t.Fatalf("WarehousePlan: %v", err)
	}
	if len(plan.Inventory) != 2 {
		t.Fatalf("expected 2 inventory cells, got %d", len(plan.Inventory))
	}
	// Chennai is below its reorder level and must draw a reorder suggestion.
	if len(plan.Reorders) != 1 || plan.Reorders[0].Warehouse != "Chennai" {
		t.Errorf("reorders wrong: %+v", plan.Reorders)
	}
	// Mumbai has surplus and Chennai has deficit in the same category.
	if len(plan.Transfers) != 1 || plan.Transfers[0].Source != "Mumbai" || plan.Transfers[0].Destination != "Chennai" {
		t.Errorf("transfers wrong: %+v", plan.Transfers)
	}
}

func TestWarehousePlanRestrictsInventoryToSelectedProducts(t *testing.T) {
	ds := testDataset()
	ds.Inventory = append(ds.Inventory,
		domain.InventoryCell{Warehouse: "Chennai", ProductCategory: "Apparel", StockLevel: 5, ReorderLevel: 20})
	repo := &stubRepo{dataset: ds, version: "v1"}
	svc := NewAnalyticsService(repo, cache.NewNoopResultCache(), testConfig())
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	plan, err := svc.WarehousePlan(context.Background(), domain.FilterCriteria{Products: []string{"Apparel"}})
	if err != nil {
		t.Fatalf("WarehousePlan: %v", err)
	}
	if len(plan.Inventory) != 1 || plan.Inventory[0].ProductCategory != "Apparel" {
		t.Fatalf("inventory not restricted to the selected products: %+v", plan.Inventory)
	}
	for _, r := range plan.Reorders {
		if r.ProductCategory != "Apparel" {
			t.Errorf("reorder outside the selected products: %+v", r)
		}
	}
	for _, tr := range plan.Transfers {
		if tr.ProductCategory != "Apparel" {
			t.Errorf("transfer outside the selected products: %+v", tr)
		}
	}
}

func TestReloadSwapsSnapshot(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	repo.dataset = &domain.Dataset{
		Orders: []domain.Order{{OrderID: "O9", Origin: "Pune", OrderValue: 50}},
	}
	repo.version = "v2"
	if err := svc.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	info, err := svc.DatasetInfo(ctx)
	if err != nil {
		t.Fatalf("DatasetInfo: %v", err)
	}
	if info.Version != "v2" || info.Orders != 1 {
		t.Errorf("snapshot not swapped: %+v", info)
	}
}

func f64(v float64) *float64 { return &v }
