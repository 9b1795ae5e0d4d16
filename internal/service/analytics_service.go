// control-tower/internal/service/analytics_service.go

// Package service glues the dataset repository, the analytics core and the
// result cache together. The service holds one immutable snapshot of the
// joined master orders; Reload swaps it atomically.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nexgenlogistics/control-tower/internal/analytics"
	"github.com/nexgenlogistics/control-tower/internal/cache"
	"github.com/nexgenlogistics/control-tower/internal/config"
	"github.com/nexgenlogistics/control-tower/internal/domain"
	"github.com/nexgenlogistics/control-tower/internal/feedback"
	"github.com/nexgenlogistics/control-tower/internal/repository"
	"github.com/nexgenlogistics/control-tower/internal/routeplanner"
	"github.com/nexgenlogistics/control-tower/internal/warehouse"
)

type snapshot struct {
	version  string
	dataset  *domain.Dataset
	master   []domain.MasterOrder
	loadedAt time.Time
}

type AnalyticsService struct {
	repo  repository.DatasetRepository
	cache cache.ResultCache
	cfg   config.AnalyticsConfig

	mu   sync.RWMutex
	snap *snapshot
}

func NewAnalyticsService(repo repository.DatasetRepository, results cache.ResultCache, cfg config.AnalyticsConfig) *AnalyticsService {
	return &AnalyticsService{
		repo:  repo,
		cache: results,
		cfg:   cfg,
	}
}

// Reload loads the dataset, rebuilds the master orders and swaps the
// snapshot. Previously memoized results become unreachable because the
// dataset version is part of every cache key.
func (s *AnalyticsService) Reload(ctx context.Context) error {
	version, err := s.repo.Version(ctx)
	if err != nil {
		return fmt.Errorf("resolve dataset version: %w", err)
	}

	ds, err := s.repo.LoadDataset(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	master := analytics.BuildMasterOrders(ds)

	s.mu.Lock()
	s.snap = &snapshot{
		version:  version,
		dataset:  ds,
		master:   master,
		loadedAt: time.Now(),
	}
	s.mu.Unlock()

	log.Info().
		Str("version", version).
		Int("orders", len(master)).
		Msg("dataset snapshot refreshed")
	return nil
}

func (s *AnalyticsService) current() (*snapshot, error) {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()
	if snap == nil {
		return nil, fmt.Errorf("no dataset loaded")
	}
	return snap, nil
}

// DatasetInfo describes the loaded snapshot. The date bounds are empty when
// no order carries a date.
type DatasetInfo struct {
	Version  string    `json:"version"`
	Orders   int       `json:"orders"`
	LoadedAt time.Time `json:"loaded_at"`
	MinDate  string    `json:"min_date,omitempty"`
	MaxDate  string    `json:"max_date,omitempty"`
}

func (s *AnalyticsService) DatasetInfo(ctx context.Context) (*DatasetInfo, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	info := &DatasetInfo{
		Version:  snap.version,
		Orders:   len(snap.master),
		LoadedAt: snap.loadedAt,
	}
	if min, max, ok := analytics.DateBounds(snap.master); ok {
		info.MinDate = min
		info.MaxDate = max
	}
	return info, nil
}

// FilterOptions lists the distinct values of each filterable dimension.
type FilterOptions struct {
	Priorities   []string `json:"priorities"`
	Products     []string `json:"products"`
	Origins      []string `json:"origins"`
	Destinations []string `json:"destinations"`
	Segments     []string `json:"segments"`
}

func (s *AnalyticsService) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return &FilterOptions{
		Priorities:   distinct(snap.master, func(m domain.MasterOrder) string { return m.Priority }),
		Products:     distinct(snap.master, func(m domain.MasterOrder) string { return m.ProductCategory }),
		Origins:      distinct(snap.master, func(m domain.MasterOrder) string { return m.Origin }),
		Destinations: distinct(snap.master, func(m domain.MasterOrder) string { return m.Destination }),
		Segments:     distinct(snap.master, func(m domain.MasterOrder) string { return m.CustomerSegment }),
	}, nil
}

// Summary computes the top-level KPIs for the filtered selection.
func (s *AnalyticsService) Summary(ctx context.Context, criteria domain.FilterCriteria) (*domain.KPISummary, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	key := cache.Key(snap.version, "summary", fingerprint(criteria))
	var cached domain.KPISummary
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		log.Warn().Err(err).Msg("summary cache read failed")
	} else if hit {
		return &cached, nil
	}

	summary := analytics.OverallKPIs(analytics.ApplyFilters(snap.master, criteria))
	if err := s.cache.Set(ctx, key, summary); err != nil {
		log.Warn().Err(err).Msg("summary cache write failed")
	}
	return &summary, nil
}

// GroupPerformance summarizes on-time behaviour per value of the group
// column.
func (s *AnalyticsService) GroupPerformance(ctx context.Context, criteria domain.FilterCriteria, column analytics.GroupColumn) ([]domain.GroupPerformance, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return analytics.SummarizeByGroup(analytics.ApplyFilters(snap.master, criteria), column), nil
}

// CostBreakdown sums cost components per value of the group column.
func (s *AnalyticsService) CostBreakdown(ctx context.Context, criteria domain.FilterCriteria, column analytics.GroupColumn) ([]domain.GroupCosts, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return analytics.CostBreakdownByGroup(analytics.ApplyFilters(snap.master, criteria), column), nil
}

// EmissionsByOrigin aggregates estimated CO2 per origin warehouse.
func (s *AnalyticsService) EmissionsByOrigin(ctx context.Context, criteria domain.FilterCriteria) ([]domain.OriginEmissions, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return analytics.EmissionsByOrigin(analytics.ApplyFilters(snap.master, criteria)), nil
}

// HighCostLanes ranks (origin, destination) lanes by average delivery cost.
func (s *AnalyticsService) HighCostLanes(ctx context.Context, criteria domain.FilterCriteria, limit int) ([]domain.LaneCost, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return analytics.HighCostLanes(analytics.ApplyFilters(snap.master, criteria), limit), nil
}

// RouteScores scores the filtered selection with the given weights. Results
// are memoized per (dataset version, criteria, weights).
func (s *AnalyticsService) RouteScores(ctx context.Context, criteria domain.FilterCriteria, weights routeplanner.Weights) ([]domain.ScoredRoute, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	key := cache.Key(snap.version, "route_scores", fingerprint(criteria), fingerprint(weights))
	var cached []domain.ScoredRoute
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		log.Warn().Err(err).Msg("route score cache read failed")
	} else if hit {
		return cached, nil
	}

	scored, err := routeplanner.ComputeRouteScores(analytics.ApplyFilters(snap.master, criteria), weights)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, scored); err != nil {
		log.Warn().Err(err).Msg("route score cache write failed")
	}
	return scored, nil
}

// RouteExtremes returns the n best and n worst routes of the selection. A
// non-positive n falls back to the configured default.
func (s *AnalyticsService) RouteExtremes(ctx context.Context, criteria domain.FilterCriteria, weights routeplanner.Weights, n int) (*domain.RouteExtremes, error) {
	if n <= 0 {
		n = s.cfg.TopRoutes
	}
	scored, err := s.RouteScores(ctx, criteria, weights)
	if err != nil {
		return nil, err
	}
	extremes := routeplanner.BestAndWorstRoutes(scored, n)
	return &extremes, nil
}

// LaneSummaries aggregates the filtered selection per lane.
func (s *AnalyticsService) LaneSummaries(ctx context.Context, criteria domain.FilterCriteria) ([]domain.LaneSummary, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	return routeplanner.SummarizeLanes(analytics.ApplyFilters(snap.master, criteria)), nil
}

// DefaultWeights exposes the configured scoring weights.
func (s *AnalyticsService) DefaultWeights() routeplanner.Weights {
	w := routeplanner.Weights{
		Cost:     s.cfg.DefaultCostWeight,
		Delay:    s.cfg.DefaultDelayWeight,
		Emission: s.cfg.DefaultEmissionWeight,
	}
	normalized, err := w.Normalize()
	if err != nil {
		return routeplanner.DefaultWeights
	}
	return normalized
}

// WarehousePlan is the full output of the inventory planner.
type WarehousePlan struct {
	Inventory []domain.EnrichedInventory `json:"inventory"`
	Transfers []domain.Transfer          `json:"transfers"`
	Reorders  []domain.Reorder           `json:"reorders"`
}

// WarehousePlan classifies inventory against the filtered order demand and
// derives the transfer and reorder recommendations.
func (s *AnalyticsService) WarehousePlan(ctx context.Context, criteria domain.FilterCriteria) (*WarehousePlan, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	key := cache.Key(snap.version, "warehouse_plan", fingerprint(criteria))
	var cached WarehousePlan
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		log.Warn().Err(err).Msg("warehouse plan cache read failed")
	} else if hit {
		return &cached, nil
	}

	master := analytics.ApplyFilters(snap.master, criteria)
	inventory := filterInventory(snap.dataset.Inventory, criteria.Products)
	enriched := warehouse.AnalyseInventory(inventory, master)
	plan := &WarehousePlan{
		Inventory: enriched,
		Transfers: warehouse.RecommendTransfers(enriched),
		Reorders:  warehouse.RecommendReorders(enriched),
	}
	if err := s.cache.Set(ctx, key, plan); err != nil {
		log.Warn().Err(err).Msg("warehouse plan cache write failed")
	}
	return plan, nil
}

// FeedbackInsights bundles the customer feedback analyses.
type FeedbackInsights struct {
	WeeklyTrend []domain.RatingPoint `json:"weekly_trend"`
	ByIssue     []domain.IssueRating `json:"by_issue"`
	TopThemes   []domain.ThemeCount  `json:"top_themes"`
}

func (s *AnalyticsService) FeedbackInsights(ctx context.Context, themeLimit int) (*FeedbackInsights, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}
	if themeLimit <= 0 {
		themeLimit = 20
	}
	entries := snap.dataset.Feedback
	return &FeedbackInsights{
		WeeklyTrend: feedback.WeeklyRatingTrend(entries),
		ByIssue:     feedback.RatingByIssue(entries),
		TopThemes:   feedback.TopThemes(entries, themeLimit),
	}, nil
}

// InvalidateCache drops every memoized result, typically after an ingest.
func (s *AnalyticsService) InvalidateCache(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}

func fingerprint(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// filterInventory restricts inventory cells to the selected product
// categories. The other filter dimensions do not apply to inventory: cells
// have no dates or lanes, only (warehouse, category).
func filterInventory(inventory []domain.InventoryCell, products []string) []domain.InventoryCell {
	if len(products) == 0 {
		return inventory
	}
	selected := make(map[string]struct{}, len(products))
	for _, p := range products {
		selected[p] = struct{}{}
	}
	out := make([]domain.InventoryCell, 0, len(inventory))
	for _, cell := range inventory {
		if _, ok := selected[cell.ProductCategory]; ok {
			out = append(out, cell)
		}
	}
	return out
}

func distinct(master []domain.MasterOrder, get func(domain.MasterOrder) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range master {
		v := get(m)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
