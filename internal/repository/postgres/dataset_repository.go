// control-tower/internal/repository/postgres/dataset_repository.go

// Package postgres implements the dataset repository on top of the tables
// written by cmd/seed. Each source table maps 1:1 onto a SQL table.
package postgres

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/nexgenlogistics/control-tower/internal/domain"
)

type DatasetRepository struct {
	db *DB
}

func NewDatasetRepository(db *DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

// LoadDataset selects all seven tables, one goroutine per table. The pool
// semaphore bounds the effective concurrency.
func (r *DatasetRepository) LoadDataset(ctx context.Context) (*domain.Dataset, error) {
	ds := &domain.Dataset{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.selectWithSem(ctx, &ds.Orders, `
			SELECT order_id, order_date, origin, destination, priority,
			       product_category, customer_segment, order_value
			FROM orders`)
	})
	g.Go(func() error {
		return r.db.selectWithSem(ctx, &ds.DeliveryPerformance, `
			SELECT order_id, carrier, promised_delivery_date,
			       actual_delivery_date, delivery_cost, customer_rating
			FROM delivery_performance`)
	})
	g.Go(func() error {
		return r.db.selectWithSem(ctx, &ds.RouteDistances, `
			SELECT order_id, distance_km, fuel_consumed_l
			FROM route_distances`)
	})
	g.Go(func() error {
		return r.db.selectWithSem(ctx, &ds.CostBreakdowns, `
			SELECT order_id, fuel_cost, labor_cost, maintenance_cost,
			       insurance_cost, packaging_cost, technology_fee,
			       other_overhead, toll_cost
			FROM cost_breakdowns`)
	})
	g.Go(func() error {
		return r.db.selectWithSem(ctx, &ds.Fleet, `
			SELECT vehicle_id, vehicle_type, co2_kg_per_km
			FROM vehicle_fleet`)
	})
	g.Go(func() error {
		return r.db.selectWithSem(ctx, &ds.Inventory, `
			SELECT warehouse, product_category, stock_level, reorder_level,
			       last_restocked_date, storage_cost_per_unit
			FROM warehouse_inventory`)
	})
	g.Go(func() error {
		return r.db.selectWithSem(ctx, &ds.Feedback, `
			SELECT feedback_id, order_id, feedback_date, rating,
			       feedback_text, issue_category
			FROM customer_feedback`)
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dataset from postgres: %w", err)
	}
	return ds, nil
}

// Version returns the latest seed revision recorded by cmd/seed.
func (r *DatasetRepository) Version(ctx context.Context) (string, error) {
	var version string
	err := r.db.GetContext(ctx, &version, `
		SELECT COALESCE(MAX(revision), '') FROM dataset_revisions`)
	if err != nil {
		return "", fmt.Errorf("read dataset revision: %w", err)
	}
	return version, nil
}
