// control-tower/cmd/seed/dataset.go
package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/nexgenlogistics/control-tower/internal/domain"
	"github.com/nexgenlogistics/control-tower/internal/repository/csvdir"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		order_id TEXT PRIMARY KEY,
		order_date DATE,
		origin TEXT NOT NULL DEFAULT '',
		destination TEXT NOT NULL DEFAULT '',
		priority TEXT NOT NULL DEFAULT '',
		product_category TEXT NOT NULL DEFAULT '',
		customer_segment TEXT NOT NULL DEFAULT '',
		order_value DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS delivery_performance (
		order_id TEXT PRIMARY KEY,
		carrier TEXT NOT NULL DEFAULT '',
		promised_delivery_date DATE,
		actual_delivery_date DATE,
		delivery_cost DOUBLE PRECISION,
		customer_rating DOUBLE PRECISION
	)`,
	`CREATE TABLE IF NOT EXISTS route_distances (
		order_id TEXT PRIMARY KEY,
		distance_km DOUBLE PRECISION,
		fuel_consumed_l DOUBLE PRECISION
	)`,
	`CREATE TABLE IF NOT EXISTS cost_breakdowns (
		order_id TEXT PRIMARY KEY,
		fuel_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
		labor_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
		maintenance_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
		insurance_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
		packaging_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
		technology_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
		other_overhead DOUBLE PRECISION NOT NULL DEFAULT 0,
		toll_cost DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS vehicle_fleet (
		vehicle_id TEXT PRIMARY KEY,
		vehicle_type TEXT NOT NULL DEFAULT '',
		co2_kg_per_km DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS warehouse_inventory (
		warehouse TEXT NOT NULL,
		product_category TEXT NOT NULL,
		stock_level DOUBLE PRECISION NOT NULL DEFAULT 0,
		reorder_level DOUBLE PRECISION NOT NULL DEFAULT 0,
		last_restocked_date DATE,
		storage_cost_per_unit DOUBLE PRECISION NOT NULL DEFAULT 0,
		PRIMARY KEY (warehouse, product_category)
	)`,
	`CREATE TABLE IF NOT EXISTS customer_feedback (
		feedback_id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL DEFAULT '',
		feedback_date DATE,
		rating DOUBLE PRECISION,
		feedback_text TEXT NOT NULL DEFAULT '',
		issue_category TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS dataset_revisions (
		revision TEXT PRIMARY KEY,
		loaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

var datasetTables = []string{
	"orders", "delivery_performance", "route_distances", "cost_breakdowns",
	"vehicle_fleet", "warehouse_inventory", "customer_feedback",
}

func runSchema(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(c.Context, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	log.Println("schema ready")
	return nil
}

func runDatasetSeed(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	ds, err := csvdir.NewRepository(c.String("data-dir")).LoadDataset(c.Context)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	tx, err := db.BeginTx(c.Context, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if c.Bool("truncate") {
		for _, table := range datasetTables {
			if _, err := tx.ExecContext(c.Context, "TRUNCATE "+table); err != nil {
				return fmt.Errorf("failed to truncate %s: %w", table, err)
			}
		}
	}

	if err := insertDataset(c, tx, ds); err != nil {
		return err
	}

	revision := fmt.Sprintf("seed-%d", time.Now().UnixNano())
	if _, err := tx.ExecContext(c.Context,
		"INSERT INTO dataset_revisions (revision) VALUES ($1)", revision); err != nil {
		return fmt.Errorf("failed to record revision: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	log.Printf("dataset seeded: %d orders, %d delivery rows, %d routes, %d cost rows, %d vehicles, %d inventory cells, %d feedback entries (revision %s)",
		len(ds.Orders), len(ds.DeliveryPerformance), len(ds.RouteDistances),
		len(ds.CostBreakdowns), len(ds.Fleet), len(ds.Inventory), len(ds.Feedback), revision)
	return nil
}

func insertDataset(c *cli.Context, tx *sql.Tx, ds *domain.Dataset) error {
	for _, o := range ds.Orders {
		if _, err := tx.ExecContext(c.Context, `
			INSERT INTO orders (order_id, order_date, origin, destination,
				priority, product_category, customer_segment, order_value)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (order_id) DO NOTHING`,
			o.OrderID, nullTime(o.OrderDate), o.Origin, o.Destination,
			o.Priority, o.ProductCategory, o.CustomerSegment, o.OrderValue); err != nil {
			return fmt.Errorf("failed to insert order %s: %w", o.OrderID, err)
		}
	}

	for _, d := range ds.DeliveryPerformance {
		if _, err := tx.ExecContext(c.Context, `
			INSERT INTO delivery_performance (order_id, carrier,
				promised_delivery_date, actual_delivery_date, delivery_cost,
				customer_rating)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (order_id) DO NOTHING`,
			d.OrderID, d.Carrier, nullTime(d.PromisedDeliveryDate),
			nullTime(d.ActualDeliveryDate), nullFloat(d.DeliveryCost),
			nullFloat(d.CustomerRating)); err != nil {
			return fmt.Errorf("failed to insert delivery row %s: %w", d.OrderID, err)
		}
	}

	for _, r := range ds.RouteDistances {
		if _, err := tx.ExecContext(c.Context, `
			INSERT INTO route_distances (order_id, distance_km, fuel_consumed_l)
			VALUES ($1, $2, $3)
			ON CONFLICT (order_id) DO NOTHING`,
			r.OrderID, nullFloat(r.DistanceKM), nullFloat(r.FuelConsumedL)); err != nil {
			return fmt.Errorf("failed to insert route row %s: %w", r.OrderID, err)
		}
	}

	for _, cb := range ds.CostBreakdowns {
		if _, err := tx.ExecContext(c.Context, `
			INSERT INTO cost_breakdowns (order_id, fuel_cost, labor_cost,
				maintenance_cost, insurance_cost, packaging_cost,
				technology_fee, other_overhead, toll_cost)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (order_id) DO NOTHING`,
			cb.OrderID, cb.FuelCost, cb.LaborCost, cb.MaintenanceCost,
			cb.InsuranceCost, cb.PackagingCost, cb.TechnologyFee,
			cb.OtherOverhead, cb.TollCost); err != nil {
			return fmt.Errorf("failed to insert cost row %s: %w", cb.OrderID, err)
		}
	}

	for _, v := range ds.Fleet {
		if _, err := tx.ExecContext(c.Context, `
			INSERT INTO vehicle_fleet (vehicle_id, vehicle_type, co2_kg_per_km)
			VALUES ($1, $2, $3)
			ON CONFLICT (vehicle_id) DO NOTHING`,
			v.VehicleID, v.VehicleType, v.CO2KgPerKM); err != nil {
			return fmt.Errorf("failed to insert vehicle %s: %w", v.VehicleID, err)
		}
	}

	for _, cell := range ds.Inventory {
		if _, err := tx.ExecContext(c.Context, `
			INSERT INTO warehouse_inventory (warehouse, product_category,
				stock_level, reorder_level, last_restocked_date,
				storage_cost_per_unit)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (warehouse, product_category) DO NOTHING`,
			cell.Warehouse, cell.ProductCategory, cell.StockLevel,
			cell.ReorderLevel, nullTime(cell.LastRestockedDate),
			cell.StorageCostPerUnit); err != nil {
			return fmt.Errorf("failed to insert inventory cell %s/%s: %w",
				cell.Warehouse, cell.ProductCategory, err)
		}
	}

	for _, f := range ds.Feedback {
		if _, err := tx.ExecContext(c.Context, `
			INSERT INTO customer_feedback (feedback_id, order_id,
				feedback_date, rating, feedback_text, issue_category)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (feedback_id) DO NOTHING`,
			f.FeedbackID, f.OrderID, nullTime(f.FeedbackDate),
			nullFloat(f.Rating), f.FeedbackText, f.IssueCategory); err != nil {
			return fmt.Errorf("failed to insert feedback %s: %w", f.FeedbackID, err)
		}
	}

	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
