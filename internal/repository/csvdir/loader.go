// control-tower/internal/repository/csvdir/loader.go

// Package csvdir loads a dataset from a directory of CSV files, one file per
// source table. Missing files yield empty tables; unparseable cells in
// optional columns yield nulls rather than failing the load.
package csvdir

import (
	"context"
	"crypto/sha1"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nexgenlogistics/control-tower/internal/domain"
	"github.com/nexgenlogistics/control-tower/pkg/logger"
)

const (
	ordersFile    = "orders.csv"
	deliveryFile  = "delivery_performance.csv"
	routesFile    = "routes_distance.csv"
	fleetFile     = "vehicle_fleet.csv"
	inventoryFile = "warehouse_inventory.csv"
	feedbackFile  = "customer_feedback.csv"
	costsFile     = "cost_breakdown.csv"
)

var datasetFiles = []string{
	ordersFile, deliveryFile, routesFile, fleetFile,
	inventoryFile, feedbackFile, costsFile,
}

type Repository struct {
	dir string
}

func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

// LoadDataset reads all table files concurrently, one goroutine per file.
func (r *Repository) LoadDataset(ctx context.Context) (*domain.Dataset, error) {
	log := logger.WithComponent("csvdir")
	ds := &domain.Dataset{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := readTable(ctx, filepath.Join(r.dir, ordersFile))
		if err != nil {
			return err
		}
		ds.Orders = parseOrders(rows)
		return nil
	})
	g.Go(func() error {
		rows, err := readTable(ctx, filepath.Join(r.dir, deliveryFile))
		if err != nil {
			return err
		}
		ds.DeliveryPerformance = parseDelivery(rows)
		return nil
	})
	g.Go(func() error {
		rows, err := readTable(ctx, filepath.Join(r.dir, routesFile))
		if err != nil {
			return err
		}
		ds.RouteDistances = parseRoutes(rows)
		return nil
	})
	g.Go(func() error {
		rows, err := readTable(ctx, filepath.Join(r.dir, fleetFile))
		if err != nil {
			return err
		}
		ds.Fleet = parseFleet(rows)
		return nil
	})
	g.Go(func() error {
		rows, err := readTable(ctx, filepath.Join(r.dir, inventoryFile))
		if err != nil {
			return err
		}
		ds.Inventory = parseInventory(rows)
		return nil
	})
	g.Go(func() error {
		rows, err := readTable(ctx, filepath.Join(r.dir, feedbackFile))
		if err != nil {
			return err
		}
		ds.Feedback = parseFeedback(rows)
		return nil
	})
	g.Go(func() error {
		rows, err := readTable(ctx, filepath.Join(r.dir, costsFile))
		if err != nil {
			return err
		}
		ds.CostBreakdowns = parseCosts(rows)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dataset from %s: %w", r.dir, err)
	}

	log.Info().
		Int("orders", len(ds.Orders)).
		Int("delivery", len(ds.DeliveryPerformance)).
		Int("routes", len(ds.RouteDistances)).
		Int("costs", len(ds.CostBreakdowns)).
		Int("fleet", len(ds.Fleet)).
		Int("inventory", len(ds.Inventory)).
		Int("feedback", len(ds.Feedback)).
		Msg("dataset loaded")
	return ds, nil
}

// Version hashes the name, size and mtime of every present table file. Any
// file swap or rewrite changes the version and invalidates memoized results.
func (r *Repository) Version(ctx context.Context) (string, error) {
	h := sha1.New()
	names := append([]string(nil), datasetFiles...)
	sort.Strings(names)
	for _, name := range names {
		info, err := os.Stat(filepath.Join(r.dir, name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", fmt.Errorf("stat %s: %w", name, err)
		}
		fmt.Fprintf(h, "%s|%d|%d\n", name, info.Size(), info.ModTime().UnixNano())
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// row is one CSV record keyed by trimmed header name.
type row map[string]string

func readTable(ctx context.Context, path string) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []row
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		m := make(row, len(header))
		for i, col := range header {
			if i < len(record) {
				m[col] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, m)
	}
	return rows, nil
}

func parseOrders(rows []row) []domain.Order {
	out := make([]domain.Order, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Order{
			OrderID:         r["Order_ID"],
			OrderDate:       parseDate(r["Order_Date"]),
			Origin:          r["Origin"],
			Destination:     r["Destination"],
			Priority:        r["Priority"],
			ProductCategory: r["Product_Category"],
			CustomerSegment: r["Customer_Segment"],
			OrderValue:      parseFloat(r["Order_Value_INR"]),
		})
	}
	return out
}

func parseDelivery(rows []row) []domain.DeliveryPerformance {
	out := make([]domain.DeliveryPerformance, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.DeliveryPerformance{
			OrderID:              r["Order_ID"],
			Carrier:              r["Carrier"],
			PromisedDeliveryDate: parseDate(r["Promised_Delivery_Date"]),
			ActualDeliveryDate:   parseDate(r["Actual_Delivery_Date"]),
			DeliveryCost:         parseFloatPtr(r["Delivery_Cost_INR"]),
			CustomerRating:       parseFloatPtr(r["Customer_Rating"]),
		})
	}
	return out
}

func parseRoutes(rows []row) []domain.RouteDistance {
	out := make([]domain.RouteDistance, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.RouteDistance{
			OrderID:       r["Order_ID"],
			DistanceKM:    parseFloatPtr(r["Distance_km"]),
			FuelConsumedL: parseFloatPtr(r["Fuel_Consumed_L"]),
		})
	}
	return out
}

func parseCosts(rows []row) []domain.CostBreakdown {
	out := make([]domain.CostBreakdown, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.CostBreakdown{
			OrderID:         r["Order_ID"],
			FuelCost:        parseFloat(r["Fuel_Cost_INR"]),
			LaborCost:       parseFloat(r["Labor_Cost_INR"]),
			MaintenanceCost: parseFloat(r["Maintenance_Cost_INR"]),
			InsuranceCost:   parseFloat(r["Insurance_Cost_INR"]),
			PackagingCost:   parseFloat(r["Packaging_Cost_INR"]),
			TechnologyFee:   parseFloat(r["Technology_Fee_INR"]),
			OtherOverhead:   parseFloat(r["Other_Overhead_INR"]),
			TollCost:        parseFloat(r["Toll_Cost_INR"]),
		})
	}
	return out
}

func parseFleet(rows []row) []domain.Vehicle {
	out := make([]domain.Vehicle, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Vehicle{
			VehicleID:   r["Vehicle_ID"],
			VehicleType: r["Vehicle_Type"],
			CO2KgPerKM:  parseFloat(r["CO2_kg_per_km"]),
		})
	}
	return out
}

func parseInventory(rows []row) []domain.InventoryCell {
	out := make([]domain.InventoryCell, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.InventoryCell{
			Warehouse:          r["Warehouse"],
			ProductCategory:    r["Product_Category"],
			StockLevel:         parseFloat(r["Stock_Level"]),
			ReorderLevel:       parseFloat(r["Reorder_Level"]),
			LastRestockedDate:  parseDate(r["Last_Restocked_Date"]),
			StorageCostPerUnit: parseFloat(r["Storage_Cost_Per_Unit"]),
		})
	}
	return out
}

func parseFeedback(rows []row) []domain.Feedback {
	out := make([]domain.Feedback, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Feedback{
			FeedbackID:    r["Feedback_ID"],
			OrderID:       r["Order_ID"],
			FeedbackDate:  parseDate(r["Feedback_Date"]),
			Rating:        parseFloatPtr(r["Rating"]),
			FeedbackText:  r["Feedback_Text"],
			IssueCategory: r["Issue_Category"],
		})
	}
	return out
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseFloatPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
