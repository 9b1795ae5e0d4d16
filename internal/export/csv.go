// control-tower/internal/export/csv.go

// Package export renders analytics results as CSV for download endpoints.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"

	"github.com/nexgenlogistics/control-tower/internal/domain"
)

// WriteScoredRoutes renders scored routes, best first.
func WriteScoredRoutes(w io.Writer, routes []domain.ScoredRoute) error {
	writer := csv.NewWriter(w)

	header := []string{"Order ID", "Origin", "Destination", "Carrier", "Priority",
		"Cost", "Delay Days", "Emissions Kg", "Score"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range routes {
		record := []string{
			r.OrderID,
			r.Origin,
			r.Destination,
			r.Carrier,
			r.Priority,
			fmt.Sprintf("%.2f", r.Cost),
			fmt.Sprintf("%.1f", r.DelayDays),
			fmt.Sprintf("%.2f", r.EmissionsKg),
			fmt.Sprintf("%.4f", r.Score),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteTransfers renders the proposed transfer plan.
func WriteTransfers(w io.Writer, transfers []domain.Transfer) error {
	writer := csv.NewWriter(w)

	header := []string{"Source", "Destination", "Product Category", "Quantity"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, t := range transfers {
		record := []string{
			t.Source,
			t.Destination,
			t.ProductCategory,
			fmt.Sprintf("%.2f", t.Quantity),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteReorders renders the reorder recommendations.
func WriteReorders(w io.Writer, reorders []domain.Reorder) error {
	writer := csv.NewWriter(w)

	header := []string{"Warehouse", "Product Category", "Suggested Quantity"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range reorders {
		record := []string{
			r.Warehouse,
			r.ProductCategory,
			fmt.Sprintf("%.2f", r.SuggestedQuantity),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteInventory renders the classified inventory cells. Infinite stock cover
// renders as an empty cell.
func WriteInventory(w io.Writer, cells []domain.EnrichedInventory) error {
	writer := csv.NewWriter(w)

	header := []string{"Warehouse", "Product Category", "Stock Level",
		"Reorder Level", "Orders Count", "Daily Demand", "Stock Cover Days",
		"Understock", "Overstock"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, c := range cells {
		cover := ""
		if !math.IsInf(c.StockCoverDays, 1) {
			cover = fmt.Sprintf("%.1f", c.StockCoverDays)
		}
		record := []string{
			c.Warehouse,
			c.ProductCategory,
			fmt.Sprintf("%.2f", c.StockLevel),
			fmt.Sprintf("%.2f", c.ReorderLevel),
			fmt.Sprintf("%.0f", c.OrdersCount),
			fmt.Sprintf("%.3f", c.EstimatedDailyDemand),
			cover,
			fmt.Sprintf("%t", c.Understock),
			fmt.Sprintf("%t", c.Overstock),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
