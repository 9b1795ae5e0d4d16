// control-tower/internal/warehouse/optimizer.go

// Package warehouse classifies inventory health and plans rebalancing
// transfers and reorders. The transfer planner is a deterministic greedy
// heuristic, not an optimal transportation solver: it offers every unit of
// feasible surplus to the largest deficits first.
package warehouse

import (
	"math"
	"sort"

	"github.com/nexgenlogistics/control-tower/internal/domain"
)

const (
	// MinStockCoverDays under which a cell counts as understocked.
	MinStockCoverDays = 7.0
	// OverstockCoverMultiple of MinStockCoverDays above which a cell counts
	// as overstocked.
	OverstockCoverMultiple = 4.0
	// DemandWindowDays normalizes order counts into daily demand.
	DemandWindowDays = 30.0
	// ReorderSafetyBuffer is added to the demand count when sizing reorders.
	ReorderSafetyBuffer = 5.0
)

// ComputeOrderDemand counts orders and sums order value per (origin
// warehouse, product category) pair. Rows with an empty origin or category
// are skipped. Results are sorted by warehouse then category.
func ComputeOrderDemand(orders []domain.MasterOrder) []domain.CategoryDemand {
	type key struct{ warehouse, category string }
	type acc struct {
		count float64
		value float64
	}
	groups := make(map[key]*acc)
	for _, o := range orders {
		if o.Origin == "" || o.ProductCategory == "" {
			continue
		}
		k := key{o.Origin, o.ProductCategory}
		a := groups[k]
		if a == nil {
			a = &acc{}
			groups[k] = a
		}
		a.count++
		a.value += o.OrderValue
	}

	out := make([]domain.CategoryDemand, 0, len(groups))
	for k, a := range groups {
		out = append(out, domain.CategoryDemand{
			Warehouse:       k.warehouse,
			ProductCategory: k.category,
			OrdersCount:     a.count,
			TotalOrderValue: a.value,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Warehouse != out[j].Warehouse {
			return out[i].Warehouse < out[j].Warehouse
		}
		return out[i].ProductCategory < out[j].ProductCategory
	})
	return out
}

// AnalyseInventory joins inventory cells with order demand and classifies
// each cell. Cells without matching demand keep zero demand, they are not
// dropped. Stock cover is +Inf when daily demand is zero. A cell whose
// thresholds would satisfy both flags is treated as understocked only;
// shortage risk outranks excess in the pathological near-zero-demand case.
func AnalyseInventory(inventory []domain.InventoryCell, orders []domain.MasterOrder) []domain.EnrichedInventory {
	if len(inventory) == 0 {
		return nil
	}

	type key struct{ warehouse, category string }
	demand := make(map[key]domain.CategoryDemand)
	for _, d := range ComputeOrderDemand(orders) {
		demand[key{d.Warehouse, d.ProductCategory}] = d
	}

	out := make([]domain.EnrichedInventory, 0, len(inventory))
	for _, cell := range inventory {
		row := domain.EnrichedInventory{InventoryCell: cell}
		if d, ok := demand[key{cell.Warehouse, cell.ProductCategory}]; ok {
			row.OrdersCount = d.OrdersCount
			row.TotalOrderValue = d.TotalOrderValue
		}

		row.EstimatedDailyDemand = row.OrdersCount / DemandWindowDays
		if row.EstimatedDailyDemand > 0 {
			row.StockCoverDays = cell.StockLevel / row.EstimatedDailyDemand
		} else {
			row.StockCoverDays = math.Inf(1)
		}

		row.Understock = cell.StockLevel < cell.ReorderLevel ||
			row.StockCoverDays < MinStockCoverDays
		row.Overstock = row.StockCoverDays > MinStockCoverDays*OverstockCoverMultiple &&
			!row.Understock

		out = append(out, row)
	}
	return out
}

// targetLevel is the stock a cell should hold: the larger of its reorder
// level and its demand count over the window.
func targetLevel(cell domain.EnrichedInventory) float64 {
	return math.Max(cell.ReorderLevel, cell.OrdersCount)
}

// RecommendTransfers proposes rebalancing transfers per product category:
// surplus cells are drained into deficit cells greedily, largest quantities
// first, with warehouse name as the stable tie-break. Conservation holds by
// construction: no cell sends more than its surplus or receives more than
// its deficit.
func RecommendTransfers(enriched []domain.EnrichedInventory) []domain.Transfer {
	if len(enriched) == 0 {
		return nil
	}

	byCategory := make(map[string][]domain.EnrichedInventory)
	categories := make([]string, 0)
	for _, cell := range enriched {
		if _, ok := byCategory[cell.ProductCategory]; !ok {
			categories = append(categories, cell.ProductCategory)
		}
		byCategory[cell.ProductCategory] = append(byCategory[cell.ProductCategory], cell)
	}
	sort.Strings(categories)

	type quantified struct {
		warehouse string
		qty       float64
	}

	var transfers []domain.Transfer
	for _, category := range categories {
		var surplus, deficit []quantified
		for _, cell := range byCategory[category] {
			if cell.Overstock {
				q := math.Max(cell.StockLevel-targetLevel(cell), 0)
				surplus = append(surplus, quantified{cell.Warehouse, q})
			}
			if cell.Understock {
				q := math.Max(targetLevel(cell)-cell.StockLevel, 0)
				deficit = append(deficit, quantified{cell.Warehouse, q})
			}
		}
		if len(surplus) == 0 || len(deficit) == 0 {
			continue
		}

		sort.SliceStable(surplus, func(i, j int) bool {
			if surplus[i].qty != surplus[j].qty {
				return surplus[i].qty > surplus[j].qty
			}
			return surplus[i].warehouse < surplus[j].warehouse
		})
		sort.SliceStable(deficit, func(i, j int) bool {
			if deficit[i].qty != deficit[j].qty {
				return deficit[i].qty > deficit[j].qty
			}
			return deficit[i].warehouse < deficit[j].warehouse
		})

		for d := range deficit {
			remaining := deficit[d].qty
			if remaining <= 0 {
				continue
			}
			for s := range surplus {
				available := surplus[s].qty
				if available <= 0 {
					continue
				}
				qty := math.Min(available, remaining)
				if qty <= 0 {
					continue
				}
				transfers = append(transfers, domain.Transfer{
					Source:          surplus[s].warehouse,
					Destination:     deficit[d].warehouse,
					ProductCategory: category,
					Quantity:        round2(qty),
				})
				surplus[s].qty -= qty
				remaining -= qty
				if remaining <= 0 {
					break
				}
			}
		}
	}
	return transfers
}

// RecommendReorders suggests replenishment for every understocked cell,
// independent of the transfer plan. The target is the larger of the reorder
// level and the demand count plus a fixed safety buffer; suggestions are
// never negative.
func RecommendReorders(enriched []domain.EnrichedInventory) []domain.Reorder {
	var out []domain.Reorder
	for _, cell := range enriched {
		if !cell.Understock {
			continue
		}
		target := math.Max(cell.ReorderLevel, cell.OrdersCount+ReorderSafetyBuffer)
		qty := math.Max(target-cell.StockLevel, 0)
		out = append(out, domain.Reorder{
			Warehouse:         cell.Warehouse,
			ProductCategory:   cell.ProductCategory,
			SuggestedQuantity: round2(qty),
		})
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
