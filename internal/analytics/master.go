// control-tower/internal/analytics/master.go

// Package analytics implements the in-memory analytics core: the master
// record join with derived metrics, the filter engine and the KPI
// aggregations. Every function here is pure; inputs are never mutated and
// no I/O happens.
package analytics

import (
	"math"
	"sort"

	"github.com/nexgenlogistics/control-tower/internal/domain"
)

// FallbackCO2KgPerKM is the industry-average emission factor used when the
// fleet table carries no usable per-km CO2 figures.
const FallbackCO2KgPerKM = 0.65

// FleetEmissionFactor averages the non-zero per-km CO2 figures across the
// fleet. It falls back to FallbackCO2KgPerKM when the fleet is empty or all
// entries are zero. Computed once per dataset load, not per filtered view.
func FleetEmissionFactor(fleet []domain.Vehicle) float64 {
	var sum float64
	var n int
	for _, v := range fleet {
		if v.CO2KgPerKM == 0 || math.IsNaN(v.CO2KgPerKM) {
			continue
		}
		sum += v.CO2KgPerKM
		n++
	}
	if n == 0 {
		return FallbackCO2KgPerKM
	}
	avg := sum / float64(n)
	if math.IsNaN(avg) {
		return FallbackCO2KgPerKM
	}
	return avg
}

// BuildMasterOrders left-joins delivery performance, route distances and
// cost breakdowns onto orders keyed by order id, then derives cost totals,
// delay, on-time flag, cost per km, fuel efficiency and estimated CO2.
// Orders without a match in a secondary table keep nil for that table's
// fields; rows are never dropped by the join. An empty orders table
// short-circuits to an empty result.
func BuildMasterOrders(ds *domain.Dataset) []domain.MasterOrder {
	if ds == nil || len(ds.Orders) == 0 {
		return nil
	}

	deliveryByID := make(map[string]domain.DeliveryPerformance, len(ds.DeliveryPerformance))
	for _, d := range ds.DeliveryPerformance {
		deliveryByID[d.OrderID] = d
	}
	routeByID := make(map[string]domain.RouteDistance, len(ds.RouteDistances))
	for _, r := range ds.RouteDistances {
		routeByID[r.OrderID] = r
	}
	costByID := make(map[string]domain.CostBreakdown, len(ds.CostBreakdowns))
	for _, c := range ds.CostBreakdowns {
		costByID[c.OrderID] = c
	}

	emissionFactor := FleetEmissionFactor(ds.Fleet)

	master := make([]domain.MasterOrder, 0, len(ds.Orders))
	for _, o := range ds.Orders {
		row := domain.MasterOrder{
			OrderID:         o.OrderID,
			OrderDate:       o.OrderDate,
			Origin:          o.Origin,
			Destination:     o.Destination,
			Priority:        o.Priority,
			ProductCategory: o.ProductCategory,
			CustomerSegment: o.CustomerSegment,
			OrderValue:      o.OrderValue,
		}

		if d, ok := deliveryByID[o.OrderID]; ok {
			row.Carrier = d.Carrier
			row.PromisedDeliveryDate = d.PromisedDeliveryDate
			row.ActualDeliveryDate = d.ActualDeliveryDate
			row.CustomerRating = d.CustomerRating
			if d.DeliveryCost != nil {
				row.DeliveryCost = *d.DeliveryCost
			}
		}

		if r, ok := routeByID[o.OrderID]; ok {
			row.DistanceKM = r.DistanceKM
			row.FuelConsumedL = r.FuelConsumedL
		}

		if c, ok := costByID[o.OrderID]; ok {
			row.FuelCost = c.FuelCost
			row.LaborCost = c.LaborCost
			row.MaintenanceCost = c.MaintenanceCost
			row.InsuranceCost = c.InsuranceCost
			row.PackagingCost = c.PackagingCost
			row.TechnologyFee = c.TechnologyFee
			row.OtherOverhead = c.OtherOverhead
			row.TollCost = c.TollCost
		}

		deriveMetrics(&row, emissionFactor)
		master = append(master, row)
	}

	return master
}

func deriveMetrics(row *domain.MasterOrder, emissionFactor float64) {
	row.TotalVariableCost = row.FuelCost + row.LaborCost + row.MaintenanceCost +
		row.TollCost + row.OtherOverhead

	row.TotalDeliveryCost = row.DeliveryCost + row.FuelCost + row.LaborCost +
		row.MaintenanceCost + row.InsuranceCost + row.PackagingCost +
		row.TechnologyFee + row.OtherOverhead + row.TollCost

	if row.PromisedDeliveryDate != nil && row.ActualDeliveryDate != nil {
		// Floor, not truncate: an early delivery with a partial-day offset
		// still counts the full day (-30h is -2 days, not -1).
		days := int(math.Floor(row.ActualDeliveryDate.Sub(*row.PromisedDeliveryDate).Hours() / 24))
		row.DeliveryDelayDays = &days
		onTime := days <= 0
		row.OnTime = &onTime
	}

	if row.DistanceKM != nil && *row.DistanceKM > 0 {
		cpk := row.TotalDeliveryCost / *row.DistanceKM
		row.CostPerKM = &cpk

		// Fuel efficiency only when fuel burn is known and non-zero.
		if row.FuelConsumedL != nil && *row.FuelConsumedL != 0 {
			eff := *row.DistanceKM / *row.FuelConsumedL
			row.FuelEfficiency = &eff
		}
	}

	if row.DistanceKM != nil {
		row.EstimatedCO2Kg = *row.DistanceKM * emissionFactor
	}
}

// DateBounds returns the earliest and latest order date across the master
// set, skipping rows without a date. ok is false when no row has a date.
func DateBounds(master []domain.MasterOrder) (min, max string, ok bool) {
	dates := make([]string, 0, len(master))
	for _, m := range master {
		if m.OrderDate != nil {
			dates = append(dates, m.OrderDate.Format("2006-01-02"))
		}
	}
	if len(dates) == 0 {
		return "", "", false
	}
	sort.Strings(dates)
	return dates[0], dates[len(dates)-1], true
}
