// control-tower/internal/analytics/kpi.go
package analytics

import (
	"fmt"
	"sort"

	"github.com/nexgenlogistics/control-tower/internal/domain"
)

// OverallKPIs reduces a (filtered) master set into the dashboard headline
// figures. Means over columns that are null for every row come back nil;
// sums over such columns are zero.
func OverallKPIs(master []domain.MasterOrder) domain.KPISummary {
	kpi := domain.KPISummary{TotalOrders: len(master)}
	if len(master) == 0 {
		return kpi
	}

	var onTimeSum, delaySum, costSum float64
	var onTimeN, delayN int
	for _, m := range master {
		kpi.TotalRevenue += m.OrderValue
		kpi.TotalEmissionsKg += m.EstimatedCO2Kg
		costSum += m.TotalDeliveryCost
		if m.OnTime != nil {
			if *m.OnTime {
				onTimeSum++
			}
			onTimeN++
		}
		if m.DeliveryDelayDays != nil {
			delaySum += float64(*m.DeliveryDelayDays)
			delayN++
		}
	}

	if onTimeN > 0 {
		rate := onTimeSum / float64(onTimeN)
		kpi.OnTimeRate = &rate
	}
	if delayN > 0 {
		avg := delaySum / float64(delayN)
		kpi.AvgDelayDays = &avg
	}
	avgCost := costSum / float64(len(master))
	kpi.AvgCostPerOrder = &avgCost

	return kpi
}

// GroupColumn selects the categorical column a grouped summary runs over.
type GroupColumn string

const (
	GroupByCarrier  GroupColumn = "carrier"
	GroupByPriority GroupColumn = "priority"
	GroupByCategory GroupColumn = "product_category"
	GroupBySegment  GroupColumn = "customer_segment"
	GroupByOrigin   GroupColumn = "origin"
)

// ParseGroupColumn validates a column name from an API request.
func ParseGroupColumn(s string) (GroupColumn, error) {
	col := GroupColumn(s)
	switch col {
	case GroupByCarrier, GroupByPriority, GroupByCategory, GroupBySegment, GroupByOrigin:
		return col, nil
	default:
		return "", fmt.Errorf("unsupported group column %q", s)
	}
}

// groupKey returns the group key of a row, ok=false for unsupported columns.
func groupKey(m domain.MasterOrder, col GroupColumn) (string, bool) {
	switch col {
	case GroupByCarrier:
		return m.Carrier, true
	case GroupByPriority:
		return m.Priority, true
	case GroupByCategory:
		return m.ProductCategory, true
	case GroupBySegment:
		return m.CustomerSegment, true
	case GroupByOrigin:
		return m.Origin, true
	default:
		return "", false
	}
}

// SummarizeByGroup computes per-group order counts, on-time rates and mean
// delays. Rows whose group key is empty are excluded from the grouping
// rather than bucketed into a synthetic unknown group. Groups come back
// sorted by key so output is deterministic.
func SummarizeByGroup(master []domain.MasterOrder, col GroupColumn) []domain.GroupPerformance {
	type acc struct {
		orders  int
		onTime  float64
		onTimeN int
		delay   float64
		delayN  int
	}

	groups := make(map[string]*acc)
	for _, m := range master {
		key, ok := groupKey(m, col)
		if !ok || key == "" {
			continue
		}
		a := groups[key]
		if a == nil {
			a = &acc{}
			groups[key] = a
		}
		a.orders++
		if m.OnTime != nil {
			if *m.OnTime {
				a.onTime++
			}
			a.onTimeN++
		}
		if m.DeliveryDelayDays != nil {
			a.delay += float64(*m.DeliveryDelayDays)
			a.delayN++
		}
	}

	out := make([]domain.GroupPerformance, 0, len(groups))
	for key, a := range groups {
		row := domain.GroupPerformance{Key: key, Orders: a.orders}
		if a.onTimeN > 0 {
			rate := a.onTime / float64(a.onTimeN)
			row.OnTimeRate = &rate
		}
		if a.delayN > 0 {
			avg := a.delay / float64(a.delayN)
			row.AvgDelayDays = &avg
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// CostBreakdownByGroup sums the variable cost components per group key,
// excluding rows with an empty key.
func CostBreakdownByGroup(master []domain.MasterOrder, col GroupColumn) []domain.GroupCosts {
	groups := make(map[string]*domain.GroupCosts)
	for _, m := range master {
		key, ok := groupKey(m, col)
		if !ok || key == "" {
			continue
		}
		g := groups[key]
		if g == nil {
			g = &domain.GroupCosts{Key: key}
			groups[key] = g
		}
		g.FuelCost += m.FuelCost
		g.LaborCost += m.LaborCost
		g.MaintenanceCost += m.MaintenanceCost
		g.InsuranceCost += m.InsuranceCost
		g.PackagingCost += m.PackagingCost
		g.TechnologyFee += m.TechnologyFee
		g.OtherOverhead += m.OtherOverhead
	}

	out := make([]domain.GroupCosts, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// EmissionsByOrigin totals and averages estimated CO2 per origin warehouse.
func EmissionsByOrigin(master []domain.MasterOrder) []domain.OriginEmissions {
	type acc struct {
		total float64
		n     int
	}
	groups := make(map[string]*acc)
	for _, m := range master {
		if m.Origin == "" {
			continue
		}
		a := groups[m.Origin]
		if a == nil {
			a = &acc{}
			groups[m.Origin] = a
		}
		a.total += m.EstimatedCO2Kg
		a.n++
	}

	out := make([]domain.OriginEmissions, 0, len(groups))
	for origin, a := range groups {
		out = append(out, domain.OriginEmissions{
			Origin:     origin,
			TotalCO2Kg: a.total,
			AvgCO2Kg:   a.total / float64(a.n),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Origin < out[j].Origin })
	return out
}

// HighCostLanes ranks (origin, destination) lanes by average delivery cost,
// descending, returning at most limit lanes.
func HighCostLanes(master []domain.MasterOrder, limit int) []domain.LaneCost {
	type key struct{ origin, dest string }
	type acc struct {
		cost float64
		co2  float64
		n    int
	}
	groups := make(map[key]*acc)
	for _, m := range master {
		k := key{m.Origin, m.Destination}
		a := groups[k]
		if a == nil {
			a = &acc{}
			groups[k] = a
		}
		a.cost += m.TotalDeliveryCost
		a.co2 += m.EstimatedCO2Kg
		a.n++
	}

	out := make([]domain.LaneCost, 0, len(groups))
	for k, a := range groups {
		out = append(out, domain.LaneCost{
			Origin:      k.origin,
			Destination: k.dest,
			AvgCost:     a.cost / float64(a.n),
			AvgCO2Kg:    a.co2 / float64(a.n),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgCost != out[j].AvgCost {
			return out[i].AvgCost > out[j].AvgCost
		}
		if out[i].Origin != out[j].Origin {
			return out[i].Origin < out[j].Origin
		}
		return out[i].Destination < out[j].Destination
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
