// control-tower/internal/routeplanner/scores.go

// Package routeplanner ranks shipments by a weighted combination of cost,
// delay and emission signals normalized over the selection in view.
package routeplanner

import (
	"errors"
	"math"
	"sort"

	"github.com/nexgenlogistics/control-tower/internal/domain"
)

// ErrInvalidWeights is returned when a weight triple cannot be normalized:
// a negative or NaN component, or a non-positive sum.
var ErrInvalidWeights = errors.New("route weights must be non-negative with a positive sum")

// Weights is the caller-supplied (cost, delay, emission) weight triple.
// ComputeRouteScores expects weights already normalized to sum to 1; use
// Normalize at the input boundary.
type Weights struct {
	Cost     float64 `json:"cost"`
	Delay    float64 `json:"delay"`
	Emission float64 `json:"emission"`
}

// DefaultWeights mirrors the dashboard's initial slider positions.
var DefaultWeights = Weights{Cost: 0.4, Delay: 0.35, Emission: 0.25}

// Normalize scales the triple to sum to 1. It fails on negative or NaN
// components and on an all-zero triple.
func (w Weights) Normalize() (Weights, error) {
	for _, v := range []float64{w.Cost, w.Delay, w.Emission} {
		if v < 0 || math.IsNaN(v) {
			return Weights{}, ErrInvalidWeights
		}
	}
	sum := w.Cost + w.Delay + w.Emission
	if sum <= 0 {
		return Weights{}, ErrInvalidWeights
	}
	return Weights{
		Cost:     w.Cost / sum,
		Delay:    w.Delay / sum,
		Emission: w.Emission / sum,
	}, nil
}

// ComputeRouteScores normalizes the cost, delay and emission signals of the
// given master orders to [0,1] via min-max scaling over this population,
// combines them with the weight triple and returns the rows ascending by
// score (best route first, ties broken by order id). Unknown delays count
// as zero before normalization. Degenerate signals (all values equal)
// normalize to zero for every row.
func ComputeRouteScores(master []domain.MasterOrder, w Weights) ([]domain.ScoredRoute, error) {
	if _, err := w.Normalize(); err != nil {
		return nil, err
	}
	if len(master) == 0 {
		return nil, nil
	}

	scored := make([]domain.ScoredRoute, len(master))
	costs := make([]float64, len(master))
	delays := make([]float64, len(master))
	emissions := make([]float64, len(master))
	for i, m := range master {
		var delay float64
		if m.DeliveryDelayDays != nil {
			delay = float64(*m.DeliveryDelayDays)
		}
		costs[i] = m.TotalDeliveryCost
		delays[i] = delay
		emissions[i] = m.EstimatedCO2Kg
		scored[i] = domain.ScoredRoute{
			OrderID:     m.OrderID,
			Origin:      m.Origin,
			Destination: m.Destination,
			Carrier:     m.Carrier,
			Priority:    m.Priority,
			Cost:        m.TotalDeliveryCost,
			DelayDays:   delay,
			EmissionsKg: m.EstimatedCO2Kg,
		}
	}

	costNorm := normalize(costs)
	delayNorm := normalize(delays)
	emissionNorm := normalize(emissions)
	for i := range scored {
		scored[i].CostNorm = costNorm[i]
		scored[i].DelayNorm = delayNorm[i]
		scored[i].EmissionNorm = emissionNorm[i]
		scored[i].Score = w.Cost*costNorm[i] + w.Delay*delayNorm[i] + w.Emission*emissionNorm[i]
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score < scored[j].Score
		}
		return scored[i].OrderID < scored[j].OrderID
	})
	return scored, nil
}

// normalize min-max scales values to [0,1]. When all values are equal the
// result is all zeros rather than NaN.
func normalize(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min || math.IsNaN(min) || math.IsNaN(max) {
		return out
	}
	span := max - min
	for i, v := range values {
		out[i] = (v - min) / span
	}
	return out
}

// BestAndWorstRoutes extracts the n best routes (ascending by score) and
// the n worst routes, re-sorted descending so the worst route leads.
func BestAndWorstRoutes(scored []domain.ScoredRoute, n int) domain.RouteExtremes {
	if len(scored) == 0 || n <= 0 {
		return domain.RouteExtremes{}
	}
	if n > len(scored) {
		n = len(scored)
	}

	best := make([]domain.ScoredRoute, n)
	copy(best, scored[:n])

	worst := make([]domain.ScoredRoute, n)
	copy(worst, scored[len(scored)-n:])
	sort.SliceStable(worst, func(i, j int) bool {
		if worst[i].Score != worst[j].Score {
			return worst[i].Score > worst[j].Score
		}
		return worst[i].OrderID > worst[j].OrderID
	})

	return domain.RouteExtremes{Best: best, Worst: worst}
}

// SummarizeLanes aggregates per (origin, destination, carrier) lane. Unlike
// the KPI group-bys, lanes with empty keys are kept: lane identity is still
// meaningful when the carrier is unknown.
func SummarizeLanes(master []domain.MasterOrder) []domain.LaneSummary {
	type key struct{ origin, dest, carrier string }
	type acc struct {
		orders    int
		cost      float64
		delay     float64
		delayN    int
		emission  float64
		emissionN int
		onTime    float64
		onTimeN   int
	}

	groups := make(map[key]*acc)
	for _, m := range master {
		k := key{m.Origin, m.Destination, m.Carrier}
		a := groups[k]
		if a == nil {
			a = &acc{}
			groups[k] = a
		}
		a.orders++
		a.cost += m.TotalDeliveryCost
		a.emission += m.EstimatedCO2Kg
		a.emissionN++
		if m.DeliveryDelayDays != nil {
			a.delay += float64(*m.DeliveryDelayDays)
			a.delayN++
		}
		if m.OnTime != nil {
			if *m.OnTime {
				a.onTime++
			}
			a.onTimeN++
		}
	}

	out := make([]domain.LaneSummary, 0, len(groups))
	for k, a := range groups {
		row := domain.LaneSummary{
			Origin:      k.origin,
			Destination: k.dest,
			Carrier:     k.carrier,
			Orders:      a.orders,
		}
		avgCost := a.cost / float64(a.orders)
		row.AvgCost = &avgCost
		if a.delayN > 0 {
			avg := a.delay / float64(a.delayN)
			row.AvgDelayDays = &avg
		}
		if a.emissionN > 0 {
			avg := a.emission / float64(a.emissionN)
			row.AvgEmissionKg = &avg
		}
		if a.onTimeN > 0 {
			rate := a.onTime / float64(a.onTimeN)
			row.OnTimeRate = &rate
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Origin != out[j].Origin {
			return out[i].Origin < out[j].Origin
		}
		if out[i].Destination != out[j].Destination {
			return out[i].Destination < out[j].Destination
		}
		return out[i].Carrier < out[j].Carrier
	})
	return out
}
