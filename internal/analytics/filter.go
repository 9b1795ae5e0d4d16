// control-tower/internal/analytics/filter.go
package analytics

import (
	"github.com/nexgenlogistics/control-tower/internal/domain"
)

// ApplyFilters returns the subset of master orders satisfying every set
// criterion. Date bounds are inclusive on both ends; rows without an order
// date only pass when no date bound is set. The result is a fresh slice,
// the input is never mutated.
func ApplyFilters(master []domain.MasterOrder, c domain.FilterCriteria) []domain.MasterOrder {
	if len(master) == 0 {
		return nil
	}
	if c.IsZero() {
		out := make([]domain.MasterOrder, len(master))
		copy(out, master)
		return out
	}

	priorities := toSet(c.Priorities)
	products := toSet(c.Products)
	origins := toSet(c.Origins)
	destinations := toSet(c.Destinations)
	segments := toSet(c.Segments)

	out := make([]domain.MasterOrder, 0, len(master))
	for _, m := range master {
		if c.From != nil && (m.OrderDate == nil || m.OrderDate.Before(*c.From)) {
			continue
		}
		if c.To != nil && (m.OrderDate == nil || m.OrderDate.After(*c.To)) {
			continue
		}
		if !inSet(priorities, m.Priority) {
			continue
		}
		if !inSet(products, m.ProductCategory) {
			continue
		}
		if !inSet(origins, m.Origin) {
			continue
		}
		if !inSet(destinations, m.Destination) {
			continue
		}
		if !inSet(segments, m.CustomerSegment) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// inSet treats a nil set as "no restriction".
func inSet(set map[string]struct{}, value string) bool {
	if set == nil {
		return true
	}
	_, ok := set[value]
	return ok
}
