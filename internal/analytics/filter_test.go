// control-tower/internal/analytics/filter_test.go
package analytics

import (
	"testing"

	"github.com/nexgenlogistics/control-tower/internal/domain"
)

func sampleMaster() []domain.MasterOrder {
	return []domain.MasterOrder{
		{OrderID: "O1", OrderDate: date("2024-01-10"), Priority: "Express", ProductCategory: "Electronics", Origin: "Mumbai", Destination: "Delhi", CustomerSegment: "Enterprise"},
		{OrderID: "O2", OrderDate: date("2024-01-20"), Priority: "Standard", ProductCategory: "Apparel", Origin: "Delhi", Destination: "Chennai", CustomerSegment: "SMB"},
		{OrderID: "O3", OrderDate: date("2024-02-01"), Priority: "Express", ProductCategory: "Apparel", Origin: "Mumbai", Destination: "Kolkata", CustomerSegment: "Individual"},
		{OrderID: "O4", OrderDate: nil, Priority: "Economy", ProductCategory: "Electronics", Origin: "Chennai", Destination: "Delhi", CustomerSegment: "SMB"},
	}
}

func ids(rows []domain.MasterOrder) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.OrderID
	}
	return out
}

func TestApplyFilters(t *testing.T) {
	master := sampleMaster()

	tests := []struct {
		name     string
		criteria domain.FilterCriteria
		want     []string
	}{
		{"no criteria keeps everything", domain.FilterCriteria{}, []string{"O1", "O2", "O3", "O4"}},
		{"date range inclusive both ends", domain.FilterCriteria{From: date("2024-01-10"), To: date("2024-01-20")}, []string{"O1", "O2"}},
		{"open-ended from", domain.FilterCriteria{From: date("2024-01-20")}, []string{"O2", "O3"}},
		{"priority set", domain.FilterCriteria{Priorities: []string{"Express"}}, []string{"O1", "O3"}},
		{"criteria AND-compose", domain.FilterCriteria{
			Priorities: []string{"Express"},
			Products:   []string{"Apparel"},
		}, []string{"O3"}},
		{"origin and segment", domain.FilterCriteria{
			Origins:  []string{"Chennai", "Delhi"},
			Segments: []string{"SMB"},
		}, []string{"O2", "O4"}},
		{"destination only", domain.FilterCriteria{Destinations: []string{"Delhi"}}, []string{"O1", "O4"}},
		{"no match", domain.FilterCriteria{Priorities: []string{"Overnight"}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(ApplyFilters(master, tt.criteria))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestApplyFilters_DoesNotMutateInput(t *testing.T) {
	master := sampleMaster()
	out := ApplyFilters(master, domain.FilterCriteria{})
	if len(out) == 0 {
		t.Fatal("expected rows")
	}
	out[0].OrderID = "mutated"
	if master[0].OrderID != "O1" {
		t.Error("filter result aliases the input slice")
	}
}

func TestApplyFilters_RowsWithoutDateFailDateBounds(t *testing.T) {
	master := sampleMaster()
	got := ids(ApplyFilters(master, domain.FilterCriteria{To: date("2024-12-31")}))
	for _, id := range got {
		if id == "O4" {
			t.Error("row without order date should not pass a date bound")
		}
	}
}
