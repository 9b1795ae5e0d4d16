// control-tower/internal/repository/repository.go
package repository

import (
	"context"

	"github.com/nexgenlogistics/control-tower/internal/domain"
)

// DatasetRepository loads the raw source tables of a dataset. Implementations
// exist for CSV dataset directories and for Postgres.
type DatasetRepository interface {
	// LoadDataset loads all source tables. Missing tables come back as empty
	// slices; downstream analytics treat an empty orders table as an empty
	// dataset.
	LoadDataset(ctx context.Context) (*domain.Dataset, error)

	// Version identifies the currently loaded dataset revision. Cache keys
	// embed it so a reload invalidates previously memoized results.
	Version(ctx context.Context) (string, error)
}
