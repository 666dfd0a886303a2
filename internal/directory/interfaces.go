package directory

import (
	"context"

	"github.com/airwav/airwav/internal/model"
)

// Searcher defines the catalog lookup surface as consumed by the UI layer.
type Searcher interface {
	Search(ctx context.Context, query Query) ([]model.Station, error)
	Browse(ctx context.Context, tag string, limit int) ([]model.Station, error)
}

// Verify Client implements Searcher at compile time.
var _ Searcher = (*Client)(nil)
