package stats

import (
	"context"

	"github.com/afifurrozaq/tillpos/internal/model"
)

type UseCase interface {
	// Dashboard assembles the stats snapshot. A nil threshold falls back to
	// the default low-stock threshold; an explicit value is used as given,
	// zero included.
	Dashboard(ctx context.Context, threshold *int64) (*model.Stats, error)
}
