package stats

import (
	"context"

	"github.com/afifurrozaq/tillpos/internal/model"
)

type Repository interface {
	TotalRevenue(ctx context.Context) (float64, error)
	SalesCount(ctx context.Context) (int64, error)
	// LowStockCount counts products whose own stock is below the threshold.
	// Variant stock does not feed into this figure.
	LowStockCount(ctx context.Context, threshold int64) (int64, error)
	RecentSales(ctx context.Context, limit int) ([]model.Sale, error)
	// DailyRevenue covers the trailing seven days, oldest first. Days without
	// sales do not appear.
	DailyRevenue(ctx context.Context) ([]model.DailyRevenue, error)
}
