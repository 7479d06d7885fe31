package usecase

import (
	"context"

	"github.com/afifurrozaq/tillpos/internal/logger"
	"github.com/afifurrozaq/tillpos/internal/model"
	"github.com/afifurrozaq/tillpos/internal/stats"
)

const (
	defaultLowStockThreshold = 10
	recentSalesLimit         = 5
)

type statsUseCase struct {
	repo   stats.Repository
	logger logger.ZapLogger
}

func NewStatsUseCase(repo stats.Repository, log logger.ZapLogger) stats.UseCase {
	return &statsUseCase{repo: repo, logger: log}
}

func (uc *statsUseCase) Dashboard(ctx context.Context, threshold *int64) (*model.Stats, error) {
	cutoff := int64(defaultLowStockThreshold)
	if threshold != nil {
		cutoff = *threshold
	}

	revenue, err := uc.repo.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}

	salesCount, err := uc.repo.SalesCount(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := uc.repo.LowStockCount(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	recent, err := uc.repo.RecentSales(ctx, recentSalesLimit)
	if err != nil {
		return nil, err
	}

	daily, err := uc.repo.DailyRevenue(ctx)
	if err != nil {
		return nil, err
	}

	return &model.Stats{
		Revenue:       revenue,
		SalesCount:    salesCount,
		LowStockCount: lowStock,
		RecentSales:   recent,
		DailyRevenue:  daily,
	}, nil
}
