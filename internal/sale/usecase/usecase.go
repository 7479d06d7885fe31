package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/afifurrozaq/tillpos/internal/cache"
	"github.com/afifurrozaq/tillpos/internal/logger"
	"github.com/afifurrozaq/tillpos/internal/model"
	"github.com/afifurrozaq/tillpos/internal/sale"
	"github.com/afifurrozaq/tillpos/internal/sale/dto"
	"go.uber.org/zap"
)

type saleUseCase struct {
	repo   sale.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

func NewSaleUseCase(repo sale.Repository, cache *cache.RedisClient, log logger.ZapLogger) sale.UseCase {
	return &saleUseCase{repo: repo, cache: cache, logger: log}
}

// ErrEmptyCart rejects a checkout with no items. The HTTP binding already
// catches this; the guard covers the broker path too.
var ErrEmptyCart = errors.New("checkout requires at least one item")

func (uc *saleUseCase) Checkout(ctx context.Context, input *dto.CheckoutInput) (int64, error) {
	if len(input.Items) == 0 {
		return 0, ErrEmptyCart
	}

	items := make([]model.SaleItem, len(input.Items))
	for i, item := range input.Items {
		if item.Quantity <= 0 {
			return 0, fmt.Errorf("product %d: quantity must be positive", item.ID)
		}
		items[i] = model.SaleItem{
			ProductID:   item.ID,
			VariantID:   item.SelectedVariantID,
			Quantity:    item.Quantity,
			PriceAtSale: item.Price,
		}
	}

	saleID, err := uc.repo.Checkout(ctx, input.Total, items)
	if err != nil {
		return 0, err
	}

	// Product stock changed, so the cached list is stale.
	go uc.invalidateProductCache(context.Background())

	return saleID, nil
}

func (uc *saleUseCase) invalidateProductCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	keys, err := uc.cache.Client.Keys(ctx, "products:list*").Result()
	if err != nil {
		uc.logger.Error("failed to scan product cache keys", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}
