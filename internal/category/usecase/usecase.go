package usecase

import (
	"context"
	"time"

	"github.com/afifurrozaq/tillpos/internal/cache"
	"github.com/afifurrozaq/tillpos/internal/category"
	"github.com/afifurrozaq/tillpos/internal/category/dto"
	"github.com/afifurrozaq/tillpos/internal/logger"
	"github.com/afifurrozaq/tillpos/internal/model"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo   category.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, cache *cache.RedisClient, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.SaveCategoryInput) (*model.Category, error) {
	timestamp := time.Now().Unix()
	if input.UpdatedAt != nil {
		timestamp = *input.UpdatedAt
	}

	id, err := uc.repo.Create(ctx, input.Name, timestamp)
	if err != nil {
		return nil, err
	}

	return &model.Category{ID: id, Name: input.Name, UpdatedAt: timestamp}, nil
}

// UpdateCategory applies the last-writer-wins check: a client timestamp older
// than the stored one loses, and the caller gets the current row back. The
// check itself lives in the repository transaction so concurrent writers
// serialize on the row.
func (uc *categoryUseCase) UpdateCategory(ctx context.Context, id int64, input *dto.SaveCategoryInput) (*model.Category, error) {
	timestamp := time.Now().Unix()
	if input.UpdatedAt != nil {
		timestamp = *input.UpdatedAt
	}

	updated := &model.Category{ID: id, Name: input.Name, UpdatedAt: timestamp}
	if err := uc.repo.Update(ctx, updated); err != nil {
		return nil, err
	}

	go uc.invalidateProductCache(context.Background())

	return updated, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id int64) error {
	count, err := uc.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return model.ErrCategoryInUse
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	go uc.invalidateProductCache(context.Background())
	return nil
}

// Product list responses embed category names, so category writes invalidate
// the product list cache too.
func (uc *categoryUseCase) invalidateProductCache(ctx context.Context) {
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
