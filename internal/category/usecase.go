package category

import (
	"context"

	"github.com/afifurrozaq/tillpos/internal/category/dto"
	"github.com/afifurrozaq/tillpos/internal/model"
)

type UseCase interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, input *dto.SaveCategoryInput) (*model.Category, error)
	UpdateCategory(ctx context.Context, id int64, input *dto.SaveCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}
