package product

import (
	"context"

	"github.com/afifurrozaq/tillpos/internal/model"
)

type Repository interface {
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
	SearchByName(ctx context.Context, query string) ([]model.Product, error)

	// Create and Update are transactional: product row, variant rows and the
	// ledger entries they imply commit or roll back together. Update locks
	// the product row, rejects a stale p.UpdatedAt with ConflictError
	// (carrying the current row and variants) and returns ErrNotFound for a
	// missing product.
	Create(ctx context.Context, p *model.Product, variants []model.ProductVariant) (int64, error)
	Update(ctx context.Context, p *model.Product, variants []model.ProductVariant) error
	Delete(ctx context.Context, id int64) error
}
