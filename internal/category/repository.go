package category

import (
	"context"

	"github.com/afifurrozaq/tillpos/internal/model"
)

type Repository interface {
	FindAll(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, name string, updatedAt int64) (int64, error)

	// Update is transactional: it locks the row, rejects a stale timestamp
	// with ConflictError (carrying the current row) and writes, so the check
	// and the write cannot interleave with another writer. A missing row is
	// ErrNotFound.
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id int64) error

	// Referential-integrity check for delete.
	CountProducts(ctx context.Context, categoryID int64) (int, error)
}
