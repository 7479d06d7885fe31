package sale

import (
	"context"

	"github.com/afifurrozaq/tillpos/internal/model"
)

type Repository interface {
	// Checkout records the sale, its line items, the stock decrements and the
	// matching ledger rows in a single transaction. It returns the sale id.
	Checkout(ctx context.Context, totalAmount float64, items []model.SaleItem) (int64, error)
}
