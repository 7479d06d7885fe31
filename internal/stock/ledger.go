package stock

import (
	"context"

	"github.com/afifurrozaq/tillpos/internal/model"
	"github.com/jmoiron/sqlx"
)

// Ledger records stock deltas; it never computes stock itself. Append runs
// against the caller's executor so the sale processor and catalog store can
// write ledger rows inside their own transactions.
type Ledger interface {
	Append(ctx context.Context, ext sqlx.ExtContext, entry *model.StockHistory) error
	History(ctx context.Context, productID int64) ([]model.StockHistory, error)
}
