package repository

import (
	"context"

	"github.com/afifurrozaq/tillpos/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGLedger struct {
	DB *sqlx.DB
}

func NewPGLedger(db *sqlx.DB) *PGLedger {
	return &PGLedger{DB: db}
}

func (l *PGLedger) Append(ctx context.Context, ext sqlx.ExtContext, entry *model.StockHistory) error {
	query := `
        INSERT INTO stock_history (product_id, variant_id, change_amount, new_stock, reason)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := ext.ExecContext(ctx, query,
		entry.ProductID, entry.VariantID, entry.ChangeAmount, entry.NewStock, entry.Reason)
	return err
}

// History returns ledger rows newest first, joined with the variant name for
// display. The join is LEFT because variant rows are replaced on product
// updates and old ids no longer resolve.
func (l *PGLedger) History(ctx context.Context, productID int64) ([]model.StockHistory, error) {
	query := `
        SELECT h.id, h.product_id, h.variant_id, v.name AS variant_name,
               h.change_amount, h.new_stock, h.reason, h.timestamp
        FROM stock_history h
        LEFT JOIN product_variants v ON h.variant_id = v.id
        WHERE h.product_id = $1
        ORDER BY h.timestamp DESC, h.id DESC
    `
	history := []model.StockHistory{}
	if err := l.DB.SelectContext(ctx, &history, query, productID); err != nil {
		return nil, err
	}
	return history, nil
}
