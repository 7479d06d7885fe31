package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/afifurrozaq/tillpos/internal/model"
	"github.com/afifurrozaq/tillpos/internal/stock"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB     *sqlx.DB
	ledger stock.Ledger
}

func NewPGRepository(db *sqlx.DB, ledger stock.Ledger) *PGRepository {
	return &PGRepository{DB: db, ledger: ledger}
}

// Checkout writes the sale header, its items, the stock decrements and the
// ledger rows in one transaction. Stock is allowed to go negative: the sale
// already happened at the till, so the record must land even when the counted
// stock was wrong. A missing product or variant row aborts the whole sale.
func (r *PGRepository) Checkout(ctx context.Context, totalAmount float64, items []model.SaleItem) (int64, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var saleID int64
	err = tx.GetContext(ctx, &saleID,
		"INSERT INTO sales (total_amount) VALUES ($1) RETURNING id", totalAmount)
	if err != nil {
		return 0, fmt.Errorf("insert sale: %w", err)
	}

	saleReason := fmt.Sprintf("Sale #%d", saleID)

	for _, item := range items {
		_, err = tx.ExecContext(ctx, `
            INSERT INTO sale_items (sale_id, product_id, variant_id, quantity, price_at_sale)
            VALUES ($1, $2, $3, $4, $5)
        `, saleID, item.ProductID, item.VariantID, item.Quantity, item.PriceAtSale)
		if err != nil {
			return 0, fmt.Errorf("insert sale item: %w", err)
		}

		var newStock int64
		if item.VariantID != nil {
			err = tx.GetContext(ctx, &newStock,
				"UPDATE product_variants SET stock = stock - $1 WHERE id = $2 RETURNING stock",
				item.Quantity, *item.VariantID)
		} else {
			err = tx.GetContext(ctx, &newStock,
				"UPDATE products SET stock = stock - $1 WHERE id = $2 RETURNING stock",
				item.Quantity, item.ProductID)
		}
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, fmt.Errorf("product %d: %w", item.ProductID, model.ErrNotFound)
			}
			return 0, fmt.Errorf("decrement stock for product %d: %w", item.ProductID, err)
		}

		entry := &model.StockHistory{
			ProductID:    item.ProductID,
			VariantID:    item.VariantID,
			ChangeAmount: -item.Quantity,
			NewStock:     newStock,
			Reason:       saleReason,
		}
		if err := r.ledger.Append(ctx, tx, entry); err != nil {
			return 0, fmt.Errorf("ledger sale entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return saleID, nil
}
