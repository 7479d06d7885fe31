package model

import "time"

// StockHistory is an append-only audit row: exactly one per stock-affecting
// event (initial stock, manual adjustment, sale). NewStock is the post-write
// value read back in the same transaction as the write it records.
type StockHistory struct {
	ID           int64     `db:"id" json:"id"`
	ProductID    int64     `db:"product_id" json:"product_id"`
	VariantID    *int64    `db:"variant_id" json:"variant_id"`
	VariantName  *string   `db:"variant_name" json:"variant_name,omitempty"` // joined for display
	ChangeAmount int64     `db:"change_amount" json:"change_amount"`
	NewStock     int64     `db:"new_stock" json:"new_stock"`
	Reason       string    `db:"reason" json:"reason"`
	Timestamp    time.Time `db:"timestamp" json:"timestamp"`
}

// Ledger reasons.
const (
	ReasonInitialStock     = "Initial Stock"
	ReasonManualAdjustment = "Manual Adjustment"
	ReasonProductUpdate    = "Product Update"
)
