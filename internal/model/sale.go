package model

import "time"

// Sale is immutable once created; there is no update or delete path.
type Sale struct {
	ID          int64     `db:"id" json:"id"`
	TotalAmount float64   `db:"total_amount" json:"total_amount"`
	Timestamp   time.Time `db:"timestamp" json:"timestamp"`
	ItemCount   int       `db:"item_count" json:"item_count"` // populated on recent-sales reads
}

type SaleItem struct {
	ID          int64   `db:"id" json:"id"`
	SaleID      int64   `db:"sale_id" json:"sale_id"`
	ProductID   int64   `db:"product_id" json:"product_id"`
	VariantID   *int64  `db:"variant_id" json:"variant_id"`
	Quantity    int64   `db:"quantity" json:"quantity"`
	PriceAtSale float64 `db:"price_at_sale" json:"price_at_sale"`
}
