package model

type Product struct {
	ID           int64   `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Price        float64 `db:"price" json:"price"`
	Stock        int64   `db:"stock" json:"stock"` // authoritative only when the product has no variants
	CategoryID   *int64  `db:"category_id" json:"category_id"`
	CategoryName *string `db:"category_name" json:"category_name,omitempty"` // joined data
	ImageURL     *string `db:"image_url" json:"image_url"`
	UpdatedAt    int64   `db:"updated_at" json:"updated_at"`

	Variants []ProductVariant `db:"-" json:"variants"`
}

// ProductVariant rows are replaced wholesale on every product update, so a
// variant id is only stable between two edits of its product.
type ProductVariant struct {
	ID              int64   `db:"id" json:"id"`
	ProductID       int64   `db:"product_id" json:"product_id"`
	Name            string  `db:"name" json:"name"`
	Stock           int64   `db:"stock" json:"stock"`
	PriceAdjustment float64 `db:"price_adjustment" json:"price_adjustment"`
}
