package dto

// CartItem is one line of a checkout request. Price is the unit price the
// terminal charged, variant adjustment included.
type CartItem struct {
	ID                int64   `json:"id" binding:"required"`
	SelectedVariantID *int64  `json:"selected_variant_id"`
	Quantity          int64   `json:"quantity" binding:"gt=0"`
	Price             float64 `json:"price"`
}

type CheckoutInput struct {
	Items []CartItem `json:"items" binding:"required,min=1,dive"`
	Total float64    `json:"total"`
}
