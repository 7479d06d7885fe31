package dto

type VariantInput struct {
	Name            string  `json:"name" binding:"required"`
	Stock           int64   `json:"stock" binding:"gte=0"`
	PriceAdjustment float64 `json:"price_adjustment"`
}

// SaveProductInput serves both create and update. On update the variants
// slice replaces the stored set wholesale. UpdatedAt is the client's
// optimistic-concurrency timestamp (unix seconds); nil means "now".
type SaveProductInput struct {
	Name       string         `json:"name" binding:"required"`
	Price      float64        `json:"price" binding:"gte=0"`
	Stock      int64          `json:"stock" binding:"gte=0"`
	CategoryID *int64         `json:"category_id"`
	ImageURL   *string        `json:"image_url"`
	Variants   []VariantInput `json:"variants"`
	UpdatedAt  *int64         `json:"updated_at"`
}
