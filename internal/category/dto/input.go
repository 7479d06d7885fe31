package dto

// SaveCategoryInput serves both create and update. UpdatedAt is the client's
// optimistic-concurrency timestamp (unix seconds); nil means "now".
type SaveCategoryInput struct {
	Name      string `json:"name" binding:"required"`
	UpdatedAt *int64 `json:"updated_at"`
}
