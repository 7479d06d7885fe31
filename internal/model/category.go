package model

// Category groups products. UpdatedAt is a unix-seconds timestamp acting as
// the optimistic-concurrency token: writers supply their own timestamp and a
// write older than the stored one is rejected.
type Category struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	UpdatedAt int64  `db:"updated_at" json:"updated_at"`
}
