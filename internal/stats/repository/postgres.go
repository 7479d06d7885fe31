package repository

import (
	"context"

	"github.com/afifurrozaq/tillpos/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) TotalRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.DB.GetContext(ctx, &revenue,
		"SELECT COALESCE(SUM(total_amount), 0) FROM sales")
	return revenue, err
}

func (r *PGRepository) SalesCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.GetContext(ctx, &count, "SELECT COUNT(*) FROM sales")
	return count, err
}

func (r *PGRepository) LowStockCount(ctx context.Context, threshold int64) (int64, error) {
	var count int64
	err := r.DB.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM products WHERE stock < $1", threshold)
	return count, err
}

func (r *PGRepository) RecentSales(ctx context.Context, limit int) ([]model.Sale, error) {
	sales := []model.Sale{}
	err := r.DB.SelectContext(ctx, &sales, `
        SELECT s.id, s.total_amount, s.timestamp,
               (SELECT COUNT(*) FROM sale_items si WHERE si.sale_id = s.id) AS item_count
        FROM sales s
        ORDER BY s.timestamp DESC
        LIMIT $1
    `, limit)
	return sales, err
}

func (r *PGRepository) DailyRevenue(ctx context.Context) ([]model.DailyRevenue, error) {
	revenue := []model.DailyRevenue{}
	err := r.DB.SelectContext(ctx, &revenue, `
        SELECT to_char(timestamp, 'YYYY-MM-DD') AS date,
               SUM(total_amount) AS revenue
        FROM sales
        WHERE timestamp >= CURRENT_DATE - INTERVAL '7 days'
        GROUP BY to_char(timestamp, 'YYYY-MM-DD')
        ORDER BY date ASC
    `)
	return revenue, err
}
