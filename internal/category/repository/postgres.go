package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/afifurrozaq/tillpos/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

const uniqueViolation = "23505"

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	err := r.DB.SelectContext(ctx, &categories, "SELECT * FROM categories ORDER BY name ASC")
	return categories, err
}

func (r *PGRepository) Create(ctx context.Context, name string, updatedAt int64) (int64, error) {
	var id int64
	err := r.DB.GetContext(ctx, &id,
		"INSERT INTO categories (name, updated_at) VALUES ($1, $2) RETURNING id",
		name, updatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, model.ErrNameTaken
		}
		return 0, err
	}
	return id, nil
}

// Update locks the row, runs the timestamp check against the locked value and
// writes, all in one transaction, so two concurrent writers serialize on the
// row lock and exactly one of a conflicting pair loses.
func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var current model.Category
	err = tx.GetContext(ctx, &current,
		"SELECT * FROM categories WHERE id = $1 FOR UPDATE", c.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ErrNotFound
		}
		return err
	}

	if c.UpdatedAt < current.UpdatedAt {
		return &model.ConflictError{Current: &current}
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE categories SET name = $1, updated_at = $2 WHERE id = $3",
		c.Name, c.UpdatedAt, c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrNameTaken
		}
		return err
	}
	return tx.Commit()
}

func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	return err
}

func (r *PGRepository) CountProducts(ctx context.Context, categoryID int64) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count,
		"SELECT count(*) FROM products WHERE category_id = $1", categoryID)
	return count, err
}
