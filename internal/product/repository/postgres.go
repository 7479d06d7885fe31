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

const selectProducts = `
    SELECT p.id, p.name, p.price, p.stock, p.category_id, p.image_url, p.updated_at,
           c.name AS category_name
    FROM products p
    LEFT JOIN categories c ON p.category_id = c.id
`

type PGRepository struct {
	DB     *sqlx.DB
	ledger stock.Ledger
}

func NewPGRepository(db *sqlx.DB, ledger stock.Ledger) *PGRepository {
	return &PGRepository{DB: db, ledger: ledger}
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	if err := r.DB.SelectContext(ctx, &products, selectProducts+" ORDER BY p.name ASC"); err != nil {
		return nil, err
	}
	return r.attachVariants(ctx, products)
}

// FindByIDs preserves the order of ids, which carries the search ranking.
func (r *PGRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query, args, err := sqlx.In(selectProducts+" WHERE p.id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	products := []model.Product{}
	if err := r.DB.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, err
	}
	products, err = r.attachVariants(ctx, products)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	ordered := make([]model.Product, 0, len(products))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func (r *PGRepository) SearchByName(ctx context.Context, query string) ([]model.Product, error) {
	products := []model.Product{}
	err := r.DB.SelectContext(ctx, &products,
		selectProducts+" WHERE p.name ILIKE $1 ORDER BY p.name ASC",
		"%"+query+"%")
	if err != nil {
		return nil, err
	}
	return r.attachVariants(ctx, products)
}

func (r *PGRepository) attachVariants(ctx context.Context, products []model.Product) ([]model.Product, error) {
	if len(products) == 0 {
		return products, nil
	}

	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	query, args, err := sqlx.In("SELECT * FROM product_variants WHERE product_id IN (?) ORDER BY id ASC", ids)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	variants := []model.ProductVariant{}
	if err := r.DB.SelectContext(ctx, &variants, query, args...); err != nil {
		return nil, err
	}

	byProduct := make(map[int64][]model.ProductVariant)
	for _, v := range variants {
		byProduct[v.ProductID] = append(byProduct[v.ProductID], v)
	}
	for i := range products {
		vs := byProduct[products[i].ID]
		if vs == nil {
			vs = []model.ProductVariant{}
		}
		products[i].Variants = vs
	}
	return products, nil
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product, variants []model.ProductVariant) (int64, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var productID int64
	err = tx.GetContext(ctx, &productID, `
        INSERT INTO products (name, price, stock, category_id, image_url, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `, p.Name, p.Price, p.Stock, p.CategoryID, p.ImageURL, p.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}

	// The scalar stock is only authoritative without variants; its initial
	// value still gets a ledger row so the audit trail starts at creation.
	if len(variants) == 0 && p.Stock != 0 {
		entry := &model.StockHistory{
			ProductID:    productID,
			ChangeAmount: p.Stock,
			NewStock:     p.Stock,
			Reason:       model.ReasonInitialStock,
		}
		if err := r.ledger.Append(ctx, tx, entry); err != nil {
			return 0, fmt.Errorf("ledger initial stock: %w", err)
		}
	}

	if err := r.insertVariants(ctx, tx, productID, variants, model.ReasonInitialStock); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return productID, nil
}

// Update replaces the stored variant set wholesale (delete then reinsert), so
// variant ids are not preserved across edits. A scalar stock change appends a
// manual-adjustment ledger row; every reinserted variant appends its own.
// The row is locked first and the timestamp check runs against the locked
// value, so the check and the write cannot interleave with another writer.
func (r *PGRepository) Update(ctx context.Context, p *model.Product, variants []model.ProductVariant) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var current model.Product
	err = tx.GetContext(ctx, &current, selectProducts+" WHERE p.id = $1 FOR UPDATE OF p", p.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ErrNotFound
		}
		return err
	}

	if p.UpdatedAt < current.UpdatedAt {
		currentVariants := []model.ProductVariant{}
		err := tx.SelectContext(ctx, &currentVariants,
			"SELECT * FROM product_variants WHERE product_id = $1 ORDER BY id ASC", p.ID)
		if err != nil {
			return err
		}
		current.Variants = currentVariants
		return &model.ConflictError{Current: &current}
	}
	prevStock := current.Stock

	_, err = tx.ExecContext(ctx, `
        UPDATE products
        SET name = $1, price = $2, stock = $3, category_id = $4, image_url = $5, updated_at = $6
        WHERE id = $7
    `, p.Name, p.Price, p.Stock, p.CategoryID, p.ImageURL, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	if p.Stock != prevStock {
		entry := &model.StockHistory{
			ProductID:    p.ID,
			ChangeAmount: p.Stock - prevStock,
			NewStock:     p.Stock,
			Reason:       model.ReasonManualAdjustment,
		}
		if err := r.ledger.Append(ctx, tx, entry); err != nil {
			return fmt.Errorf("ledger manual adjustment: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM product_variants WHERE product_id = $1", p.ID); err != nil {
		return fmt.Errorf("delete variants: %w", err)
	}

	if err := r.insertVariants(ctx, tx, p.ID, variants, model.ReasonProductUpdate); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PGRepository) insertVariants(ctx context.Context, tx *sqlx.Tx, productID int64, variants []model.ProductVariant, reason string) error {
	for i := range variants {
		v := &variants[i]
		var variantID int64
		err := tx.GetContext(ctx, &variantID, `
            INSERT INTO product_variants (product_id, name, stock, price_adjustment)
            VALUES ($1, $2, $3, $4)
            RETURNING id
        `, productID, v.Name, v.Stock, v.PriceAdjustment)
		if err != nil {
			return fmt.Errorf("insert variant %q: %w", v.Name, err)
		}
		v.ID = variantID
		v.ProductID = productID

		entry := &model.StockHistory{
			ProductID:    productID,
			VariantID:    &variantID,
			ChangeAmount: v.Stock,
			NewStock:     v.Stock,
			Reason:       reason,
		}
		if err := r.ledger.Append(ctx, tx, entry); err != nil {
			return fmt.Errorf("ledger variant %q: %w", v.Name, err)
		}
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	// Variants cascade via their foreign key.
	_, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	return err
}
