package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/afifurrozaq/tillpos/internal/model"
	stockrepo "github.com/afifurrozaq/tillpos/internal/stock/repository"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	return NewPGRepository(db, stockrepo.NewPGLedger(db)), mock
}

func variant(id int64) *int64 { return &id }

func TestCheckoutWritesSaleItemsAndLedger(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sales (total_amount) VALUES ($1) RETURNING id")).
		WithArgs(12.5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(41))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sale_items")).
		WithArgs(int64(41), int64(7), nil, int64(5), 2.5).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products SET stock = stock - $1 WHERE id = $2 RETURNING stock")).
		WithArgs(int64(5), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(-2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO stock_history")).
		WithArgs(int64(7), nil, int64(-5), int64(-2), "Sale #41").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	saleID, err := repo.Checkout(context.Background(), 12.5, []model.SaleItem{
		{ProductID: 7, Quantity: 5, PriceAtSale: 2.5},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(41), saleID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutDecrementsVariantStock(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sales")).
		WithArgs(4.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sale_items")).
		WithArgs(int64(42), int64(7), variant(3), int64(1), 4.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE product_variants SET stock = stock - $1 WHERE id = $2 RETURNING stock")).
		WithArgs(int64(1), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(9))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO stock_history")).
		WithArgs(int64(7), variant(3), int64(-1), int64(9), "Sale #42").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	_, err := repo.Checkout(context.Background(), 4.0, []model.SaleItem{
		{ProductID: 7, VariantID: variant(3), Quantity: 1, PriceAtSale: 4.0},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutMissingProductRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sales")).
		WithArgs(9.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(43))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sale_items")).
		WithArgs(int64(43), int64(999), nil, int64(1), 9.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products SET stock = stock - $1 WHERE id = $2 RETURNING stock")).
		WithArgs(int64(1), int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"stock"})) // no such product
	mock.ExpectRollback()

	_, err := repo.Checkout(context.Background(), 9.0, []model.SaleItem{
		{ProductID: 999, Quantity: 1, PriceAtSale: 9.0},
	})
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
