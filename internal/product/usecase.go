package product

import (
	"context"

	"github.com/afifurrozaq/tillpos/internal/model"
	"github.com/afifurrozaq/tillpos/internal/product/dto"
)

type UseCase interface {
	ListProducts(ctx context.Context, searchQuery string) ([]model.Product, error)
	CreateProduct(ctx context.Context, input *dto.SaveProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id int64, input *dto.SaveProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	// History exposes the stock ledger for one product, newest first.
	History(ctx context.Context, productID int64) ([]model.StockHistory, error)
}
