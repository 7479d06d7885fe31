package usecase

import (
	"context"
	"testing"

	"github.com/afifurrozaq/tillpos/internal/logger"
	"github.com/afifurrozaq/tillpos/internal/model"
	"github.com/afifurrozaq/tillpos/internal/sale/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	saleID int64
	total  float64
	items  []model.SaleItem
	called bool
}

func (r *fakeRepo) Checkout(ctx context.Context, totalAmount float64, items []model.SaleItem) (int64, error) {
	r.called = true
	r.total = totalAmount
	r.items = items
	return r.saleID, nil
}

func variant(id int64) *int64 { return &id }

func TestCheckoutMapsCartToSaleItems(t *testing.T) {
	repo := &fakeRepo{saleID: 41}
	uc := NewSaleUseCase(repo, nil, logger.NewNop())

	saleID, err := uc.Checkout(context.Background(), &dto.CheckoutInput{
		Items: []dto.CartItem{
			{ID: 7, Quantity: 2, Price: 2.5},
			{ID: 8, SelectedVariantID: variant(3), Quantity: 1, Price: 4},
		},
		Total: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(41), saleID)
	assert.Equal(t, 9.0, repo.total)
	require.Len(t, repo.items, 2)
	assert.Equal(t, int64(7), repo.items[0].ProductID)
	assert.Nil(t, repo.items[0].VariantID)
	assert.Equal(t, variant(3), repo.items[1].VariantID)
	assert.Equal(t, 4.0, repo.items[1].PriceAtSale)
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewSaleUseCase(repo, nil, logger.NewNop())

	_, err := uc.Checkout(context.Background(), &dto.CheckoutInput{})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.False(t, repo.called)
}

func TestCheckoutRejectsNonPositiveQuantity(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewSaleUseCase(repo, nil, logger.NewNop())

	_, err := uc.Checkout(context.Background(), &dto.CheckoutInput{
		Items: []dto.CartItem{{ID: 7, Quantity: 0, Price: 2.5}},
	})
	assert.Error(t, err)
	assert.False(t, repo.called)
}
