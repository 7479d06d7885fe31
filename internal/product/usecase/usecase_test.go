package usecase

import (
	"context"
	"testing"

	"github.com/afifurrozaq/tillpos/internal/logger"
	"github.com/afifurrozaq/tillpos/internal/model"
	"github.com/afifurrozaq/tillpos/internal/product/dto"
	"github.com/afifurrozaq/tillpos/internal/stock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	products map[int64]*model.Product

	searched    string
	updateErr   error
	updatedWith *model.Product
	variantsArg []model.ProductVariant
}

func (r *fakeRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeRepo) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	out := []model.Product{}
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeRepo) SearchByName(ctx context.Context, query string) ([]model.Product, error) {
	r.searched = query
	return []model.Product{}, nil
}

func (r *fakeRepo) Create(ctx context.Context, p *model.Product, variants []model.ProductVariant) (int64, error) {
	r.variantsArg = variants
	return 77, nil
}

func (r *fakeRepo) Update(ctx context.Context, p *model.Product, variants []model.ProductVariant) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updatedWith = p
	r.variantsArg = variants
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id int64) error { return nil }

type fakeLedger struct {
	history []model.StockHistory
}

func (l *fakeLedger) Append(ctx context.Context, ext sqlx.ExtContext, entry *model.StockHistory) error {
	l.history = append(l.history, *entry)
	return nil
}

func (l *fakeLedger) History(ctx context.Context, productID int64) ([]model.StockHistory, error) {
	return l.history, nil
}

var _ stock.Ledger = (*fakeLedger)(nil)

func ts(v int64) *int64 { return &v }

func TestUpdateProductSurfacesConflict(t *testing.T) {
	repo := &fakeRepo{updateErr: &model.ConflictError{
		Current: &model.Product{ID: 7, Name: "Coffee", UpdatedAt: 1000},
	}}
	uc := NewProductUseCase(repo, &fakeLedger{}, nil, nil, logger.NewNop())

	_, err := uc.UpdateProduct(context.Background(), 7, &dto.SaveProductInput{
		Name:      "Coffee (large)",
		UpdatedAt: ts(900),
	})

	var conflict *model.ConflictError
	require.ErrorAs(t, err, &conflict)
	current, ok := conflict.Current.(*model.Product)
	require.True(t, ok)
	assert.Equal(t, int64(1000), current.UpdatedAt)
	assert.Nil(t, repo.updatedWith, "a losing write must not touch the row")
}

func TestUpdateProductCarriesTimestampToRepo(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewProductUseCase(repo, &fakeLedger{}, nil, nil, logger.NewNop())

	updated, err := uc.UpdateProduct(context.Background(), 7, &dto.SaveProductInput{
		Name:      "Coffee",
		Stock:     9,
		UpdatedAt: ts(1100),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), updated.Stock)
	assert.Equal(t, int64(1100), updated.UpdatedAt)
	require.NotNil(t, repo.updatedWith)
	assert.Equal(t, int64(1100), repo.updatedWith.UpdatedAt)
}

func TestUpdateProductReplacesVariants(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewProductUseCase(repo, &fakeLedger{}, nil, nil, logger.NewNop())

	_, err := uc.UpdateProduct(context.Background(), 7, &dto.SaveProductInput{
		Name:      "Coffee",
		UpdatedAt: ts(1100),
		Variants: []dto.VariantInput{
			{Name: "Small", Stock: 3},
			{Name: "Large", Stock: 4, PriceAdjustment: 1.5},
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.variantsArg, 2)
	assert.Equal(t, "Large", repo.variantsArg[1].Name)
	assert.Equal(t, 1.5, repo.variantsArg[1].PriceAdjustment)
}

func TestUpdateProductMissing(t *testing.T) {
	repo := &fakeRepo{updateErr: model.ErrNotFound}
	uc := NewProductUseCase(repo, &fakeLedger{}, nil, nil, logger.NewNop())

	_, err := uc.UpdateProduct(context.Background(), 99, &dto.SaveProductInput{
		Name: "Ghost", UpdatedAt: ts(1),
	})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCreateProductReturnsAssignedID(t *testing.T) {
	repo := &fakeRepo{products: map[int64]*model.Product{}}
	uc := NewProductUseCase(repo, &fakeLedger{}, nil, nil, logger.NewNop())

	created, err := uc.CreateProduct(context.Background(), &dto.SaveProductInput{
		Name: "Tea", Price: 2.5, Stock: 10, UpdatedAt: ts(500),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(77), created.ID)
	assert.Equal(t, int64(500), created.UpdatedAt)
}

func TestListProductsSearchFallsBackToDatabase(t *testing.T) {
	repo := &fakeRepo{products: map[int64]*model.Product{}}

	// No Elasticsearch client wired: the query goes straight to the database.
	uc := NewProductUseCase(repo, &fakeLedger{}, nil, nil, logger.NewNop())

	_, err := uc.ListProducts(context.Background(), "coff")
	require.NoError(t, err)
	assert.Equal(t, "coff", repo.searched)
}

func TestHistoryReadsLedger(t *testing.T) {
	ledger := &fakeLedger{history: []model.StockHistory{
		{ProductID: 7, ChangeAmount: -2, NewStock: 3, Reason: "Sale #41"},
	}}
	uc := NewProductUseCase(&fakeRepo{}, ledger, nil, nil, logger.NewNop())

	history, err := uc.History(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Sale #41", history[0].Reason)
}
