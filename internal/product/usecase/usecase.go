package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/afifurrozaq/tillpos/internal/cache"
	"github.com/afifurrozaq/tillpos/internal/logger"
	"github.com/afifurrozaq/tillpos/internal/model"
	"github.com/afifurrozaq/tillpos/internal/product"
	"github.com/afifurrozaq/tillpos/internal/product/dto"
	"github.com/afifurrozaq/tillpos/internal/search"
	"github.com/afifurrozaq/tillpos/internal/stock"
	"go.uber.org/zap"
)

const (
	productListKey   = "products:list"
	productListTTL   = 5 * time.Minute
	productIndexName = "products"
)

type productUseCase struct {
	repo   product.Repository
	ledger stock.Ledger
	cache  *cache.RedisClient
	es     *search.Client
	logger logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, ledger stock.Ledger, cache *cache.RedisClient, es *search.Client, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		ledger: ledger,
		cache:  cache,
		es:     es,
		logger: log,
	}
}

func (uc *productUseCase) ListProducts(ctx context.Context, searchQuery string) ([]model.Product, error) {
	if searchQuery != "" {
		return uc.searchProducts(ctx, searchQuery)
	}

	// 1. Check cache (unfiltered list only; search results are not cached).
	if uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, productListKey).Result()
		if err == nil {
			var products []model.Product
			if err := json.Unmarshal([]byte(val), &products); err == nil {
				return products, nil
			}
		}
	}

	products, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Set cache.
	if uc.cache != nil {
		if data, err := json.Marshal(products); err == nil {
			uc.cache.Client.Set(ctx, productListKey, data, productListTTL)
		}
	}

	return products, nil
}

// searchProducts asks Elasticsearch for ranked ids and hydrates them from the
// database so the response keeps nested variants and category names. If ES is
// unavailable it falls back to a plain database search.
func (uc *productUseCase) searchProducts(ctx context.Context, searchQuery string) ([]model.Product, error) {
	if uc.es == nil {
		return uc.repo.SearchByName(ctx, searchQuery)
	}

	query := map[string]any{
		"query": map[string]any{
			"query_string": map[string]any{
				"query":  "*" + searchQuery + "*",
				"fields": []string{"name^3"},
			},
		},
		"size": 50,
	}

	res, err := uc.es.Search(ctx, productIndexName, query)
	if err != nil {
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
		return uc.repo.SearchByName(ctx, searchQuery)
	}

	ids := make([]int64, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return uc.repo.FindByIDs(ctx, ids)
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.SaveProductInput) (*model.Product, error) {
	timestamp := time.Now().Unix()
	if input.UpdatedAt != nil {
		timestamp = *input.UpdatedAt
	}

	p := &model.Product{
		Name:       input.Name,
		Price:      input.Price,
		Stock:      input.Stock,
		CategoryID: input.CategoryID,
		ImageURL:   input.ImageURL,
		UpdatedAt:  timestamp,
	}
	variants := variantsFromInput(input.Variants)

	id, err := uc.repo.Create(ctx, p, variants)
	if err != nil {
		return nil, err
	}
	p.ID = id
	p.Variants = variants

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

// UpdateProduct defaults the concurrency token to now; the stale-timestamp
// check itself runs inside the repository transaction.
func (uc *productUseCase) UpdateProduct(ctx context.Context, id int64, input *dto.SaveProductInput) (*model.Product, error) {
	timestamp := time.Now().Unix()
	if input.UpdatedAt != nil {
		timestamp = *input.UpdatedAt
	}

	p := &model.Product{
		ID:         id,
		Name:       input.Name,
		Price:      input.Price,
		Stock:      input.Stock,
		CategoryID: input.CategoryID,
		ImageURL:   input.ImageURL,
		UpdatedAt:  timestamp,
	}
	variants := variantsFromInput(input.Variants)

	if err := uc.repo.Update(ctx, p, variants); err != nil {
		return nil, err
	}
	p.Variants = variants

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	go uc.invalidateListCache(context.Background())
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), productIndexName, strconv.FormatInt(id, 10)); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.Error(err))
			}
		}()
	}

	return nil
}

func (uc *productUseCase) History(ctx context.Context, productID int64) ([]model.StockHistory, error) {
	return uc.ledger.History(ctx, productID)
}

func variantsFromInput(inputs []dto.VariantInput) []model.ProductVariant {
	variants := make([]model.ProductVariant, len(inputs))
	for i, v := range inputs {
		variants[i] = model.ProductVariant{
			Name:            v.Name,
			Stock:           v.Stock,
			PriceAdjustment: v.PriceAdjustment,
		}
	}
	return variants
}

func (uc *productUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	keys, err := uc.cache.Client.Keys(ctx, productListKey+"*").Result()
	if err != nil {
		uc.logger.Error("failed to scan product cache keys", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"name": { "type": "text" },
				"price": { "type": "double" },
				"stock": { "type": "long" },
				"updated_at": { "type": "long" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, productIndexName, mapping)

	doc := struct {
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		Stock     int64   `json:"stock"`
		UpdatedAt int64   `json:"updated_at"`
	}{p.Name, p.Price, p.Stock, p.UpdatedAt}

	if err := uc.es.Index(ctx, productIndexName, strconv.FormatInt(p.ID, 10), doc); err != nil {
		uc.logger.Error("failed to index product", zap.Error(err))
	}
}
