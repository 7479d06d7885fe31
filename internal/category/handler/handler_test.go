package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/afifurrozaq/tillpos/internal/category/dto"
	"github.com/afifurrozaq/tillpos/internal/logger"
	"github.com/afifurrozaq/tillpos/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeUseCase struct {
	updateErr error
	deleteErr error
}

func (uc *fakeUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	return []model.Category{{ID: 1, Name: "Beverages", UpdatedAt: 100}}, nil
}

func (uc *fakeUseCase) CreateCategory(ctx context.Context, input *dto.SaveCategoryInput) (*model.Category, error) {
	return &model.Category{ID: 2, Name: input.Name, UpdatedAt: 200}, nil
}

func (uc *fakeUseCase) UpdateCategory(ctx context.Context, id int64, input *dto.SaveCategoryInput) (*model.Category, error) {
	if uc.updateErr != nil {
		return nil, uc.updateErr
	}
	return &model.Category{ID: id, Name: input.Name, UpdatedAt: 300}, nil
}

func (uc *fakeUseCase) DeleteCategory(ctx context.Context, id int64) error {
	return uc.deleteErr
}

func newRouter(uc *fakeUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCategoryHandler(uc, logger.NewNop())
	r.GET("/api/categories", h.List)
	r.POST("/api/categories", h.Create)
	r.PUT("/api/categories/:id", h.Update)
	r.DELETE("/api/categories/:id", h.Delete)
	return r
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUpdateConflictCarriesCurrentRow(t *testing.T) {
	uc := &fakeUseCase{updateErr: &model.ConflictError{
		Current: &model.Category{ID: 5, Name: "Beverages", UpdatedAt: 1000},
	}}
	router := newRouter(uc)

	rec := doJSON(router, http.MethodPut, "/api/categories/5",
		`{"name":"Drinks","updated_at":900}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{
		"error": "Conflict: Server has a newer version",
		"current": {"id": 5, "name": "Beverages", "updated_at": 1000}
	}`, rec.Body.String())
}

func TestUpdateOK(t *testing.T) {
	router := newRouter(&fakeUseCase{})

	rec := doJSON(router, http.MethodPut, "/api/categories/5",
		`{"name":"Drinks","updated_at":1100}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"updated_at":300}`, rec.Body.String())
}

func TestCreateReturnsIDAndTimestamp(t *testing.T) {
	router := newRouter(&fakeUseCase{})

	rec := doJSON(router, http.MethodPost, "/api/categories", `{"name":"Bakery"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":2,"updated_at":200}`, rec.Body.String())
}

func TestDeleteInUse(t *testing.T) {
	router := newRouter(&fakeUseCase{deleteErr: model.ErrCategoryInUse})

	rec := doJSON(router, http.MethodDelete, "/api/categories/5", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Cannot delete category while products are linked to it."}`, rec.Body.String())
}

func TestUpdateNotFound(t *testing.T) {
	router := newRouter(&fakeUseCase{updateErr: model.ErrNotFound})

	rec := doJSON(router, http.MethodPut, "/api/categories/99",
		`{"name":"Ghost","updated_at":1}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
