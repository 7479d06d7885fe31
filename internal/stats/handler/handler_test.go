package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/afifurrozaq/tillpos/internal/logger"
	"github.com/afifurrozaq/tillpos/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUseCase struct {
	called        bool
	thresholdSeen *int64
}

func (uc *fakeUseCase) Dashboard(ctx context.Context, threshold *int64) (*model.Stats, error) {
	uc.called = true
	uc.thresholdSeen = threshold
	return &model.Stats{Revenue: 150.5, SalesCount: 12}, nil
}

func newRouter(uc *fakeUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewStatsHandler(uc, logger.NewNop())
	r.GET("/api/stats", h.Dashboard)
	return r
}

func doGet(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestDashboardOmittedThreshold(t *testing.T) {
	uc := &fakeUseCase{}
	rec := doGet(newRouter(uc), "/api/stats")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, uc.called)
	assert.Nil(t, uc.thresholdSeen)
}

func TestDashboardZeroThresholdIsExplicit(t *testing.T) {
	uc := &fakeUseCase{}
	rec := doGet(newRouter(uc), "/api/stats?threshold=0")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.thresholdSeen)
	assert.Equal(t, int64(0), *uc.thresholdSeen)
}

func TestDashboardInvalidThreshold(t *testing.T) {
	uc := &fakeUseCase{}
	rec := doGet(newRouter(uc), "/api/stats?threshold=lots")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, uc.called)
}
