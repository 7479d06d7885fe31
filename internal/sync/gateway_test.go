package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/afifurrozaq/tillpos/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayDecodesConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"error":   "Conflict: Server has a newer version",
			"current": map[string]any{"id": 7, "updated_at": 1000},
		})
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL)
	err := g.SaveProduct(context.Background(), json.RawMessage(`{"id":7,"updated_at":900}`))

	var conflict *model.ConflictError
	require.ErrorAs(t, err, &conflict)
	current, ok := conflict.Current.(json.RawMessage)
	require.True(t, ok)
	assert.JSONEq(t, `{"id":7,"updated_at":1000}`, string(current))
}

func TestGatewayUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	g := NewHTTPGateway(srv.URL)
	err := g.Checkout(context.Background(), json.RawMessage(`{"items":[]}`))
	assert.ErrorIs(t, err, ErrUnreachable)

	err = g.Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestSaveProductRoutesByID(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL)

	require.NoError(t, g.SaveProduct(context.Background(), json.RawMessage(`{"id":7,"name":"Tea"}`)))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/products/7", gotPath)

	require.NoError(t, g.SaveProduct(context.Background(), json.RawMessage(`{"name":"Tea"}`)))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/products", gotPath)
}

func TestSaveCategoryRoutesByID(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL)

	require.NoError(t, g.SaveCategory(context.Background(), json.RawMessage(`{"id":3,"name":"Drinks"}`)))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/categories/3", gotPath)
}
