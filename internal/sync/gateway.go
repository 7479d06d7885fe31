package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/afifurrozaq/tillpos/internal/model"
)

// ErrUnreachable marks transport-level failures: the action was not rejected,
// it simply never arrived, so it stays queued.
var ErrUnreachable = errors.New("gateway unreachable")

// Gateway is the terminal's view of the server. Each method maps to one
// queueable action type.
type Gateway interface {
	Ping(ctx context.Context) error
	Checkout(ctx context.Context, data json.RawMessage) error
	SaveProduct(ctx context.Context, data json.RawMessage) error
	SaveCategory(ctx context.Context, data json.RawMessage) error
}

type HTTPGateway struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPGateway(baseURL string) *HTTPGateway {
	return &HTTPGateway{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *HTTPGateway) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"/api/health", nil)
	if err != nil {
		return err
	}
	res, err := g.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health returned %d", ErrUnreachable, res.StatusCode)
	}
	return nil
}

func (g *HTTPGateway) Checkout(ctx context.Context, data json.RawMessage) error {
	return g.send(ctx, http.MethodPost, "/api/checkout", data)
}

// SaveProduct replays a catalog write. A payload carrying an "id" targets the
// update route; without one it creates.
func (g *HTTPGateway) SaveProduct(ctx context.Context, data json.RawMessage) error {
	if id, ok := payloadID(data); ok {
		return g.send(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), data)
	}
	return g.send(ctx, http.MethodPost, "/api/products", data)
}

func (g *HTTPGateway) SaveCategory(ctx context.Context, data json.RawMessage) error {
	if id, ok := payloadID(data); ok {
		return g.send(ctx, http.MethodPut, fmt.Sprintf("/api/categories/%d", id), data)
	}
	return g.send(ctx, http.MethodPost, "/api/categories", data)
}

func (g *HTTPGateway) send(ctx context.Context, method, path string, body json.RawMessage) error {
	req, err := http.NewRequestWithContext(ctx, method, g.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := g.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode >= 200 && res.StatusCode < 300:
		return nil
	case res.StatusCode == http.StatusConflict:
		var payload struct {
			Error   string          `json:"error"`
			Current json.RawMessage `json:"current"`
		}
		if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
			return &model.ConflictError{}
		}
		return &model.ConflictError{Current: payload.Current}
	default:
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return fmt.Errorf("%s %s: status %d: %s", method, path, res.StatusCode, msg)
	}
}

func payloadID(data json.RawMessage) (int64, bool) {
	var partial struct {
		ID *int64 `json:"id"`
	}
	if err := json.Unmarshal(data, &partial); err != nil || partial.ID == nil {
		return 0, false
	}
	return *partial.ID, true
}
