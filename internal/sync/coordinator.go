package sync

import (
	"context"
	"encoding/json"
	"errors"
	gosync "sync"

	"github.com/afifurrozaq/tillpos/internal/logger"
	"github.com/afifurrozaq/tillpos/internal/model"
	"go.uber.org/zap"
)

// Coordinator routes terminal writes to the gateway while online and into the
// durable queue while offline. It is the monitor's observer: each
// offline-to-online edge triggers a drain.
type Coordinator struct {
	queue   *Queue
	gateway Gateway
	logger  logger.ZapLogger

	mu     gosync.Mutex
	online bool
}

func NewCoordinator(queue *Queue, gateway Gateway, log logger.ZapLogger) *Coordinator {
	return &Coordinator{
		queue:   queue,
		gateway: gateway,
		logger:  log,
	}
}

func (c *Coordinator) Online() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.online
}

func (c *Coordinator) setOnline(online bool) {
	c.mu.Lock()
	c.online = online
	c.mu.Unlock()
}

func (c *Coordinator) OnOnline() {
	c.setOnline(true)
	if err := c.Drain(context.Background()); err != nil {
		c.logger.Error("drain after reconnect failed", zap.Error(err))
	}
}

func (c *Coordinator) OnOffline() {
	c.setOnline(false)
}

// Checkout submits a sale, queueing it when the gateway cannot be reached.
// The returned bool reports whether the action was queued for later.
func (c *Coordinator) Checkout(ctx context.Context, data json.RawMessage) (bool, error) {
	return c.submit(ctx, ActionCheckout, data)
}

func (c *Coordinator) SaveProduct(ctx context.Context, data json.RawMessage) (bool, error) {
	return c.submit(ctx, ActionSaveProduct, data)
}

func (c *Coordinator) SaveCategory(ctx context.Context, data json.RawMessage) (bool, error) {
	return c.submit(ctx, ActionSaveCategory, data)
}

func (c *Coordinator) submit(ctx context.Context, actionType string, data json.RawMessage) (bool, error) {
	if !c.Online() {
		return true, c.enqueue(actionType, data)
	}

	err := c.dispatch(ctx, Action{Type: actionType, Data: data})
	if errors.Is(err, ErrUnreachable) {
		// The monitor will confirm, but don't wait for it.
		c.setOnline(false)
		return true, c.enqueue(actionType, data)
	}
	return false, err
}

func (c *Coordinator) enqueue(actionType string, data json.RawMessage) error {
	action := NewAction(actionType, data)
	if err := c.queue.Append(action); err != nil {
		return err
	}
	c.logger.Info("action queued for later sync",
		zap.String("action_id", action.ID),
		zap.String("type", actionType),
		zap.Int("pending", c.queue.Len()),
	)
	return nil
}

// Drain replays queued actions in order. A success removes the action, a
// conflict drops it (the server version wins and the local copy is already
// stale), and any other failure keeps it queued for the next pass. Outcomes
// are committed by id, so an action accepted while the drain is in flight
// stays queued untouched.
func (c *Coordinator) Drain(ctx context.Context) error {
	pending := c.queue.Snapshot()
	if len(pending) == 0 {
		return nil
	}
	c.logger.Info("draining offline queue", zap.Int("pending", len(pending)))

	done := make([]string, 0, len(pending))
	for _, action := range pending {
		err := c.dispatch(ctx, action)
		if err == nil {
			done = append(done, action.ID)
			continue
		}

		var conflict *model.ConflictError
		if errors.As(err, &conflict) {
			c.logger.Warn("dropping conflicting action",
				zap.String("action_id", action.ID),
				zap.String("type", action.Type),
			)
			done = append(done, action.ID)
			continue
		}

		if errors.Is(err, ErrUnreachable) {
			c.setOnline(false)
			break
		}

		c.logger.Error("action failed, keeping it queued",
			zap.String("action_id", action.ID),
			zap.String("type", action.Type),
			zap.Error(err),
		)
	}

	return c.queue.Remove(done)
}

func (c *Coordinator) dispatch(ctx context.Context, action Action) error {
	switch action.Type {
	case ActionCheckout:
		return c.gateway.Checkout(ctx, action.Data)
	case ActionSaveProduct:
		return c.gateway.SaveProduct(ctx, withTimestamp(action.Data, action.ClientTimestamp))
	case ActionSaveCategory:
		return c.gateway.SaveCategory(ctx, withTimestamp(action.Data, action.ClientTimestamp))
	default:
		return errors.New("unknown action type: " + action.Type)
	}
}

// withTimestamp stamps a replayed catalog write with the moment the user made
// the edit, so the server's conflict check compares against the real edit
// time rather than the sync time. A payload that already carries updated_at
// wins over the queue metadata.
func withTimestamp(data json.RawMessage, clientTimestamp int64) json.RawMessage {
	if clientTimestamp == 0 {
		return data
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return data
	}
	if _, ok := payload["updated_at"]; ok {
		return data
	}
	payload["updated_at"], _ = json.Marshal(clientTimestamp)
	stamped, err := json.Marshal(payload)
	if err != nil {
		return data
	}
	return stamped
}
