package sync

import (
	"context"
	"encoding/json"
	gosync "sync"
	"testing"
	"time"

	"github.com/afifurrozaq/tillpos/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedGateway answers pings with whatever error is currently set.
type scriptedGateway struct {
	mu  gosync.Mutex
	err error
}

func (g *scriptedGateway) setErr(err error) {
	g.mu.Lock()
	g.err = err
	g.mu.Unlock()
}

func (g *scriptedGateway) Ping(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

func (g *scriptedGateway) Checkout(ctx context.Context, data json.RawMessage) error     { return nil }
func (g *scriptedGateway) SaveProduct(ctx context.Context, data json.RawMessage) error  { return nil }
func (g *scriptedGateway) SaveCategory(ctx context.Context, data json.RawMessage) error { return nil }

var _ Gateway = (*scriptedGateway)(nil)

type recordingObserver struct {
	events []string
}

func (o *recordingObserver) OnOnline()  { o.events = append(o.events, "online") }
func (o *recordingObserver) OnOffline() { o.events = append(o.events, "offline") }

func TestMonitorReportsTransitionsOnly(t *testing.T) {
	gateway := &scriptedGateway{}
	observer := &recordingObserver{}
	m := NewPingMonitor(gateway, time.Second, observer, logger.NewNop())
	ctx := context.Background()

	m.check(ctx) // first successful ping: offline -> online
	m.check(ctx) // still online, no event

	gateway.setErr(ErrUnreachable)
	m.check(ctx) // online -> offline
	m.check(ctx) // still offline, no event

	gateway.setErr(nil)
	m.check(ctx)

	assert.Equal(t, []string{"online", "offline", "online"}, observer.events)
}

func TestMonitorDrainsQueueWhenGatewayReturns(t *testing.T) {
	queue := newTestQueue(t)
	require.NoError(t, queue.Append(NewAction(ActionCheckout, json.RawMessage(`{"total":5}`))))

	gateway := &scriptedGateway{err: ErrUnreachable}
	c := NewCoordinator(queue, gateway, logger.NewNop())
	m := NewPingMonitor(gateway, time.Second, c, logger.NewNop())
	ctx := context.Background()

	m.check(ctx)
	assert.False(t, c.Online())
	assert.Equal(t, 1, queue.Len())

	gateway.setErr(nil)
	m.check(ctx)
	assert.True(t, c.Online())
	assert.Equal(t, 0, queue.Len())
}

// chanObserver is safe to read from a test while Start runs in a goroutine.
type chanObserver struct {
	events chan string
}

func (o *chanObserver) OnOnline()  { o.events <- "online" }
func (o *chanObserver) OnOffline() { o.events <- "offline" }

func TestMonitorStartPollsUntilCancelled(t *testing.T) {
	gateway := &scriptedGateway{err: ErrUnreachable}
	observer := &chanObserver{events: make(chan string, 8)}
	m := NewPingMonitor(gateway, 5*time.Millisecond, observer, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		m.Start(ctx)
		close(done)
	}()

	gateway.setErr(nil)
	select {
	case event := <-observer.events:
		assert.Equal(t, "online", event)
	case <-time.After(2 * time.Second):
		t.Fatal("monitor never reported the gateway coming back")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop on context cancel")
	}
}
