package sync

import (
	"context"
	"time"

	"github.com/afifurrozaq/tillpos/internal/logger"
)

// Observer receives connectivity transitions. OnOnline fires on every
// offline-to-online edge, which is the coordinator's cue to drain.
type Observer interface {
	OnOnline()
	OnOffline()
}

// PingMonitor derives connectivity by polling the gateway health route. The
// terminal never trusts a cached state: a failed real request flips it
// offline immediately via the coordinator, and the monitor flips it back.
type PingMonitor struct {
	gateway  Gateway
	interval time.Duration
	observer Observer
	logger   logger.ZapLogger

	online bool
}

func NewPingMonitor(gateway Gateway, interval time.Duration, observer Observer, log logger.ZapLogger) *PingMonitor {
	return &PingMonitor{
		gateway:  gateway,
		interval: interval,
		observer: observer,
		logger:   log,
	}
}

func (m *PingMonitor) Start(ctx context.Context) {
	m.check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

func (m *PingMonitor) check(ctx context.Context) {
	err := m.gateway.Ping(ctx)
	online := err == nil
	if online == m.online {
		return
	}
	m.online = online
	if online {
		m.logger.Info("gateway reachable")
		m.observer.OnOnline()
	} else {
		m.logger.Warn("gateway unreachable")
		m.observer.OnOffline()
	}
}
