package session

import (
	"context"
	"sync"
	"time"
)

// DefaultAutosaveInterval is how often the active scene is captured and persisted
const DefaultAutosaveInterval = 10 * time.Second

// Autosaver runs Tick on a fixed interval until stopped or its context ends
type Autosaver struct {
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// StartAutosave starts ticking in a background goroutine. Tick failures are
// logged and the timer keeps running. The session must already be loaded.
func (m *Manager) StartAutosave(ctx context.Context, interval time.Duration) (*Autosaver, error) {
	m.mu.Lock()
	err := m.requireActive()
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	a := &Autosaver{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(a.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		m.log.WithField("interval", interval).Debug("autosave started")
		for {
			select {
			case <-ctx.Done():
				m.log.Debug("autosave stopped")
				return
			case <-ticker.C:
				if ctx.Err() != nil {
					return
				}
				if err := m.Tick(); err != nil {
					m.log.WithError(err).Warn("autosave tick failed")
				}
			}
		}
	}()

	return a, nil
}

// Stop cancels the timer and waits for an in-flight tick to finish.
// No tick runs after Stop returns. Safe to call more than once.
func (a *Autosaver) Stop() {
	a.stopOnce.Do(a.cancel)
	<-a.done
}

// Done is closed once the autosave goroutine has exited
func (a *Autosaver) Done() <-chan struct{} {
	return a.done
}
