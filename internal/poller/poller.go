// Package poller runs a fetch function on a fixed interval until stopped.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Func func(ctx context.Context) error

type Poller struct {
	name     string
	interval time.Duration
	fn       Func
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(name string, interval time.Duration, fn Func, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		name:     name,
		interval: interval,
		fn:       fn,
		logger:   logger.With("poller", name),
	}
}

// Start launches the loop under ctx. It reports false when the loop was
// already running.
func (p *Poller) Start(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done != nil {
		return false
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	go p.run(loopCtx, done)

	p.logger.Debug("polling started", "interval", p.interval)
	return true
}

// Stop cancels the loop and waits for it to exit. No call to the fetch
// function starts after Stop returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	p.logger.Debug("polling stopped")
}

// Toggle flips the loop and returns whether it is running afterwards.
func (p *Poller) Toggle(ctx context.Context) bool {
	if p.Running() {
		p.Stop()
		return false
	}
	p.Start(ctx)
	return true
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done != nil
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer func() {
		ticker.Stop()
		p.mu.Lock()
		if p.done == done {
			p.cancel()
			p.cancel, p.done = nil, nil
		}
		p.mu.Unlock()
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			if err := p.fn(ctx); err != nil && ctx.Err() == nil {
				p.logger.Warn("poll failed", "error", err)
			}
		}
	}
}
