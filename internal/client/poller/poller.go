// Package poller implements RFID auto-fill: while an account form is open
// and its RFID field is empty, the last unknown card swipe is fetched from
// the backend once per interval and copied into the field.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/prepaidmate/internal/logging"
)

const DefaultInterval = time.Second

// Source yields the most recent unassigned card code, "" if there is none.
type Source interface {
	LastUnknownCode(ctx context.Context) (string, error)
}

// Target is the RFID field being filled.
type Target interface {
	// Empty reports whether the field still has no value.
	Empty() bool
	// Fill stores code unless the field was filled in the meantime and
	// reports whether it did.
	Fill(code string) bool
}

type Poller struct {
	src      Source
	dst      Target
	interval time.Duration
	timeout  time.Duration
	log      logging.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(src Source, dst Target, interval time.Duration, log logging.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Poller{src: src, dst: dst, interval: interval, timeout: interval, log: log}
}

// Start launches the polling goroutine. Calling Start on a running poller
// does nothing.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
}

// Stop cancels polling and waits until the goroutine has returned, so no
// Fill happens after Stop. Safe to call more than once.
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
}

// Running reports whether Start was called without a matching Stop.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.tick(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	if !p.dst.Empty() {
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	code, err := p.src.LastUnknownCode(reqCtx)
	cancel()

	if err != nil {
		if ctx.Err() == nil {
			p.log.Debug(ctx, "rfid poll failed", "error", err)
		}
		return
	}
	if code == "" || ctx.Err() != nil {
		return
	}
	if p.dst.Fill(code) {
		p.log.Info(ctx, "rfid field auto-filled", "code", code)
	}
}
