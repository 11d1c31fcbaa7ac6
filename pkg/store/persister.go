package store

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bogaguard/bogaguard/pkg/engine"
)

const defaultFlushTimeout = 5 * time.Second

// Persister turns engine snapshots into fire-and-forget flushes with a
// bounded number in flight. When every slot is busy the flush is dropped and
// counted; the next Learn produces a fresh snapshot anyway, so a dropped
// flush only delays durability.
type Persister struct {
	snapshots SnapshotStore
	archive   HistoryAppender

	slots   chan struct{}
	timeout time.Duration
	dropped atomic.Int64
	wg      sync.WaitGroup
}

// NewPersister wires the flush targets. Either target may be nil; a
// persister with no targets is valid and does nothing.
func NewPersister(snapshots SnapshotStore, archive HistoryAppender, maxInFlight int) *Persister {
	if maxInFlight <= 0 {
		maxInFlight = 2
	}
	return &Persister{
		snapshots: snapshots,
		archive:   archive,
		slots:     make(chan struct{}, maxInFlight),
		timeout:   defaultFlushTimeout,
	}
}

// Sink returns the callback the engine invokes after every Learn.
// It never blocks the caller.
func (p *Persister) Sink() engine.SnapshotSink {
	return func(snap engine.Snapshot) {
		select {
		case p.slots <- struct{}{}:
		default:
			p.dropped.Add(1)
			return
		}

		p.wg.Add(1)
		go func() {
			defer func() {
				<-p.slots
				p.wg.Done()
			}()

			ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
			defer cancel()
			if err := p.Flush(ctx, snap); err != nil {
				log.Printf("[WARN] snapshot flush failed: %v", err)
			}
		}()
	}
}

// Flush writes the snapshot and archives its history concurrently.
func (p *Persister) Flush(ctx context.Context, snap engine.Snapshot) error {
	g, ctx := errgroup.WithContext(ctx)

	if p.snapshots != nil {
		g.Go(func() error {
			return p.snapshots.Save(ctx, snap)
		})
	}
	if p.archive != nil {
		g.Go(func() error {
			return p.archive.Append(ctx, snap.History)
		})
	}
	return g.Wait()
}

// Dropped reports how many flushes were skipped because all slots were busy.
func (p *Persister) Dropped() int64 {
	return p.dropped.Load()
}

// Wait blocks until all in-flight flushes finish. Call during shutdown.
func (p *Persister) Wait() {
	p.wg.Wait()
}
