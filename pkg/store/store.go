// Package store persists engine snapshots and the learning history.
// Persistence is best-effort: the in-memory engine state stays authoritative
// and a failed flush only costs durability, never correctness.
package store

import (
	"context"

	"github.com/bogaguard/bogaguard/pkg/engine"
)

// SnapshotStore saves and loads the engine's learned state.
type SnapshotStore interface {
	Save(ctx context.Context, snap engine.Snapshot) error
	// Load returns the stored snapshot, or found=false when none exists.
	Load(ctx context.Context) (snap engine.Snapshot, found bool, err error)
}

// HistoryAppender archives learning history records durably.
type HistoryAppender interface {
	Append(ctx context.Context, records []engine.HistoryRecord) error
}
