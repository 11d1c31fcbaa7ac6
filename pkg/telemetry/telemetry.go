// Package telemetry tracks in-process scan and threat counters for the
// stats endpoint. Counters are atomic; no samples leave the process.
package telemetry

import "sync/atomic"

// Counters aggregates gateway activity since startup.
type Counters struct {
	scanned atomic.Int64
	threats atomic.Int64
	blocked atomic.Int64
	learned atomic.Int64
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Scanned int64 `json:"scanned"`
	Threats int64 `json:"threats"`
	Blocked int64 `json:"blocked"`
	Learned int64 `json:"learned"`
}

// New creates zeroed counters.
func New() *Counters {
	return &Counters{}
}

// RecordScan counts one evaluation; threat marks scores above the warn
// threshold.
func (c *Counters) RecordScan(threat bool) {
	c.scanned.Add(1)
	if threat {
		c.threats.Add(1)
	}
}

// RecordBlock counts one blocked navigation.
func (c *Counters) RecordBlock() {
	c.blocked.Add(1)
}

// RecordLearn counts one learning feedback call.
func (c *Counters) RecordLearn() {
	c.learned.Add(1)
}

// Snapshot returns the current counter values.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Scanned: c.scanned.Load(),
		Threats: c.threats.Load(),
		Blocked: c.blocked.Load(),
		Learned: c.learned.Load(),
	}
}
