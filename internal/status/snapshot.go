// internal/status/snapshot.go
package status

import (
	"time"

	"github.com/tamzrod/modbus-datalogger/internal/poller"
)

// errorKinds are every non-success outcome kind, in export order.
var errorKinds = []poller.Kind{
	poller.KindComportIssue,
	poller.KindConnectionError,
	poller.KindFault,
	poller.KindDecodeError,
}

// Snapshot accumulates what the poll cycles of this process produced.
type Snapshot struct {
	Health        uint16
	LastErrorCode uint16

	Cycles   uint64
	Readings uint64
	Errors   map[poller.Kind]uint64

	LastCycle     time.Time
	LastSuccess   time.Time
	CycleDuration time.Duration
}

// NewSnapshot returns a snapshot in the boot state.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Health: HealthUnknown,
		Errors: make(map[poller.Kind]uint64, len(errorKinds)),
	}
}

// Observe folds one finished cycle into the snapshot.
func (s *Snapshot) Observe(c poller.Cycle, finished time.Time) {
	s.Cycles++
	s.LastCycle = finished
	s.CycleDuration = finished.Sub(c.Started)

	if len(c.Outcomes) == 0 {
		s.Health = HealthUnknown
		return
	}

	health := HealthOK
	var code uint16
	for _, o := range c.Outcomes {
		if o.OK() {
			s.Readings++
			s.LastSuccess = finished
			continue
		}
		s.Errors[o.Kind]++
		health = HealthError
		if o.RawErrorCode != 0 {
			code = o.RawErrorCode
		}
	}

	s.Health = health
	// Reset last error code when healthy.
	if health == HealthOK {
		s.LastErrorCode = 0
	} else if code != 0 {
		s.LastErrorCode = code
	}
}
