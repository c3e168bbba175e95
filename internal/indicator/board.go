package indicator

import (
	"log/slog"
	"sync"

	"github.com/rickgao/led-remote/internal/protocol"
)

// Indicator is the visible state of one indicator.
type Indicator struct {
	Label  protocol.Label `json:"label"`
	Active bool           `json:"active"`
}

// Snapshot is a point-in-time copy of the board.
type Snapshot struct {
	Indicators []Indicator `json:"indicators"`
	Version    uint64      `json:"version"` // Incremented on every visible change
}

// Active returns the active label, if any.
func (s Snapshot) Active() (protocol.Label, bool) {
	for _, ind := range s.Indicators {
		if ind.Active {
			return ind.Label, true
		}
	}
	return "", false
}

// Board tracks the four indicators and notifies subscribers of changes.
type Board struct {
	logger *slog.Logger

	mu      sync.Mutex
	labels  []protocol.Label
	active  []bool
	version uint64

	subs   map[int]chan Snapshot
	nextID int
}

// NewBoard creates a board with every indicator inactive.
func NewBoard(logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}

	labels := protocol.Labels()
	return &Board{
		logger: logger,
		labels: labels,
		active: make([]bool, len(labels)),
		subs:   make(map[int]chan Snapshot),
	}
}

// Apply clears all indicators and activates the one matching status.
// Returns true if the visible state changed. Applying the state already
// shown is a no-op and does not notify subscribers.
func (b *Board) Apply(status string) bool {
	next := make([]bool, len(b.labels))
	matched := false
	for i, l := range b.labels {
		if string(l) == status {
			next[i] = true
			matched = true
		}
	}
	if !matched {
		b.logger.Debug("status matches no indicator, clearing", "status", status)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if equal(b.active, next) {
		return false
	}

	b.active = next
	b.version++
	b.notifyLocked()

	return true
}

// Active returns the active label, if any.
func (b *Board) Active() (protocol.Label, bool) {
	return b.Snapshot().Active()
}

// Snapshot returns a copy of the current state.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// Subscribe returns a channel receiving the latest snapshot after each change,
// and a function that cancels the subscription. Slow subscribers only see the
// most recent snapshot.
func (b *Board) Subscribe() (<-chan Snapshot, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Snapshot, 1)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

func (b *Board) snapshotLocked() Snapshot {
	inds := make([]Indicator, len(b.labels))
	for i, l := range b.labels {
		inds[i] = Indicator{Label: l, Active: b.active[i]}
	}
	return Snapshot{Indicators: inds, Version: b.version}
}

// notifyLocked pushes the current snapshot to every subscriber without blocking.
func (b *Board) notifyLocked() {
	if len(b.subs) == 0 {
		return
	}

	snap := b.snapshotLocked()
	for _, ch := range b.subs {
		// Drop a stale pending snapshot so the latest one always fits.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func equal(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
