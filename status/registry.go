package status

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Metric keys written by the board and read by the status bar
const (
	KeyPoursStarted   = "pour.started"
	KeyPoursCompleted = "pour.completed"
	KeyPoursRejected  = "pour.rejected"
	KeyPoursFaulted   = "pour.faulted"
	KeyPoursActive    = "pour.active"
	KeyMoves          = "board.moves"
	KeyRestarts       = "board.restarts"
	KeySolved         = "board.solved"
	KeyStuck          = "board.stuck"
	KeyPaused         = "game.paused"
	KeyLevel          = "level.name"
	KeyLastPour       = "pour.last_id"
)

// Registry is the central counter facade
// Writers cache pointers at construction and update the atomics directly
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Strings.Count()
}

// Fields renders every metric as zap fields, for the exit summary log
func (r *Registry) Fields() []zap.Field {
	fields := make([]zap.Field, 0, r.TotalCount())
	r.Ints.Range(func(key string, v *atomic.Int64) {
		fields = append(fields, zap.Int64(key, v.Load()))
	})
	r.Bools.Range(func(key string, v *atomic.Bool) {
		fields = append(fields, zap.Bool(key, v.Load()))
	})
	r.Strings.Range(func(key string, v *AtomicString) {
		fields = append(fields, zap.String(key, v.Load()))
	})
	return fields
}
