package sched

import (
	"errors"
	"reflect"
)

// Niceness bounds. Lower niceness schedules earlier.
const (
	MinNiceness = 10
	MaxNiceness = 49
)

var (
	// ErrNicenessRange is returned when a niceness value falls outside
	// [MinNiceness, MaxNiceness].
	ErrNicenessRange = errors.New("niceness out of range [10, 49]")

	// ErrNilCallback is returned when a process carries no callback.
	ErrNilCallback = errors.New("process callback must not be nil")
)

// Callback advances a unit of work by at most quantum abstract time
// units. It returns 0 when the work is complete, or a refined estimate
// of the remaining work otherwise. A callback has to tolerate repeated
// invocation with varying quanta and must not touch the queue it is
// scheduled on.
type Callback func(quantum uint64, context any) uint64

// Process is one schedulable unit of work. The (Callback, Context) pair
// is its identity within a queue, so Context has to be a comparable
// value, in practice a pointer to caller-owned state. The queue never
// dereferences Context.
type Process struct {
	Callback  Callback
	Context   any
	Niceness  uint
	Remaining uint64 // estimated outstanding work, abstract time units
	Mask      CPUMask
	Label     string // free-form, for logs only; not part of identity
}

// NewProcess validates niceness and callback and builds a Process.
func NewProcess(cb Callback, context any, niceness uint, remaining uint64, mask CPUMask) (Process, error) {
	if cb == nil {
		return Process{}, ErrNilCallback
	}
	if niceness < MinNiceness || niceness > MaxNiceness {
		return Process{}, ErrNicenessRange
	}
	return Process{
		Callback:  cb,
		Context:   context,
		Niceness:  niceness,
		Remaining: remaining,
		Mask:      mask,
	}, nil
}

// score is the primary ordering key; lower runs earlier.
func (p Process) score() uint64 {
	return uint64(p.Niceness) * p.Remaining
}

// outranks reports whether p should be scheduled before other. Score
// ties go to the process eligible on fewer CPUs.
func (p Process) outranks(other Process) bool {
	sp, so := p.score(), other.score()
	if sp == so {
		return EligibleCPUs(p.Mask) < EligibleCPUs(other.Mask)
	}
	return sp < so
}

// sameIdentity reports whether two processes designate the same logical
// unit of work. Go func values are not comparable, so the callback side
// of the identity is its code pointer.
func sameIdentity(a, b Process) bool {
	return callbackPtr(a.Callback) == callbackPtr(b.Callback) && a.Context == b.Context
}

func callbackPtr(cb Callback) uintptr {
	if cb == nil {
		return 0
	}
	return reflect.ValueOf(cb).Pointer()
}
