package sched

import (
	"errors"

	"github.com/emirpasic/gods/lists/doublylinkedlist"
)

var (
	// ErrDuplicateProcess reports a push whose process is already queued
	// with identical scheduling parameters. The queue is unchanged.
	ErrDuplicateProcess = errors.New("identical process already queued")

	// ErrInconsistentProcess reports a push whose identity is already
	// queued under conflicting scheduling parameters. The same logical
	// unit of work cannot coexist with two sets of parameters.
	ErrInconsistentProcess = errors.New("process identity queued with conflicting parameters")
)

// RunQueue keeps processes in non-increasing scheduling eligibility:
// score (niceness times remaining work) ascending, eligible-CPU count
// ascending on ties. Every mutation leaves the chain in that order.
//
// A RunQueue is not internally synchronized. Callers own the
// serialization discipline; see Scheduler for the single-mutex variant.
type RunQueue struct {
	items *doublylinkedlist.List
}

// NewRunQueue returns an empty queue.
func NewRunQueue() *RunQueue {
	return &RunQueue{items: doublylinkedlist.New()}
}

// Size returns the number of queued processes.
func (q *RunQueue) Size() int {
	return q.items.Size()
}

// Push inserts p immediately before the first queued process it
// outranks, or at the tail. It returns ErrDuplicateProcess or
// ErrInconsistentProcess when p's identity is already queued, and
// ErrNicenessRange or ErrNilCallback for hand-built values that skipped
// NewProcess. The queue is unchanged on any error.
func (q *RunQueue) Push(p Process) error {
	if p.Callback == nil {
		return ErrNilCallback
	}
	if p.Niceness < MinNiceness || p.Niceness > MaxNiceness {
		return ErrNicenessRange
	}

	if q.items.Empty() {
		q.items.Add(p)
		return nil
	}

	if err := q.classify(p); err != nil {
		return err
	}

	it := q.items.Iterator()
	for it.Next() {
		if p.outranks(it.Value().(Process)) {
			q.items.Insert(it.Index(), p)
			return nil
		}
	}
	q.items.Add(p)
	return nil
}

// classify scans for an already-queued process with p's identity and
// decides between duplicate and inconsistent. Nil means fresh.
func (q *RunQueue) classify(p Process) error {
	it := q.items.Iterator()
	for it.Next() {
		queued := it.Value().(Process)
		if !sameIdentity(queued, p) {
			continue
		}
		if queued.Remaining == p.Remaining &&
			queued.Niceness == p.Niceness &&
			queued.Mask == p.Mask {
			return ErrDuplicateProcess
		}
		return ErrInconsistentProcess
	}
	return nil
}

// PeekTop returns a copy of the earliest-in-order process whose mask
// intersects want. The head itself may be ineligible for the requesting
// CPU, so this is a scan, not a head read. The queue is never mutated.
func (q *RunQueue) PeekTop(want CPUMask) (Process, bool) {
	idx, p := q.findEligible(want)
	if idx < 0 {
		return Process{}, false
	}
	return p, true
}

// PopTop removes and returns the earliest-in-order process eligible on
// want. The queue is unchanged when no process matches.
func (q *RunQueue) PopTop(want CPUMask) (Process, bool) {
	idx, p := q.findEligible(want)
	if idx < 0 {
		return Process{}, false
	}
	q.items.Remove(idx)
	return p, true
}

func (q *RunQueue) findEligible(want CPUMask) (int, Process) {
	it := q.items.Iterator()
	for it.Next() {
		p := it.Value().(Process)
		if p.Mask.Intersects(want) {
			return it.Index(), p
		}
	}
	return -1, Process{}
}

// Renice updates the niceness of the queued process with the given
// identity and moves it to its new sorted position via remove and
// re-push. It reports whether such a process was found.
func (q *RunQueue) Renice(cb Callback, context any, niceness uint) (bool, error) {
	if niceness < MinNiceness || niceness > MaxNiceness {
		return false, ErrNicenessRange
	}

	probe := Process{Callback: cb, Context: context}
	it := q.items.Iterator()
	for it.Next() {
		p := it.Value().(Process)
		if !sameIdentity(p, probe) {
			continue
		}
		q.items.Remove(it.Index())
		p.Niceness = niceness
		if err := q.Push(p); err != nil {
			// Unreachable: the only same-identity entry was just removed
			// and the new niceness is already range-checked.
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// Copy returns a structurally independent queue holding copies of the
// same process values in the same order. Mutating either queue never
// affects the other.
func (q *RunQueue) Copy() *RunQueue {
	dup := doublylinkedlist.New()
	dup.Add(q.items.Values()...)
	return &RunQueue{items: dup}
}

// Clear removes every queued process.
func (q *RunQueue) Clear() {
	q.items.Clear()
}

// Processes returns the queued processes in scheduling order.
func (q *RunQueue) Processes() []Process {
	out := make([]Process, 0, q.items.Size())
	q.items.Each(func(_ int, v interface{}) {
		out = append(out, v.(Process))
	})
	return out
}
