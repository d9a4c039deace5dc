package sched

// RunTop grants one quantum of execution to the highest-priority process
// eligible on want and returns the process's new remaining-work
// estimate, or 0 when nothing ran or the process completed.
//
// A callback return of 0 signals completion and removes the process.
// Any other value v refines the estimate: remaining - quantum + v when
// the prior estimate exceeded the quantum, else v alone (the quantum
// overshot the estimate, so only the callback's figure is trusted). An
// unfinished process is re-queued at its new sorted position before the
// next selection can observe it.
func (q *RunQueue) RunTop(want CPUMask, quantum uint64) uint64 {
	idx, p := q.findEligible(want)
	if idx < 0 {
		return 0
	}

	res := p.Callback(quantum, p.Context)
	if res == 0 {
		q.items.Remove(idx)
		return 0
	}

	if p.Remaining > quantum {
		p.Remaining = p.Remaining - quantum + res
	} else {
		p.Remaining = res
	}

	q.items.Remove(idx)
	if err := q.Push(p); err != nil {
		// Unreachable: the entry was just removed and its fields were
		// valid when first queued.
		panic("sched: requeue after quantum failed: " + err.Error())
	}
	return p.Remaining
}
