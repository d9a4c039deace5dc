package job

// Unit is the caller-owned context behind a scheduled callback: a
// deterministic amount of work that each grant consumes quantum by
// quantum.
type Unit struct {
	Left uint64
}

// NewUnit returns a unit holding total abstract time units of work.
func NewUnit(total uint64) *Unit {
	return &Unit{Left: total}
}

// Step consumes up to quantum units of work from the Unit in context
// and returns what is left, 0 meaning done.
func Step(quantum uint64, context any) uint64 {
	u := context.(*Unit)
	if quantum >= u.Left {
		u.Left = 0
		return 0
	}
	u.Left -= quantum
	return u.Left
}

// Inflate returns a step function that discovers extra work on its
// first grant, so the scheduler's estimate gets refined upward before
// the unit drains like Step.
func Inflate(extra uint64) func(quantum uint64, context any) uint64 {
	first := true
	return func(quantum uint64, context any) uint64 {
		if first {
			first = false
			context.(*Unit).Left += extra
		}
		return Step(quantum, context)
	}
}
