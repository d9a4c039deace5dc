package sched

import "math/bits"

// CPUMask marks the logical CPUs a process may run on, bit i meaning
// "eligible to run on CPU i". Bit assignments beyond that are up to the
// caller. A process with a zero mask is never selected.
type CPUMask uint16

// CPUMaskMax is the highest representable mask (16 logical CPUs).
const CPUMaskMax CPUMask = 65535

// EligibleCPUs returns the number of CPUs the mask designates. Used as
// the tie-break signal: fewer eligible CPUs means scarcer opportunity
// to run, so the process is scheduled earlier on score ties.
func EligibleCPUs(mask CPUMask) int {
	return bits.OnesCount16(uint16(mask))
}

// Intersects reports whether the process may run on any CPU in want.
func (m CPUMask) Intersects(want CPUMask) bool {
	return m&want != 0
}
