// internal/sched/schedulerEvent.go

package sched

import (
	"time"
)

// StatusKind represents the type of scheduler event
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusEnqueue
	StatusRenice
	StatusDispatch
	StatusPreempt
	StatusFinish
	StatusTick
)

// StatusEvent is emitted every dispatch round or on key actions
type StatusEvent struct {
	Time      time.Time
	Kind      StatusKind
	CPU       int
	Label     string
	Niceness  uint
	Remaining uint64
	Mask      CPUMask
}

func (sk StatusKind) String() string {
	switch sk {
	case StatusIdle:
		return "Idle"
	case StatusEnqueue:
		return "Enqueued"
	case StatusRenice:
		return "Renice"
	case StatusDispatch:
		return "Dispatch"
	case StatusPreempt:
		return "Preempt"
	case StatusFinish:
		return "Finish"
	case StatusTick:
		return "Tick"
	default:
		return "Unknown"
	}
}
