// internal/sched/scheduler.go

package sched

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Scheduler drives a RunQueue with a tick clock, granting one quantum
// per simulated CPU per round, and streams state changes.
//
// The RunQueue itself is unsynchronized; the Scheduler owns the
// serialization discipline: every select-then-mutate sequence runs
// under s.mu, so two CPU rounds can never race to pick the same
// process.
type Scheduler struct {
	// Scheduler-related
	mu           sync.Mutex       // protects the run queue
	queue        *RunQueue        // processes ordered by score and affinity
	clock        *TickClock       // clock for generating ticks
	quantumTicks int64            // ticks granted to a process per dispatch
	cpuCount     int              // simulated CPUs, dispatched round-robin
	statusCh     chan StatusEvent // channel for status events
	runID        string           // identifies this scheduler instance in logs
	log          *logrus.Entry

	// logging-related
	csvFile   *os.File
	csvWriter *csv.Writer
}

// New creates a new Scheduler instance with the given configuration.
func New(cfg Config) *Scheduler {
	clock := NewTickClock(256) // buffer size for tick events
	clock.Start(time.Duration(cfg.TickMS) * time.Millisecond)

	runID := uuid.New().String()
	return &Scheduler{
		queue:        NewRunQueue(),
		clock:        clock,
		quantumTicks: int64(cfg.QuantumTicks),
		cpuCount:     cfg.CPUCount,
		statusCh:     make(chan StatusEvent, 256), // buffered channel for status events
		runID:        runID,
		log:          logrus.WithField("run_id", runID),
	}
}

// EnableCSVLogging opens the given file path for CSV logging of events.
// Must be called before Run().
func (s *Scheduler) EnableCSVLogging(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)

	// write header
	w.Write([]string{"timestamp", "tick", "event", "cpu", "label", "niceness", "remaining", "mask"})
	w.Flush()
	s.csvFile = f
	s.csvWriter = w
	return nil
}

// StatusChannel exposes read-only stream (optional consumers).
func (s *Scheduler) StatusChannel() <-chan StatusEvent { return s.statusCh }

// Run starts the dispatch loop and consumes status events until the
// context ends and the loop drains.
func (s *Scheduler) Run(ctx context.Context) error {
	// start loop
	go s.loop(ctx)

	// consume events
	for ev := range s.statusCh {
		s.handleEvent(ev)
	}

	if s.csvFile != nil {
		s.csvWriter.Flush()
		s.csvFile.Close()
	}

	return nil
}

// Submit enqueues a process and emits a StatusEnqueue event.
func (s *Scheduler) Submit(p Process) error {
	s.mu.Lock()

	if err := s.queue.Push(p); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("submit %q: %w", p.Label, err)
	}

	eventData := StatusEvent{
		Time:      time.Now(),
		Kind:      StatusEnqueue,
		Label:     p.Label,
		Niceness:  p.Niceness,
		Remaining: p.Remaining,
		Mask:      p.Mask,
	}
	s.mu.Unlock() // NOTE: Unlock before sending to avoid deadlock if the channel is full
	s.statusCh <- eventData
	return nil
}

// Renice changes a queued process's niceness on the fly. It requeues
// the process so future dispatch reflects the new weight, and emits an
// event so logs show the change.
func (s *Scheduler) Renice(cb Callback, procCtx any, niceness uint) error {
	s.mu.Lock()

	found, err := s.queue.Renice(cb, procCtx, niceness)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if !found {
		s.mu.Unlock()
		return fmt.Errorf("renice: no queued process with that identity")
	}

	eventData := StatusEvent{
		Time:     time.Now(),
		Kind:     StatusRenice,
		Niceness: niceness,
	}
	s.mu.Unlock()
	s.statusCh <- eventData
	return nil
}

// Snapshot returns an independent copy of the run queue for inspection.
func (s *Scheduler) Snapshot() *RunQueue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Copy()
}

// loop runs the main dispatch loop: one quantum of wall ticks, then one
// dispatch attempt per CPU.
func (s *Scheduler) loop(ctx context.Context) {
	defer func() {
		// stop the underlying clock to release its goroutine
		s.clock.Stop()
		close(s.statusCh)
	}()

	for {
		// 1) check shutdown
		if ctx.Err() != nil {
			return
		}

		// 2) let one quantum of wall time pass
		if !s.clock.WaitTicks(s.quantumTicks) {
			return
		}
		s.statusCh <- StatusEvent{
			Time: time.Now(),
			Kind: StatusTick,
		}

		// 3) give every CPU one shot at the queue
		for cpu := 0; cpu < s.cpuCount; cpu++ {
			if ctx.Err() != nil {
				return
			}
			s.dispatch(cpu)
		}
	}
}

// dispatch grants one quantum on the given CPU. The selection, the
// callback run, and the requeue all happen under the mutex so no other
// round can observe the queue mid-operation.
func (s *Scheduler) dispatch(cpu int) {
	mask := CPUMask(1) << uint(cpu)

	s.mu.Lock()
	p, ok := s.queue.PeekTop(mask)
	if !ok {
		s.mu.Unlock()
		s.statusCh <- StatusEvent{
			Time: time.Now(),
			Kind: StatusIdle,
			CPU:  cpu,
		}
		return
	}

	remaining := s.queue.RunTop(mask, uint64(s.quantumTicks))
	s.mu.Unlock()

	// If the process is preempted, it reported leftover work and was
	// requeued. If it finished, RunTop removed it and returned 0.
	kind := StatusPreempt
	if remaining == 0 {
		kind = StatusFinish
	}

	s.statusCh <- StatusEvent{
		Time:      time.Now(),
		Kind:      StatusDispatch,
		CPU:       cpu,
		Label:     p.Label,
		Niceness:  p.Niceness,
		Remaining: p.Remaining,
		Mask:      p.Mask,
	}
	s.statusCh <- StatusEvent{
		Time:      time.Now(),
		Kind:      kind,
		CPU:       cpu,
		Label:     p.Label,
		Niceness:  p.Niceness,
		Remaining: remaining,
		Mask:      p.Mask,
	}
}

func (s *Scheduler) handleEvent(ev StatusEvent) {
	// tick events periodically occur; skip them for the brevity of output.
	if ev.Kind == StatusTick {
		return
	}

	fields := logrus.Fields{
		"tick":      s.clock.Count(),
		"event":     ev.Kind.String(),
		"cpu":       ev.CPU,
		"label":     ev.Label,
		"niceness":  ev.Niceness,
		"remaining": ev.Remaining,
		"mask":      fmt.Sprintf("%#04x", uint16(ev.Mask)),
	}
	if ev.Kind == StatusIdle {
		s.log.WithFields(fields).Debug("scheduler event")
	} else {
		s.log.WithFields(fields).Info("scheduler event")
	}

	// CSV output
	if s.csvWriter != nil {
		rec := []string{
			ev.Time.Format(time.RFC3339Nano),
			strconv.FormatInt(s.clock.Count(), 10),
			ev.Kind.String(),
			strconv.Itoa(ev.CPU),
			ev.Label,
			strconv.FormatUint(uint64(ev.Niceness), 10),
			strconv.FormatUint(ev.Remaining, 10),
			strconv.FormatUint(uint64(ev.Mask), 10),
		}
		s.csvWriter.Write(rec)
		s.csvWriter.Flush()
	}
}
