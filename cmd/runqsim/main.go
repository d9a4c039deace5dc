package main

import (
	"context"
	"fmt"
	"time"

	"runq/internal/job"
	"runq/internal/sched"
)

func main() {
	// Read the configuration
	cfg := sched.Load("config.yml")
	fmt.Printf("Loaded config: %+v\n", cfg)

	s := sched.New(cfg)
	if cfg.CSVLog != "" {
		if err := s.EnableCSVLogging(cfg.CSVLog); err != nil {
			fmt.Println("csv logging disabled:", err)
		}
	}

	// A mixed workload: an urgent pinned job, a wide batch job, and a
	// job that underestimates its own size.
	workload := []struct {
		label    string
		callback sched.Callback
		total    uint64
		niceness uint
		mask     sched.CPUMask
	}{
		{"compact", job.Step, 40, 10, 0b01},
		{"batch", job.Step, 200, 30, 0b11},
		{"sloppy", job.Inflate(50), 60, 20, 0b10},
	}

	for _, w := range workload {
		p, err := sched.NewProcess(w.callback, job.NewUnit(w.total), w.niceness, w.total, w.mask)
		if err != nil {
			fmt.Println("bad process:", err)
			continue
		}
		p.Label = w.label
		if err := s.Submit(p); err != nil {
			fmt.Println(err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	s.Run(ctx)

	for _, p := range s.Snapshot().Processes() {
		fmt.Printf("still queued: %s (remaining %d)\n", p.Label, p.Remaining)
	}
}
