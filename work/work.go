// Package work partitions job items across a worker pool and records
// per-item timings.
package work

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// Deal partitions items across n workers card-deal style: item i goes
// to worker i mod n. The item count must divide evenly so every
// worker carries the same load.
func Deal[T any](items []T, n int) ([][]T, error) {
	if n < 1 {
		return nil, fmt.Errorf("worker count must be positive, got %d", n)
	}
	if len(items)%n != 0 {
		return nil, fmt.Errorf("%d items do not divide evenly across %d workers", len(items), n)
	}

	hands := make([][]T, n)
	for i, item := range items {
		w := i % n
		hands[w] = append(hands[w], item)
	}
	return hands, nil
}

// Profile accumulates named task durations across goroutines.
type Profile struct {
	mu    sync.Mutex
	start time.Time
	tasks map[string]time.Duration
}

// NewProfile starts a profile clock.
func NewProfile() *Profile {
	return &Profile{
		start: time.Now(),
		tasks: map[string]time.Duration{},
	}
}

// Track returns a func that records the elapsed time since the call
// under name, for use with defer.
func (p *Profile) Track(name string) func() {
	t0 := time.Now()
	return func() {
		d := time.Since(t0)
		p.mu.Lock()
		p.tasks[name] += d
		p.mu.Unlock()
	}
}

// Add records a duration under name.
func (p *Profile) Add(name string, d time.Duration) {
	p.mu.Lock()
	p.tasks[name] += d
	p.mu.Unlock()
}

// Total returns the wall time since the profile started.
func (p *Profile) Total() time.Duration {
	return time.Since(p.start)
}

// Summary writes the recorded timings, longest first, with the total
// wall time at the end.
func (p *Profile) Summary(w io.Writer) {
	p.mu.Lock()
	type entry struct {
		name string
		d    time.Duration
	}
	entries := make([]entry, 0, len(p.tasks))
	for name, d := range p.tasks {
		entries = append(entries, entry{name, d})
	}
	p.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].d != entries[j].d {
			return entries[i].d > entries[j].d
		}
		return entries[i].name < entries[j].name
	})

	for _, e := range entries {
		fmt.Fprintf(w, "%-40s %12s\n", e.name, e.d.Round(time.Millisecond))
	}
	fmt.Fprintf(w, "%-40s %12s\n", "total wall time", p.Total().Round(time.Millisecond))
}
