// Package frame is the host side of the animation loop: a display-refresh
// scheduler that runs registered per-frame callbacks, and an input event bus.
//
// Everything here is single-threaded. The host calls Advance and Emit from
// the goroutine that owns its window or terminal; callbacks and listeners run
// synchronously on that goroutine.
package frame

import "time"

// Handle identifies a registered per-frame callback.
type Handle uint64

// Callback runs once per frame with the host's frame timestamp.
type Callback func(now time.Time)

type entry struct {
	h    Handle
	cb   Callback
	live bool
}

// Scheduler runs registered callbacks once per Advance, in registration order.
type Scheduler struct {
	next    Handle
	entries []entry
	frame   uint64
	running bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Request registers cb to run on every frame until cancelled. A callback
// registered while a frame is running first runs on the following frame.
func (s *Scheduler) Request(cb Callback) Handle {
	s.next++
	s.entries = append(s.entries, entry{h: s.next, cb: cb, live: true})
	return s.next
}

// Cancel deregisters h. It reports whether h was registered. Cancelling a
// callback from inside a frame stops it from running later in that frame.
func (s *Scheduler) Cancel(h Handle) bool {
	for i := range s.entries {
		if s.entries[i].h == h && s.entries[i].live {
			s.entries[i].live = false
			s.entries[i].cb = nil
			if !s.running {
				s.compact()
			}
			return true
		}
	}
	return false
}

// Advance runs one frame.
func (s *Scheduler) Advance(now time.Time) {
	s.frame++
	s.running = true
	n := len(s.entries)
	for i := 0; i < n; i++ {
		if e := s.entries[i]; e.live {
			e.cb(now)
		}
	}
	s.running = false
	s.compact()
}

// Len returns the number of live callbacks.
func (s *Scheduler) Len() int {
	n := 0
	for _, e := range s.entries {
		if e.live {
			n++
		}
	}
	return n
}

// Frame returns how many frames have been advanced.
func (s *Scheduler) Frame() uint64 { return s.frame }

func (s *Scheduler) compact() {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.live {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(s.entries); i++ {
		s.entries[i] = entry{}
	}
	s.entries = kept
}
