package frame

// Host bundles the scheduler and event bus a renderer mounts onto.
type Host struct {
	Frames *Scheduler
	Events *Bus
}

func NewHost() *Host {
	return &Host{Frames: NewScheduler(), Events: NewBus()}
}

// Teardown collects release functions and runs them once, newest first.
type Teardown struct {
	fns  []func()
	done bool
}

// Add queues fn. Adding after Run executes fn immediately so a late
// registration can never outlive its owner.
func (t *Teardown) Add(fn func()) {
	if t.done {
		fn()
		return
	}
	t.fns = append(t.fns, fn)
}

// Run releases everything queued. Subsequent calls are no-ops.
func (t *Teardown) Run() {
	if t.done {
		return
	}
	t.done = true
	for i := len(t.fns) - 1; i >= 0; i-- {
		t.fns[i]()
	}
	t.fns = nil
}

// Done reports whether Run has been called.
func (t *Teardown) Done() bool { return t.done }
