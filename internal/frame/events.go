package frame

// Kind is the type of an input event.
type Kind uint8

const (
	PointerMove Kind = iota
	PointerDown
	Resize
)

func (k Kind) String() string {
	switch k {
	case PointerMove:
		return "pointer-move"
	case PointerDown:
		return "pointer-down"
	case Resize:
		return "resize"
	default:
		return "unknown"
	}
}

// Event is an input sample. X and Y are set for pointer events, Width and
// Height for resize events.
type Event struct {
	Kind          Kind
	X, Y          float64
	Width, Height int
}

// Listener identifies a registered event handler.
type Listener uint64

type sub struct {
	id   Listener
	kind Kind
	fn   func(Event)
	live bool
}

// Bus dispatches events synchronously to listeners of the matching kind.
type Bus struct {
	next        Listener
	subs        []sub
	dispatching int
}

func NewBus() *Bus {
	return &Bus{}
}

// Listen registers fn for events of kind k.
func (b *Bus) Listen(k Kind, fn func(Event)) Listener {
	b.next++
	b.subs = append(b.subs, sub{id: b.next, kind: k, fn: fn, live: true})
	return b.next
}

// Remove deregisters l and reports whether it was registered.
func (b *Bus) Remove(l Listener) bool {
	for i := range b.subs {
		if b.subs[i].id == l && b.subs[i].live {
			b.subs[i].live = false
			b.subs[i].fn = nil
			if b.dispatching == 0 {
				b.compact()
			}
			return true
		}
	}
	return false
}

// Emit delivers ev to every live listener registered for ev.Kind. Listeners
// added during dispatch do not see the event being dispatched.
func (b *Bus) Emit(ev Event) {
	b.dispatching++
	n := len(b.subs)
	for i := 0; i < n; i++ {
		if s := b.subs[i]; s.live && s.kind == ev.Kind {
			s.fn(ev)
		}
	}
	b.dispatching--
	if b.dispatching == 0 {
		b.compact()
	}
}

// Len returns the number of live listeners.
func (b *Bus) Len() int {
	n := 0
	for _, s := range b.subs {
		if s.live {
			n++
		}
	}
	return n
}

func (b *Bus) compact() {
	kept := b.subs[:0]
	for _, s := range b.subs {
		if s.live {
			kept = append(kept, s)
		}
	}
	for i := len(kept); i < len(b.subs); i++ {
		b.subs[i] = sub{}
	}
	b.subs = kept
}
