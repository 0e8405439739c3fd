package term

import (
	"context"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/particle-field/internal/frame"
)

// Glyphs from dim to bright.
var ramp = []rune{'.', '·', '•', '●', '█'}

// Runner drives a frame.Host from a tcell screen: a ticker advances the
// frame scheduler and terminal input becomes frame events.
type Runner struct {
	screen       tcell.Screen
	host         *frame.Host
	cellW, cellH int
	surfaces     []*Surface
	buttons      tcell.ButtonMask
	lastCol      int
	lastRow      int
	Tick         time.Duration
}

// NewRunner wraps an initialized screen.
func NewRunner(screen tcell.Screen, host *frame.Host, cellW, cellH int) *Runner {
	return &Runner{
		screen:  screen,
		host:    host,
		cellW:   max(cellW, 1),
		cellH:   max(cellH, 1),
		lastCol: -1,
		lastRow: -1,
		Tick:    16 * time.Millisecond,
	}
}

// NewSurface returns a full-screen surface composited by the runner.
func (r *Runner) NewSurface() *Surface {
	cols, rows := r.screen.Size()
	s := NewSurface(cols, rows, r.cellW, r.cellH)
	r.surfaces = append(r.surfaces, s)
	return s
}

// Run processes input and frames until ctx is cancelled or the user quits.
func (r *Runner) Run(ctx context.Context) error {
	r.screen.EnableMouse()
	r.screen.HideCursor()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil { // screen finalized
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(r.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !r.handle(ev) {
				return nil
			}
		case now := <-ticker.C:
			r.host.Frames.Advance(now)
			r.flush()
		}
	}
}

// handle translates one terminal event. It returns false on quit.
func (r *Runner) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		x := (float64(col) + 0.5) * float64(r.cellW)
		y := (float64(row) + 0.5) * float64(r.cellH)
		if col != r.lastCol || row != r.lastRow {
			r.lastCol, r.lastRow = col, row
			r.host.Events.Emit(frame.Event{Kind: frame.PointerMove, X: x, Y: y})
		}
		btn := ev.Buttons()
		if btn&tcell.Button1 != 0 && r.buttons&tcell.Button1 == 0 {
			r.host.Events.Emit(frame.Event{Kind: frame.PointerDown, X: x, Y: y})
		}
		r.buttons = btn

	case *tcell.EventResize:
		r.screen.Sync()
		cols, rows := ev.Size()
		for _, s := range r.surfaces {
			s.Resize(cols, rows)
		}
		log.Printf("terminal resized to %dx%d cells", cols, rows)
		r.host.Events.Emit(frame.Event{Kind: frame.Resize, Width: cols * r.cellW, Height: rows * r.cellH})
	}
	return true
}

// flush composites every surface onto the screen.
func (r *Runner) flush() {
	r.screen.Clear()
	cols, rows := r.screen.Size()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			var sum light
			for _, s := range r.surfaces {
				if col < s.cols && row < s.rows {
					l := s.cells[row*s.cols+col]
					sum.r, sum.g, sum.b = sum.r+l.r, sum.g+l.g, sum.b+l.b
				}
			}
			if g, st, ok := cellStyle(sum); ok {
				r.screen.SetContent(col, row, g, nil, st)
			}
		}
	}
	for _, s := range r.surfaces {
		for _, lb := range s.labels {
			for i, ch := range []rune(lb.text) {
				r.screen.SetContent(lb.col+i, lb.row, ch, nil, tcell.StyleDefault.Foreground(tcell.ColorWhite))
			}
		}
	}
	r.screen.Show()
}

// cellStyle picks a glyph by brightness and a colour at full intensity, so
// dim light reads as a small dot rather than a dark block.
func cellStyle(l light) (rune, tcell.Style, bool) {
	peak := max(l.r, l.g, l.b)
	if peak < 8 {
		return 0, tcell.StyleDefault, false
	}
	idx := min(int(peak/255*float64(len(ramp))), len(ramp)-1)
	k := 255 / peak
	fg := tcell.NewRGBColor(int32(min(l.r*k, 255)), int32(min(l.g*k, 255)), int32(min(l.b*k, 255)))
	return ramp[idx], tcell.StyleDefault.Foreground(fg), true
}
