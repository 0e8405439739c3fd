// Package screen hosts renderers in an ebiten window. Every renderer draws
// on its own Layer; layers are composited with a lightening blend so
// overlapping glows add up.
package screen

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/olivierh59500/particle-field/internal/frame"
)

var background = color.NRGBA{0x0a, 0x0a, 0x0f, 0xff}

// Game implements ebiten.Game over a frame.Host.
type Game struct {
	host   *frame.Host
	layers []*Layer

	width, height int // last size reported by Layout
	applied       [2]int

	cursorX, cursorY int
	cursorSeen       bool

	Debug   bool
	Overlay func() string // extra debug text
}

func NewGame(host *frame.Host, w, h int) *Game {
	return &Game{host: host, width: w, height: h, applied: [2]int{w, h}}
}

// AddLayer registers l for compositing, in draw order.
func (g *Game) AddLayer(l *Layer) {
	if l.Place != nil {
		l.X, l.Y = l.Place(g.width, g.height)
	}
	g.layers = append(g.layers, l)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.Debug = !g.Debug
	}

	if g.applied != [2]int{g.width, g.height} {
		g.applyResize()
	}
	g.handleInput()
	g.host.Frames.Advance(time.Now())
	return nil
}

func (g *Game) applyResize() {
	g.applied = [2]int{g.width, g.height}
	for _, l := range g.layers {
		if l.Place != nil {
			l.X, l.Y = l.Place(g.width, g.height)
			continue
		}
		l.Resize(g.width, g.height)
	}
	log.Printf("window resized to %dx%d", g.width, g.height)
	g.host.Events.Emit(frame.Event{Kind: frame.Resize, Width: g.width, Height: g.height})
}

func (g *Game) handleInput() {
	mx, my := ebiten.CursorPosition()
	if !g.cursorSeen || mx != g.cursorX || my != g.cursorY {
		g.cursorX, g.cursorY, g.cursorSeen = mx, my, true
		g.host.Events.Emit(frame.Event{Kind: frame.PointerMove, X: float64(mx), Y: float64(my)})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.host.Events.Emit(frame.Event{Kind: frame.PointerDown, X: float64(mx), Y: float64(my)})
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		g.host.Events.Emit(frame.Event{Kind: frame.PointerDown, X: float64(x), Y: float64(y)})
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	for _, l := range g.layers {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(l.X, l.Y)
		op.Blend = ebiten.BlendLighter
		screen.DrawImage(l.img, op)
	}

	if g.Debug {
		msg := fmt.Sprintf("TPS: %0.1f  FPS: %0.1f", ebiten.ActualTPS(), ebiten.ActualFPS())
		if g.Overlay != nil {
			msg += "\n" + g.Overlay()
		}
		ebitenutil.DebugPrint(screen, msg)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
