package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/particle-field/internal/canvas"
	"github.com/olivierh59500/particle-field/internal/config"
	"github.com/olivierh59500/particle-field/internal/field"
	"github.com/olivierh59500/particle-field/internal/frame"
	"github.com/olivierh59500/particle-field/internal/globe"
	"github.com/olivierh59500/particle-field/internal/screen"
	"github.com/olivierh59500/particle-field/internal/term"
)

func main() {
	envFile := flag.String("env", ".env", "environment file to load")
	theme := flag.String("theme", "", "palette: "+themeList())
	count := flag.Int("count", -1, "initial ambient particle count")
	boundary := flag.String("boundary", "", "edge policy: wrap or bounce")
	terminal := flag.Bool("terminal", false, "render in the terminal instead of a window")
	showGlobe := flag.Bool("globe", true, "show the rotating globe")
	background := flag.Bool("background", true, "show the ambient background field")
	debug := flag.Bool("debug", false, "log to stderr and show the debug overlay")
	seed := flag.Int64("seed", 0, "random seed, 0 for time based")
	flag.Parse()

	if err := config.Load(*envFile); err != nil {
		log.Fatal(err)
	}
	settings, err := config.FromEnv(config.Defaults())
	if err != nil {
		log.Fatal(err)
	}

	// Flags set on the command line win over the environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "theme":
			settings.Theme = strings.ToLower(*theme)
		case "count":
			settings.Count = *count
		case "boundary":
			settings.Boundary = *boundary
		case "terminal":
			settings.Terminal = *terminal
		case "globe":
			settings.Globe = *showGlobe
		case "background":
			settings.Background = *background
		case "debug":
			settings.Debug = *debug
		case "seed":
			settings.Seed = *seed
		}
	})

	if !settings.Debug {
		log.SetOutput(io.Discard)
	}

	fieldCfg, err := pageConfig(settings)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}

	host := frame.NewHost()
	if settings.Terminal {
		err = runTerminal(host, settings, fieldCfg)
	} else {
		err = runWindow(host, settings, fieldCfg)
	}
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}

func themeList() string {
	names := make([]string, 0, len(field.Themes()))
	for _, t := range field.Themes() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

// pageConfig builds the foreground field configuration. The neon theme
// selects the bouncing showcase preset.
func pageConfig(s config.Settings) (field.Config, error) {
	var c field.Config
	if field.Theme(s.Theme) == field.ThemeNeon {
		c = field.ShowcaseConfig(s.Active, s.Burst, s.Features)
	} else {
		c = field.PageConfig(field.Theme(s.Theme), s.Active, s.Burst, s.Features)
	}
	if s.Count >= 0 {
		c.Count = s.Count
	}
	if s.Boundary != "" {
		b, err := field.ParseBoundary(s.Boundary)
		if err != nil {
			return c, err
		}
		c.Boundary = b
	}
	c.Seed = s.Seed
	// Size comes from the surface at mount time.
	c.Width, c.Height = 0, 0
	return c, nil
}

func backgroundConfig(s config.Settings) field.Config {
	c := field.BackgroundConfig(field.ThemePurpleCyan, config.BackgroundCount)
	if s.Seed != 0 {
		c.Seed = s.Seed + 1
	}
	c.Width, c.Height = 0, 0
	return c
}

// mountAll mounts every enabled renderer. Surfaces are requested lazily so
// a disabled layer is never allocated. A renderer that fails to mount is
// logged and skipped.
func mountAll(host *frame.Host, s config.Settings, page field.Config,
	fullSurface func() canvas.Surface,
	globeSurface func() (canvas.Surface, func() (float64, float64)),
) (fields []*field.Instance, orb *globe.Instance) {
	if s.Background {
		if in, err := field.Mount(host, fullSurface(), backgroundConfig(s)); err != nil {
			log.Printf("background field: %v", err)
		} else {
			fields = append(fields, in)
		}
	}
	if in, err := field.Mount(host, fullSurface(), page); err != nil {
		log.Printf("page field: %v", err)
	} else {
		fields = append(fields, in)
	}
	if s.Globe {
		surf, locate := globeSurface()
		gc := globe.DefaultConfig()
		gc.Width, gc.Height = 0, 0
		gc.OffsetX, gc.OffsetY = locate()
		gc.Locate = locate
		in, err := globe.Mount(host, surf, gc)
		if err != nil {
			log.Printf("globe: %v", err)
		} else {
			orb = in
		}
	}
	log.Printf("mounted %d fields, globe=%v", len(fields), orb != nil)
	return fields, orb
}

func stats(fields []*field.Instance) string {
	var b strings.Builder
	for i, in := range fields {
		st := in.Engine.Stats()
		fmt.Fprintf(&b, "field %d: %d particles (ambient %d, burst %d, feature %d, trail %d)\n",
			i, st.Total, st.Count(field.Ambient), st.Count(field.Burst),
			st.Count(field.Feature), st.Count(field.TrailFollower))
	}
	return b.String()
}

func runWindow(host *frame.Host, s config.Settings, page field.Config) error {
	w, h := s.Width, s.Height
	if w <= 0 || h <= 0 {
		w, h = config.WindowWidth, config.WindowHeight
	}
	game := screen.NewGame(host, w, h)
	game.Debug = s.Debug

	full := func() canvas.Surface {
		l := screen.NewLayer(w, h)
		game.AddLayer(l)
		return l
	}
	globeSurface := func() (canvas.Surface, func() (float64, float64)) {
		globeLayer := screen.NewLayer(config.GlobeSize, config.GlobeSize)
		globeLayer.Place = func(winW, winH int) (float64, float64) {
			return float64(winW - config.GlobeSize - config.GlobeMargin),
				float64(winH - config.GlobeSize - config.GlobeMargin)
		}
		game.AddLayer(globeLayer)
		return globeLayer, func() (float64, float64) { return globeLayer.X, globeLayer.Y }
	}

	fields, orb := mountAll(host, s, page, full, globeSurface)
	defer func() {
		for _, in := range fields {
			in.Unmount()
		}
		orb.Unmount()
	}()
	game.Overlay = func() string { return stats(fields) }

	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TPS)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func runTerminal(host *frame.Host, s config.Settings, page field.Config) error {
	scr, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := scr.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer scr.Fini()

	runner := term.NewRunner(scr, host, config.CellWidth, config.CellHeight)
	runner.Tick = config.TermTick * time.Millisecond

	full := func() canvas.Surface { return runner.NewSurface() }
	// The globe shares a full-screen surface in the terminal, centred.
	globeSurface := func() (canvas.Surface, func() (float64, float64)) {
		return runner.NewSurface(), func() (float64, float64) { return 0, 0 }
	}

	fields, orb := mountAll(host, s, page, full, globeSurface)
	defer func() {
		for _, in := range fields {
			in.Unmount()
		}
		orb.Unmount()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return runner.Run(ctx)
}
