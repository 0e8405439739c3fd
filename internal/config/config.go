package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "Particle Field"
	TPS          = 60

	// Globe placement, bottom right of the window
	GlobeSize   = 300
	GlobeMargin = 24

	BackgroundCount = 60

	// Terminal cells are scaled to this many pixels each
	CellWidth  = 8
	CellHeight = 16
	TermTick   = 16 // milliseconds
)

// Environment variable names.
const (
	EnvTheme      = "PARTICLE_THEME"
	EnvCount      = "PARTICLE_COUNT"
	EnvActive     = "PARTICLE_ACTIVE"
	EnvBurst      = "PARTICLE_BURST"
	EnvFeatures   = "PARTICLE_FEATURES"
	EnvBoundary   = "PARTICLE_BOUNDARY"
	EnvWidth      = "PARTICLE_WIDTH"
	EnvHeight     = "PARTICLE_HEIGHT"
	EnvGlobe      = "PARTICLE_GLOBE"
	EnvBackground = "PARTICLE_BACKGROUND"
	EnvTerminal   = "PARTICLE_TERMINAL"
	EnvDebug      = "PARTICLE_DEBUG"
	EnvSeed       = "PARTICLE_SEED"
)

// Settings is the process-level configuration assembled from the
// environment and command-line flags.
type Settings struct {
	Theme      string
	Count      int
	Active     bool
	Burst      bool
	Features   bool
	Boundary   string
	Width      int
	Height     int
	Globe      bool
	Background bool
	Terminal   bool
	Debug      bool
	Seed       int64
}

func Defaults() Settings {
	return Settings{
		Theme:      "landing",
		Count:      -1, // negative keeps the preset's count
		Active:     true,
		Burst:      true,
		Features:   true,
		Width:      WindowWidth,
		Height:     WindowHeight,
		Globe:      true,
		Background: true,
	}
}

// Load reads the given .env files (".env" when none are named) into the
// process environment. Files that do not exist are skipped.
func Load(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
		log.Printf("loaded environment from %s", f)
	}
	return nil
}

// GetEnvVariable returns the value of v, or an error when it is unset or empty.
func GetEnvVariable(v string) (string, error) {
	if v == "" {
		return "", fmt.Errorf("input param empty")
	}
	b := strings.TrimSpace(os.Getenv(v))
	if b == "" {
		return "", fmt.Errorf("failed to get variable for %s", v)
	}
	return b, nil
}

// FromEnv overlays PARTICLE_* variables onto base. Unset variables keep the
// base value; malformed ones are reported.
func FromEnv(base Settings) (Settings, error) {
	s := base
	var errs []error

	str := func(name string, dst *string) {
		if v, err := GetEnvVariable(name); err == nil {
			*dst = strings.ToLower(v)
		}
	}
	integer := func(name string, dst *int) {
		v, err := GetEnvVariable(name)
		if err != nil {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			return
		}
		*dst = n
	}
	boolean := func(name string, dst *bool) {
		v, err := GetEnvVariable(name)
		if err != nil {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			return
		}
		*dst = b
	}

	str(EnvTheme, &s.Theme)
	str(EnvBoundary, &s.Boundary)
	integer(EnvCount, &s.Count)
	integer(EnvWidth, &s.Width)
	integer(EnvHeight, &s.Height)
	boolean(EnvActive, &s.Active)
	boolean(EnvBurst, &s.Burst)
	boolean(EnvFeatures, &s.Features)
	boolean(EnvGlobe, &s.Globe)
	boolean(EnvBackground, &s.Background)
	boolean(EnvTerminal, &s.Terminal)
	boolean(EnvDebug, &s.Debug)

	if v, err := GetEnvVariable(EnvSeed); err == nil {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSeed, err))
		} else {
			s.Seed = n
		}
	}

	if err := errors.Join(errs...); err != nil {
		return base, fmt.Errorf("config: %w", err)
	}
	return s, nil
}
