package field

import (
	"image/color"

	"github.com/olivierh59500/particle-field/internal/canvas"
)

// Theme selects a colour palette.
type Theme string

const (
	ThemeLanding   Theme = "landing"
	ThemeDashboard Theme = "dashboard"
	ThemeProfile   Theme = "profile"
	ThemeAuth      Theme = "auth"
	ThemeInterview Theme = "interview"

	// Background schemes, used by the ambient backdrop.
	ThemePurpleCyan Theme = "purple-cyan"
	ThemeBlueGreen  Theme = "blue-green"
	ThemeRedOrange  Theme = "red-orange"

	// ThemeNeon is the violet/cyan set of the stand-alone showcase field.
	ThemeNeon Theme = "neon"
)

var palettes = map[Theme][]color.NRGBA{
	ThemeLanding:   canvas.MustPalette("#7c3aed", "#06b6d4", "#8b5cf6", "#22d3ee", "#a855f7", "#0891b2", "#ec4899", "#f59e0b"),
	ThemeDashboard: canvas.MustPalette("#3b82f6", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6", "#06b6d4"),
	ThemeProfile:   canvas.MustPalette("#ec4899", "#f59e0b", "#10b981", "#3b82f6"),
	ThemeAuth:      canvas.MustPalette("#7c3aed", "#ec4899", "#06b6d4", "#f59e0b"),
	ThemeInterview: canvas.MustPalette("#10b981", "#3b82f6", "#8b5cf6", "#f59e0b"),

	ThemePurpleCyan: canvas.MustPalette("#7c3aed", "#06b6d4", "#8b5cf6", "#22d3ee"),
	ThemeBlueGreen:  canvas.MustPalette("#3b82f6", "#10b981", "#60a5fa", "#34d399"),
	ThemeRedOrange:  canvas.MustPalette("#ef4444", "#f97316", "#f87171", "#fb923c"),

	ThemeNeon: canvas.MustPalette("#7c3aed", "#06b6d4", "#8b5cf6", "#22d3ee", "#a855f7", "#0891b2", "#c084fc", "#67e8f9"),
}

// Palette returns the colours of theme, falling back to the landing palette
// for unknown themes. The returned slice is a copy.
func Palette(theme Theme) []color.NRGBA {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[ThemeLanding]
	}
	return append([]color.NRGBA(nil), p...)
}

// Themes lists every known theme.
func Themes() []Theme {
	return []Theme{
		ThemeLanding, ThemeDashboard, ThemeProfile, ThemeAuth, ThemeInterview,
		ThemePurpleCyan, ThemeBlueGreen, ThemeRedOrange, ThemeNeon,
	}
}
