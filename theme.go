package sani

import (
	"sort"
	"strings"
)

// Styles groups the semantic styles the renderer applies to inline spans.
// Text is the paragraph baseline; span styles layer on top of it, and
// nested spans layer over their parents, so strong inside emphasis renders
// with both attribute sets.
type Styles struct {
	Text          Style
	Emphasis      Style
	Strong        Style
	Strikethrough Style
}

// Theme provides named styles for rendering.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

// palette holds the 256-color indexes for one theme. Zero means the
// terminal's default foreground.
type palette struct {
	text     uint8
	emphasis uint8
	strong   uint8
	strike   uint8
}

func stylesFromPalette(p palette) Styles {
	return Styles{
		Text:          Style{Fg: p.text},
		Emphasis:      Style{Attrs: AttrItalic, Fg: p.emphasis},
		Strong:        Style{Attrs: AttrBold, Fg: p.strong},
		Strikethrough: Style{Attrs: AttrStrike, Fg: p.strike},
	}
}

var builtinThemes = map[string]Theme{
	"default":         theme{name: "default", styles: stylesFromPalette(palette{})},
	"gruvbox":         theme{name: "gruvbox", styles: stylesFromPalette(palette{text: 223, emphasis: 142, strong: 208, strike: 245})},
	"dracula":         theme{name: "dracula", styles: stylesFromPalette(palette{text: 253, emphasis: 212, strong: 141, strike: 61})},
	"nord":            theme{name: "nord", styles: stylesFromPalette(palette{text: 189, emphasis: 110, strong: 143, strike: 60})},
	"tokyo-night":     theme{name: "tokyo-night", styles: stylesFromPalette(palette{text: 146, emphasis: 117, strong: 141, strike: 102})},
	"solarized-dark":  theme{name: "solarized-dark", styles: stylesFromPalette(palette{text: 246, emphasis: 37, strong: 136, strike: 240})},
	"solarized-light": theme{name: "solarized-light", styles: stylesFromPalette(palette{text: 66, emphasis: 37, strong: 136, strike: 247})},
	"github-dark":     theme{name: "github-dark", styles: stylesFromPalette(palette{text: 188, emphasis: 215, strong: 75, strike: 243})},
	"github-light":    theme{name: "github-light", styles: stylesFromPalette(palette{text: 235, emphasis: 160, strong: 26, strike: 102})},
	"matrix":          theme{name: "matrix", styles: stylesFromPalette(palette{text: 34, emphasis: 120, strong: 46, strike: 28})},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}
