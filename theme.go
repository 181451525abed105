package ansiblocks

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// colorNames are the canonical names of the 16 base colors, in palette order.
var colorNames = [16]string{
	"black", "red", "green", "yellow",
	"blue", "magenta", "cyan", "white",
	"bright-black", "bright-red", "bright-green", "bright-yellow",
	"bright-blue", "bright-magenta", "bright-cyan", "bright-white",
}

// Theme overrides palette entries at construction time. Colors maps the 16
// canonical base-color names; Palette maps 256-color-table indexes. Omitted
// entries fall back to the documented defaults.
type Theme struct {
	Colors  map[string]RGB
	Palette map[int]RGB
}

// themeFile is the on-disk YAML shape. Each color is either a "#rrggbb" hex
// string or a [r, g, b] triple with channels clamped to 0-255.
type themeFile struct {
	Colors  map[string]themeColor `yaml:"colors"`
	Palette map[int]themeColor    `yaml:"palette"`
}

type themeColor struct {
	rgb RGB
}

var _ yaml.BytesUnmarshaler = (*themeColor)(nil)

func (c *themeColor) UnmarshalYAML(b []byte) error {
	var hex string
	if err := yaml.Unmarshal(b, &hex); err == nil {
		parsed, err := colorful.Hex(hex)
		if err != nil {
			return fmt.Errorf("invalid hex color %q: %w", hex, err)
		}
		c.rgb = RGB{
			R: uint8(parsed.R*255 + 0.5),
			G: uint8(parsed.G*255 + 0.5),
			B: uint8(parsed.B*255 + 0.5),
		}
		return nil
	}

	var triple []int
	if err := yaml.Unmarshal(b, &triple); err != nil {
		return fmt.Errorf("color must be a \"#rrggbb\" string or a [r, g, b] triple")
	}
	if len(triple) != 3 {
		return fmt.Errorf("color triple must have 3 channels, got %d", len(triple))
	}
	c.rgb = RGB{clampChannel(triple[0]), clampChannel(triple[1]), clampChannel(triple[2])}
	return nil
}

// ParseTheme decodes and validates a YAML theme document.
func ParseTheme(data []byte) (Theme, error) {
	var file themeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Theme{}, fmt.Errorf("parse theme: %w", err)
	}

	theme := Theme{}

	if len(file.Colors) > 0 {
		theme.Colors = make(map[string]RGB, len(file.Colors))
		for name, c := range file.Colors {
			if !isColorName(name) {
				return Theme{}, fmt.Errorf("unknown color name %q", name)
			}
			theme.Colors[name] = c.rgb
		}
	}

	if len(file.Palette) > 0 {
		theme.Palette = make(map[int]RGB, len(file.Palette))
		for idx, c := range file.Palette {
			if idx < 0 || idx > 255 {
				return Theme{}, fmt.Errorf("palette index %d out of range 0-255", idx)
			}
			theme.Palette[idx] = c.rgb
		}
	}

	return theme, nil
}

// LoadTheme reads and parses a YAML theme file.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("load theme: %w", err)
	}
	return ParseTheme(data)
}

func isColorName(name string) bool {
	for _, n := range colorNames {
		if n == name {
			return true
		}
	}
	return false
}
