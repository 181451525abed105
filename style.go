package ansiblocks

import (
	"strconv"
	"strings"
)

// Style is the persistent rendition state built up by SGR sequences. A nil
// Color or Background means the default (unset) color.
type Style struct {
	Bold          bool `json:"bold"`
	Dim           bool `json:"dim"`
	Italic        bool `json:"italic"`
	Underline     bool `json:"underline"`
	Blink         bool `json:"blink"`
	Inverse       bool `json:"inverse"`
	Hidden        bool `json:"hidden"`
	Strikethrough bool `json:"strikethrough"`
	Overline      bool `json:"overline"`

	Color      *RGB `json:"color,omitempty"`
	Background *RGB `json:"background,omitempty"`
}

// Clone returns a value copy that shares nothing with the receiver.
func (s Style) Clone() Style {
	c := s
	if s.Color != nil {
		v := *s.Color
		c.Color = &v
	}
	if s.Background != nil {
		v := *s.Background
		c.Background = &v
	}
	return c
}

// applySGR updates the style in place from a raw semicolon-separated SGR
// parameter block. Unrecognized or malformed codes leave the affected fields
// untouched; the walk never fails.
func (s *Style) applySGR(params string, palette *Palette) {
	parts := strings.Split(params, ";")
	codes := make([]int, 0, len(parts))
	for _, part := range parts {
		// Empty segments decode as 0 (reset); segments that do not parse as
		// an integer (overflow) are dropped like any unrecognized code.
		if part == "" {
			codes = append(codes, 0)
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		codes = append(codes, n)
	}

	// The cursor advances manually: 38 and 48 consume following parameters.
	for i := 0; i < len(codes); i++ {
		switch n := codes[i]; {
		case n == 0:
			*s = Style{}
		case n == 1:
			s.Bold = true
		case n == 2:
			s.Dim = true
		case n == 3:
			s.Italic = true
		case n == 4:
			s.Underline = true
		case n == 5:
			s.Blink = true
		case n == 7:
			s.Inverse = true
		case n == 8:
			s.Hidden = true
		case n == 9:
			s.Strikethrough = true
		case n == 21:
			s.Bold = false
		case n == 22:
			s.Bold = false
			s.Dim = false
		case n == 23:
			s.Italic = false
		case n == 24:
			s.Underline = false
		case n == 25:
			s.Blink = false
		case n == 27:
			s.Inverse = false
		case n == 28:
			s.Hidden = false
		case n == 29:
			s.Strikethrough = false
		case n >= 30 && n <= 37:
			s.Color = rgbPtr(palette.Base(n - 30))
		case n == 38:
			i = s.applyExtendedColor(codes, i, true, palette)
		case n == 39:
			s.Color = nil
		case n >= 40 && n <= 47:
			s.Background = rgbPtr(palette.Base(n - 40))
		case n == 48:
			i = s.applyExtendedColor(codes, i, false, palette)
		case n == 49:
			s.Background = nil
		case n == 53:
			s.Overline = true
		case n == 55:
			s.Overline = false
		case n >= 90 && n <= 97:
			s.Color = rgbPtr(palette.Base(n - 82))
		case n >= 100 && n <= 107:
			s.Background = rgbPtr(palette.Base(n - 92))
		}
	}
}

// applyExtendedColor handles SGR 38/48: mode 2 consumes three further
// parameters as direct RGB, mode 5 consumes one as a 256-color index. It
// returns the new cursor position; missing parameters make the code a no-op.
func (s *Style) applyExtendedColor(codes []int, i int, fg bool, palette *Palette) int {
	if i+1 >= len(codes) {
		return i
	}

	switch codes[i+1] {
	case 2:
		if i+4 < len(codes) {
			c := RGB{clampChannel(codes[i+2]), clampChannel(codes[i+3]), clampChannel(codes[i+4])}
			if fg {
				s.Color = &c
			} else {
				s.Background = &c
			}
			return i + 4
		}
	case 5:
		if i+2 < len(codes) {
			if idx := codes[i+2]; idx >= 0 && idx <= 255 {
				c := palette.Extended(idx)
				if fg {
					s.Color = &c
				} else {
					s.Background = &c
				}
			}
			return i + 2
		}
	}
	return i + 1
}

func rgbPtr(c RGB) *RGB {
	return &c
}

func clampChannel(n int) uint8 {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}
