package ansiblocks

// RGB is a single palette or truecolor value. Channels are 0-255.
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// cubeSeeds are the per-channel values of the 6x6x6 color cube, indexed by
// the base-6 digits of the palette offset.
var cubeSeeds = [6]uint8{0, 95, 135, 175, 215, 255}

// defaultBaseColors is the standard 16-color table: black, red, green,
// yellow, blue, magenta, cyan, white, then their bright variants.
var defaultBaseColors = [16]RGB{
	{0, 0, 0},       // Black
	{187, 0, 0},     // Red
	{0, 187, 0},     // Green
	{187, 187, 0},   // Yellow
	{0, 0, 187},     // Blue
	{187, 0, 187},   // Magenta
	{0, 187, 187},   // Cyan
	{255, 255, 255}, // White

	{85, 85, 85},    // Bright Black
	{255, 85, 85},   // Bright Red
	{0, 255, 0},     // Bright Green
	{255, 255, 85},  // Bright Yellow
	{85, 85, 255},   // Bright Blue
	{255, 85, 255},  // Bright Magenta
	{85, 255, 255},  // Bright Cyan
	{255, 255, 255}, // Bright White
}

// Palette holds the 16-entry and 256-entry indexed color tables. Built once
// from a Theme and never mutated afterwards; safe to share by reference.
type Palette struct {
	base     [16]RGB
	extended [256]RGB
}

// NewPalette builds the color tables from the standard defaults plus the
// overrides carried by the theme. The 256-entry table starts with the 16
// base colors (overrides included), followed by a 6x6x6 color cube, followed
// by a 24-step grayscale ramp.
func NewPalette(theme Theme) *Palette {
	p := &Palette{base: defaultBaseColors}

	for i, name := range colorNames {
		if c, ok := theme.Colors[name]; ok {
			p.base[i] = c
		}
	}

	copy(p.extended[:16], p.base[:])

	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p.extended[i] = RGB{cubeSeeds[r], cubeSeeds[g], cubeSeeds[b]}
				i++
			}
		}
	}

	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		p.extended[232+j] = RGB{gray, gray, gray}
	}

	for idx, c := range theme.Palette {
		if idx >= 0 && idx < 256 {
			p.extended[idx] = c
		}
	}

	return p
}

// Base returns the base-table color at index 0-15.
func (p *Palette) Base(i int) RGB {
	return p.base[i&0xf]
}

// Extended returns the 256-color-table entry at index 0-255.
func (p *Palette) Extended(i int) RGB {
	return p.extended[i&0xff]
}
