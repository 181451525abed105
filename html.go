package ansiblocks

import (
	"fmt"
	"html"
	"net/url"
	"strings"
)

// HTMLRenderer converts blocks into HTML fragments with inline styles.
// Unstyled text renders as escaped text with no wrapper element.
type HTMLRenderer struct {
	// AllowedSchemes restricts hyperlink targets; blocks whose URL uses any
	// other scheme render as plain styled text. Defaults to http and https.
	AllowedSchemes []string
}

// NewHTMLRenderer creates a renderer with the default scheme allowlist.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{AllowedSchemes: []string{"http", "https"}}
}

// RenderBlock returns the HTML fragment for one block.
func (r *HTMLRenderer) RenderBlock(block Block) string {
	content := html.EscapeString(block.Value)

	if block.URL != "" && r.allowURL(block.URL) {
		content = `<a href="` + html.EscapeString(block.URL) + `">` + content + `</a>`
	}

	styles := inlineStyles(block.Style)
	if len(styles) == 0 {
		return content
	}
	return `<span style="` + strings.Join(styles, ";") + `">` + content + `</span>`
}

func (r *HTMLRenderer) allowURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	for _, scheme := range r.AllowedSchemes {
		if u.Scheme == scheme {
			return true
		}
	}
	return false
}

func inlineStyles(s Style) []string {
	var styles []string

	fg, bg := s.Color, s.Background
	if s.Inverse {
		fg, bg = bg, fg
	}

	if s.Bold {
		styles = append(styles, "font-weight:bold")
	}
	if s.Dim {
		styles = append(styles, "opacity:0.7")
	}
	if s.Italic {
		styles = append(styles, "font-style:italic")
	}
	if s.Hidden {
		styles = append(styles, "visibility:hidden")
	}

	var decorations []string
	if s.Underline {
		decorations = append(decorations, "underline")
	}
	if s.Strikethrough {
		decorations = append(decorations, "line-through")
	}
	if s.Overline {
		decorations = append(decorations, "overline")
	}
	if s.Blink {
		decorations = append(decorations, "blink")
	}
	if len(decorations) > 0 {
		styles = append(styles, "text-decoration:"+strings.Join(decorations, " "))
	}

	if fg != nil {
		styles = append(styles, fmt.Sprintf("color:rgb(%d,%d,%d)", fg.R, fg.G, fg.B))
	}
	if bg != nil {
		styles = append(styles, fmt.Sprintf("background-color:rgb(%d,%d,%d)", bg.R, bg.G, bg.B))
	}

	return styles
}

// ToHTML converts a complete input string to HTML in one call: a fresh
// session writes the input, flushes, and renders every block.
func ToHTML(input string, opts ...Option) string {
	var sb strings.Builder
	renderer := NewHTMLRenderer()
	session := New(opts...)

	emit := func(b Block) {
		sb.WriteString(renderer.RenderBlock(b))
	}
	session.Write(input, emit)
	session.Flush(emit)

	return sb.String()
}

// Strip returns the input with all recognized control sequences removed.
func Strip(input string) string {
	var sb strings.Builder
	session := New()

	emit := func(b Block) {
		sb.WriteString(b.Value)
	}
	session.Write(input, emit)
	session.Flush(emit)

	return sb.String()
}
