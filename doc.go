// Package ansiblocks incrementally parses text interleaved with ANSI escape
// sequences into styled text blocks.
//
// A block is a run of plain text annotated with the rendition active when it
// was produced (bold, colors, underline, and so on) and, for OSC 8
// hyperlinks, the link target. Renderers, log viewers, and terminal-to-HTML
// converters consume the block stream; this package never renders anything
// itself beyond the bundled HTML helper.
//
// # Quick Start
//
// Create a session and write ANSI text to it:
//
//	session := ansiblocks.New()
//	session.Write("\x1b[1;31mHello\x1b[0m World", func(b ansiblocks.Block) {
//	    fmt.Printf("%q bold=%v\n", b.Value, b.Style.Bold)
//	})
//	session.Flush(nil)
//
// Input may arrive in arbitrary chunks: a sequence split across two Write
// calls is held until it can be classified, and the resulting block stream
// is identical to a single Write with the full input.
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Session]: the public facade driving the read-classify-dispatch loop
//   - [Block]: one emitted unit of text plus a snapshot of its [Style]
//   - [Style]: the persistent rendition state mutated by SGR sequences
//   - [Palette]: the immutable 16- and 256-entry indexed color tables
//
// # Recognized Sequences
//
// Only two sequence families are interpreted: SGR (ESC [ ... m) updates the
// style state, and OSC 8 hyperlinks produce blocks carrying a URL. Every
// other CSI sequence is consumed and ignored; an unrecognized escape is
// dropped as a single byte so parsing resynchronizes on the next byte.
//
// # Themes
//
// The 16 base colors and all 256 extended palette entries can be overridden
// at construction, programmatically or from a YAML file:
//
//	theme, err := ansiblocks.LoadTheme("theme.yaml")
//	if err != nil {
//	    return err
//	}
//	session := ansiblocks.New(ansiblocks.WithTheme(theme))
//
// # HTML
//
// [ToHTML] converts a complete input in one call; [HTMLRenderer] renders
// block by block for streaming use:
//
//	fmt.Println(ansiblocks.ToHTML("\x1b[32mok\x1b[0m"))
//	// <span style="color:rgb(0,187,0)">ok</span>
//
// # Middleware
//
// Middleware intercepts block delivery for custom behavior:
//
//	mw := &ansiblocks.Middleware{
//	    Block: func(b ansiblocks.Block, next func(ansiblocks.Block)) {
//	        if b.Value != "" {
//	            next(b) // Deliver non-empty blocks only
//	        }
//	    },
//	}
//	session := ansiblocks.New(ansiblocks.WithMiddleware(mw))
//
// # Concurrency
//
// Sessions are single-threaded: Write and Flush run to completion, callbacks
// are invoked synchronously, and nothing blocks. Use one session per
// concurrent stream.
package ansiblocks
