package ansiblocks

import (
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func collect(blocks *[]Block) func(Block) {
	return func(b Block) {
		*blocks = append(*blocks, b)
	}
}

// sameRendition reports whether two styles render identically.
func sameRendition(a, b Style) bool {
	if (a.Color == nil) != (b.Color == nil) || (a.Background == nil) != (b.Background == nil) {
		return false
	}
	if a.Color != nil && *a.Color != *b.Color {
		return false
	}
	if a.Background != nil && *a.Background != *b.Background {
		return false
	}
	a.Color, a.Background = nil, nil
	b.Color, b.Background = nil, nil
	return a == b
}

// mergeRuns joins adjacent blocks with the same rendition and URL, so block
// sequences can be compared independently of where text runs were split.
func mergeRuns(blocks []Block) []Block {
	var out []Block
	for _, b := range blocks {
		if n := len(out); n > 0 && out[n-1].URL == b.URL && sameRendition(out[n-1].Style, b.Style) {
			out[n-1].Value += b.Value
			continue
		}
		out = append(out, b)
	}
	return out
}

func TestSessionPlainText(t *testing.T) {
	var blocks []Block
	s := New()
	s.Write("no escapes here", collect(&blocks))

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Value != "no escapes here" {
		t.Errorf("expected input echoed, got %q", blocks[0].Value)
	}
	if blocks[0].Style != (Style{}) {
		t.Errorf("expected default style, got %+v", blocks[0].Style)
	}
}

func TestSessionStyledScenario(t *testing.T) {
	var blocks []Block
	s := New()
	s.Write("\x1b[1;31mHello\x1b[0m World", collect(&blocks))

	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}

	hello := blocks[0]
	if hello.Value != "Hello" {
		t.Errorf("expected 'Hello', got %q", hello.Value)
	}
	if !hello.Style.Bold {
		t.Error("expected bold")
	}
	if hello.Style.Color == nil || *hello.Style.Color != defaultBaseColors[1] {
		t.Errorf("expected red fg, got %v", hello.Style.Color)
	}

	world := blocks[1]
	if world.Value != " World" {
		t.Errorf("expected ' World', got %q", world.Value)
	}
	if world.Style != (Style{}) {
		t.Errorf("expected default style, got %+v", world.Style)
	}
}

func TestSessionChunkBoundaryIndependence(t *testing.T) {
	input := "plain \x1b[1;32mgreen\x1b[0m \x1b[2K" +
		"\x1b]8;;https://example.com\x1b\\link\x1b]8;;\x1b\\ tail\x1bZend"

	var whole []Block
	s := New()
	s.Write(input, collect(&whole))
	s.Flush(collect(&whole))
	want := mergeRuns(whole)

	for i := 0; i <= len(input); i++ {
		var split []Block
		s := New()
		s.Write(input[:i], collect(&split))
		s.Write(input[i:], collect(&split))
		s.Flush(collect(&split))

		if diff := cmp.Diff(want, mergeRuns(split)); diff != "" {
			t.Fatalf("split at %d produced different blocks (-want +got):\n%s", i, diff)
		}
	}
}

func TestSessionHyperlinkRoundTrip(t *testing.T) {
	var blocks []Block
	s := New()
	s.Write("\x1b]8;;https://example.com\x1b\\link text\x1b]8;;\x1b\\", collect(&blocks))

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Value != "link text" {
		t.Errorf("expected 'link text', got %q", blocks[0].Value)
	}
	if blocks[0].URL != "https://example.com" {
		t.Errorf("expected url, got %q", blocks[0].URL)
	}
}

func TestSessionResyncKeepsFollowingText(t *testing.T) {
	var blocks []Block
	s := New()
	s.Write("before\x1bZafter", collect(&blocks))

	got := mergeRuns(blocks)
	if len(got) != 1 || got[0].Value != "beforeZafter" {
		t.Fatalf("expected text intact around the dropped escape, got %+v", got)
	}
}

func TestSessionStyleSpansWrites(t *testing.T) {
	var blocks []Block
	s := New()
	s.Write("\x1b[4m", collect(&blocks))
	s.Write("underlined", collect(&blocks))

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if !blocks[0].Style.Underline {
		t.Error("style set in an earlier write must apply to later text")
	}
}

func TestSessionStyleSurvivesUninterpretedSequences(t *testing.T) {
	for _, input := range []string{
		"\x1b[1mA\x1b[!mB",
		"\x1b[1mA\x1b[99999999999999999999mB",
	} {
		var blocks []Block
		s := New()
		s.Write(input, collect(&blocks))

		if len(blocks) != 2 {
			t.Fatalf("input %q: expected 2 blocks, got %d", input, len(blocks))
		}
		if !blocks[1].Style.Bold {
			t.Errorf("input %q: bold must survive the sequence between A and B", input)
		}
	}
}

func TestSessionBlockStyleIsSnapshot(t *testing.T) {
	var blocks []Block
	s := New()
	s.Write("\x1b[31mred", collect(&blocks))
	s.Write("\x1b[0mplain", collect(&blocks))

	if blocks[0].Style.Color == nil {
		t.Fatal("first block must keep the color active at emission time")
	}
}

func TestSessionFlushEmitsTrailing(t *testing.T) {
	var blocks []Block
	s := New()
	s.Write("text\x1b[1m\x1b[3", collect(&blocks))

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block before flush, got %d", len(blocks))
	}

	s.Flush(collect(&blocks))
	if len(blocks) != 2 {
		t.Fatalf("expected trailing block on flush, got %d blocks", len(blocks))
	}
	if blocks[1].Value != "\x1b[3" {
		t.Errorf("expected held bytes emitted verbatim, got %q", blocks[1].Value)
	}
	if !blocks[1].Style.Bold {
		t.Error("trailing block must carry the style current at flush time")
	}

	if s.Style() != (Style{}) {
		t.Error("flush must reset the style")
	}
	if s.Pending() != 0 {
		t.Error("flush must empty the buffer")
	}
}

func TestSessionFlushIdempotent(t *testing.T) {
	s := New()

	for i := 0; i < 2; i++ {
		s.Flush(func(b Block) {
			t.Errorf("flush of an empty buffer must emit nothing, got %+v", b)
		})
	}
	if s.Style() != (Style{}) {
		t.Error("expected default style after flush")
	}
}

func TestSessionReusableAcrossStreams(t *testing.T) {
	s := New()
	s.Write("\x1b[1mfirst stream", nil)
	s.Flush(nil)

	var blocks []Block
	s.Write("second stream", collect(&blocks))
	if len(blocks) != 1 || blocks[0].Style != (Style{}) {
		t.Fatalf("expected a clean second stream, got %+v", blocks)
	}
}

func TestSessionThemeOverride(t *testing.T) {
	var blocks []Block
	s := New(WithTheme(Theme{
		Colors: map[string]RGB{"red": {1, 2, 3}},
	}))
	s.Write("\x1b[31mx", collect(&blocks))

	if blocks[0].Style.Color == nil || *blocks[0].Style.Color != (RGB{1, 2, 3}) {
		t.Errorf("expected themed red, got %v", blocks[0].Style.Color)
	}
}

func TestSessionMaxPendingOption(t *testing.T) {
	var blocks []Block
	s := New(WithMaxPending(8))
	s.Write("\x1b]8;;https://example.com/unterminated", collect(&blocks))

	got := mergeRuns(blocks)
	if len(got) != 1 || got[0].Value != "]8;;https://example.com/unterminated" {
		t.Fatalf("expected forced resync past the bound, got %+v", got)
	}
}

func TestSessionMiddleware(t *testing.T) {
	var blocks []Block
	s := New(WithMiddleware(&Middleware{
		Block: func(b Block, next func(Block)) {
			if b.Value == "drop" {
				return
			}
			next(b)
		},
	}))

	s.Write("keep\x1b[1m", collect(&blocks))
	s.Write("drop", collect(&blocks))

	if len(blocks) != 1 || blocks[0].Value != "keep" {
		t.Fatalf("expected middleware to filter delivery, got %+v", blocks)
	}
}

func TestStreamWriter(t *testing.T) {
	var blocks []Block
	w := NewStreamWriter(New(), BlockFunc(collect(&blocks)))

	if _, err := io.Copy(w, strings.NewReader("\x1b[1mhi\x1b[3")); err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	got := mergeRuns(blocks)
	if len(got) != 1 || got[0].Value != "hi\x1b[3" {
		t.Fatalf("expected streamed blocks plus flushed trailer, got %+v", got)
	}
	if !got[0].Style.Bold {
		t.Error("expected bold")
	}
}
