package ansiblocks

// tokenKind classifies the result of one tokenizer step.
type tokenKind int

const (
	// tokEnd means the buffer is fully drained.
	tokEnd tokenKind = iota
	// tokIncomplete means the buffer starts with a sequence that may still
	// complete; the tokenizer holds the buffer and waits for more input.
	tokIncomplete
	// tokText is a run of plain characters.
	tokText
	// tokEscape is a single unrecognized ESC byte, consumed on its own so
	// parsing can resynchronize on the next byte.
	tokEscape
	// tokUnknown is a complete control sequence that was consumed but is not
	// interpreted (non-SGR CSI, private-mode sequences).
	tokUnknown
	// tokSGR is a Select Graphic Rendition sequence; text holds the raw
	// semicolon-separated parameter block.
	tokSGR
	// tokHyperlink is a complete OSC 8 hyperlink; url and text hold the
	// link target and the visible link text.
	tokHyperlink
)

// token is the ephemeral product of one classification step. It is consumed
// by the session loop immediately and never retained.
type token struct {
	kind tokenKind
	text string
	url  string
}
