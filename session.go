package ansiblocks

import "io"

// Session converts a stream of text interleaved with ANSI escape sequences
// into styled blocks. It owns the pending input buffer and the current
// rendition state; a single session must not be used by more than one
// logical caller at a time. Separate streams need separate sessions, or a
// Flush between them.
type Session struct {
	tok     *tokenizer
	style   Style
	palette *Palette

	middleware *Middleware
}

// Option configures a Session during construction.
type Option func(*Session)

// WithTheme overrides palette entries. Omitted entries keep the documented
// defaults.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.palette = NewPalette(theme)
	}
}

// WithMaxPending bounds how many bytes may accumulate behind an unterminated
// escape sequence before the tokenizer drops the escape and resynchronizes.
// n <= 0 removes the bound.
func WithMaxPending(n int) Option {
	return func(s *Session) {
		s.tok.maxPending = n
	}
}

// WithMiddleware sets functions to intercept block delivery.
func WithMiddleware(mw *Middleware) Option {
	return func(s *Session) {
		if s.middleware == nil {
			s.middleware = &Middleware{}
		}
		s.middleware.Merge(mw)
	}
}

// New creates a session with default style state and the default palette.
func New(opts ...Option) *Session {
	s := &Session{
		tok: newTokenizer(DEFAULT_MAX_PENDING),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.palette == nil {
		s.palette = NewPalette(Theme{})
	}

	return s
}

// Style returns a copy of the current rendition state.
func (s *Session) Style() Style {
	return s.style.Clone()
}

// Pending returns the number of buffered bytes not yet classified.
func (s *Session) Pending() int {
	return len(s.tok.buf)
}

// Write appends text to the pending buffer and drains it as far as possible,
// invoking onBlock synchronously for each emitted block, in stream order.
// Parsing stops when the buffer is empty or ends in a sequence that needs
// more input; the held bytes are retried on the next Write.
func (s *Session) Write(text string, onBlock func(Block)) {
	s.tok.append(text)

	for {
		tk := s.tok.next()
		switch tk.kind {
		case tokEnd, tokIncomplete:
			return
		case tokText:
			s.emit(Block{Value: tk.text, Style: s.style.Clone()}, onBlock)
		case tokHyperlink:
			s.emit(Block{Value: tk.text, Style: s.style.Clone(), URL: tk.url}, onBlock)
		case tokSGR:
			s.style.applySGR(tk.text, s.palette)
		case tokEscape, tokUnknown:
			// Consumed but not rendered.
		}
	}
}

// Flush ends the logical stream: any bytes still held behind an escape
// sequence that never completed are emitted as one final plain-text block
// with the current style, then the style resets to defaults and the buffer
// empties. The session is immediately reusable for a new stream.
func (s *Session) Flush(onBlock func(Block)) {
	if rest := s.tok.drain(); rest != "" {
		s.emit(Block{Value: rest, Style: s.style.Clone()}, onBlock)
	}
	s.style = Style{}
}

func (s *Session) emit(block Block, onBlock func(Block)) {
	deliver := func(b Block) {
		if onBlock != nil {
			onBlock(b)
		}
	}

	if s.middleware != nil && s.middleware.Block != nil {
		s.middleware.Block(block, deliver)
		return
	}
	deliver(block)
}

// StreamWriter adapts a Session to io.Writer, delivering blocks to a fixed
// handler. Useful for wiring a session directly to command output.
type StreamWriter struct {
	session *Session
	handler BlockHandler
}

// NewStreamWriter pairs a session with a block handler. A nil handler
// discards blocks.
func NewStreamWriter(session *Session, handler BlockHandler) *StreamWriter {
	if handler == nil {
		handler = NoopBlocks{}
	}
	return &StreamWriter{session: session, handler: handler}
}

// Write feeds raw bytes to the session. It never fails; the parser is total.
func (w *StreamWriter) Write(p []byte) (int, error) {
	w.session.Write(string(p), w.handler.HandleBlock)
	return len(p), nil
}

// Close flushes the session.
func (w *StreamWriter) Close() error {
	w.session.Flush(w.handler.HandleBlock)
	return nil
}

var _ io.WriteCloser = (*StreamWriter)(nil)
