package ansiblocks

import (
	"bytes"
	"regexp"
)

// esc is the escape marker that introduces every recognized sequence.
const esc = 0x1b

// DEFAULT_MAX_PENDING is the default bound on how many bytes may pile up
// behind an unterminated escape sequence before the tokenizer forces a
// resynchronization.
const DEFAULT_MAX_PENDING = 4096

// csiPattern matches a control sequence in one of two ways. The first
// alternative is a complete, legal sequence: private-mode prefix (group 1,
// one of ! < = > ?), parameter block (group 2), intermediate modifier plus
// command byte (group 3). The second alternative matches a sequence
// containing an illegal byte (group 4). A failed match means the sequence
// may still complete.
var csiPattern = regexp.MustCompile(
	`^(?:\x1b\[([\x21\x3c-\x3f]?)([\d;]*)([\x20-\x2f]?[\x40-\x7e]))` +
		`|(?:\x1b\[[\x20-\x7e]*([\x00-\x1f:]))`)

// oscTerminator locates a string terminator while scanning an OSC payload:
// ESC \ (group 1) or BEL (group 2). Group 3 matches a control byte that is
// not allowed inside the payload at all.
var oscTerminator = regexp.MustCompile(
	`(?:(\x1b\\)|(\x07))|([\x00-\x06\x08-\x1a\x1c-\x1f])`)

// oscLinkPattern is the full structural match for an OSC 8 hyperlink:
// introducer, params, URL (group 1), terminator, link text (group 2),
// closing introducer, terminator.
var oscLinkPattern = regexp.MustCompile(
	`^\x1b\]8;[\x20-\x3a\x3c-\x7e]*;([\x21-\x7e]{0,512})(?:\x1b\\|\x07)` +
		`([\x20-\x7e]+)\x1b\]8;;(?:\x1b\\|\x07)`)

// tokenizer owns the pending input buffer. Each call to next classifies and
// consumes one prefix of the buffer; the token plus the remaining buffer is a
// pure function of the buffer content.
type tokenizer struct {
	buf        []byte
	maxPending int
}

func newTokenizer(maxPending int) *tokenizer {
	return &tokenizer{maxPending: maxPending}
}

// append adds raw input to the end of the buffer.
func (t *tokenizer) append(text string) {
	t.buf = append(t.buf, text...)
}

// drain returns everything still buffered and empties the buffer.
func (t *tokenizer) drain() string {
	s := string(t.buf)
	t.buf = t.buf[:0]
	return s
}

// next produces exactly one token, removing the consumed prefix from the
// buffer. Incomplete and end results leave the buffer untouched, unless the
// pending bound is exceeded (see hold).
func (t *tokenizer) next() token {
	if len(t.buf) == 0 {
		return token{kind: tokEnd}
	}

	pos := bytes.IndexByte(t.buf, esc)
	if pos == -1 {
		tk := token{kind: tokText, text: string(t.buf)}
		t.buf = t.buf[:0]
		return tk
	}
	if pos > 0 {
		tk := token{kind: tokText, text: string(t.buf[:pos])}
		t.buf = t.buf[pos:]
		return tk
	}

	// ESC at the front. Almost every recognized sequence needs at least 3
	// bytes to disambiguate.
	if len(t.buf) < 3 {
		return t.hold(tokIncomplete)
	}

	c := t.buf[1]
	if c != '[' && c != ']' && c != '(' {
		return t.resync()
	}

	if c == '[' {
		return t.nextCSI()
	}
	if c == ']' {
		return t.nextHyperlink()
	}

	// ESC ( selects a charset; neither interpreted nor consumed here.
	return t.hold(tokEnd)
}

func (t *tokenizer) nextCSI() token {
	m := csiPattern.FindSubmatchIndex(t.buf)
	if m == nil {
		return t.hold(tokIncomplete)
	}
	if m[8] >= 0 {
		// Illegal byte inside the sequence; drop the ESC and resume on the
		// next byte rather than guessing how much to discard.
		return t.resync()
	}

	seq := t.buf[m[0]:m[1]]
	private := m[3] > m[2]
	command := t.buf[m[7]-1]
	params := string(t.buf[m[4]:m[5]])
	t.buf = t.buf[m[1]:]

	if private || command != 'm' {
		return token{kind: tokUnknown, text: string(seq)}
	}
	return token{kind: tokSGR, text: params}
}

func (t *tokenizer) nextHyperlink() token {
	if len(t.buf) < 4 {
		return t.hold(tokIncomplete)
	}
	if t.buf[2] != '8' || t.buf[3] != ';' {
		return t.resync()
	}

	// Two terminators must already be present before the structural match can
	// succeed: one bounds the URL, one bounds the trailing link text. Input
	// arriving in chunks may not contain them yet.
	off := 0
	for i := 0; i < 2; i++ {
		loc := oscTerminator.FindSubmatchIndex(t.buf[off:])
		if loc == nil {
			return t.hold(tokIncomplete)
		}
		if loc[6] >= 0 {
			return t.resync()
		}
		off += loc[1]
	}

	m := oscLinkPattern.FindSubmatchIndex(t.buf)
	if m == nil {
		return t.resync()
	}
	tk := token{
		kind: tokHyperlink,
		url:  string(t.buf[m[2]:m[3]]),
		text: string(t.buf[m[4]:m[5]]),
	}
	t.buf = t.buf[m[1]:]
	return tk
}

// hold reports a kind that keeps the buffer pending. When the pending bytes
// exceed the configured bound, the offending escape is dropped instead so the
// buffer cannot grow without limit on a sequence that never terminates.
func (t *tokenizer) hold(kind tokenKind) token {
	if t.maxPending > 0 && len(t.buf) > t.maxPending {
		return t.resync()
	}
	return token{kind: kind}
}

// resync consumes exactly the escape marker, leaving the rest of the buffer
// for the next classification step.
func (t *tokenizer) resync() token {
	tk := token{kind: tokEscape, text: string(t.buf[:1])}
	t.buf = t.buf[1:]
	return tk
}
