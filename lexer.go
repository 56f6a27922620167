package sani

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer splits Markdown source into a finite ordered sequence of Tokens,
// produced lazily and consumed in a single pass with one-token lookahead.
// Reset rewinds it for another pass or a new input.
//
// The lexer never fails. Control bytes other than newline and tab are
// dropped so raw escape bytes in the input cannot forge style sequences;
// invalid UTF-8 bytes are skipped (Parse and Render reject such input before
// lexing).
type Lexer struct {
	src         string
	pos         int
	peeked      Token
	hasPeek     bool
	hardEOL     bool
	atLineStart bool
}

// NewLexer returns a Lexer over src.
func NewLexer(src string) *Lexer {
	l := &Lexer{}
	l.Reset(src)
	return l
}

// Reset rewinds the lexer to the start of src.
func (l *Lexer) Reset(src string) {
	l.src = src
	l.pos = 0
	l.peeked = Token{}
	l.hasPeek = false
	l.hardEOL = false
	l.atLineStart = true
}

// Next returns the next token. The second result is false once the input is
// exhausted.
func (l *Lexer) Next() (Token, bool) {
	if l.hasPeek {
		l.hasPeek = false
		return l.peeked, true
	}
	return l.scan()
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, bool) {
	if !l.hasPeek {
		tok, ok := l.scan()
		if !ok {
			return Token{}, false
		}
		l.peeked = tok
		l.hasPeek = true
	}
	return l.peeked, true
}

func (l *Lexer) scan() (Token, bool) {
	tok, ok := l.scanToken()
	if ok {
		switch tok.Kind {
		case TokenSoftBreak, TokenHardBreak, TokenParagraphBreak:
			l.atLineStart = true
		default:
			l.atLineStart = false
		}
	}
	return tok, ok
}

func (l *Lexer) scanToken() (Token, bool) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '*' || c == '_' || c == '~':
			return l.scanDelimiter(c), true
		case c == '\n':
			l.pos++
			return l.scanBreak(l.takeHardEOL()), true
		case c == '\r':
			if l.pos+1 < len(l.src) && l.src[l.pos+1] == '\n' {
				l.pos += 2
				return l.scanBreak(l.takeHardEOL()), true
			}
			l.pos++
		case c == '\\':
			if tok, ok := l.scanEscape(); ok {
				return tok, true
			}
		case c < 0x20 && c != '\t', c == 0x7F:
			l.pos++
		default:
			if tok, ok := l.scanText(); ok {
				return tok, true
			}
		}
	}
	return Token{}, false
}

func (l *Lexer) takeHardEOL() bool {
	hard := l.hardEOL
	l.hardEOL = false
	return hard
}

// scanBreak classifies the newline just consumed. Any further newlines
// separated only by spaces, tabs or carriage returns fold into one paragraph
// break; leading indentation of the following line is consumed either way.
func (l *Lexer) scanBreak(hard bool) Token {
	blank := false
scan:
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\r':
			l.pos++
		case '\n':
			blank = true
			l.pos++
		default:
			break scan
		}
	}
	switch {
	case blank:
		return Token{Kind: TokenParagraphBreak}
	case hard:
		return Token{Kind: TokenHardBreak}
	default:
		return Token{Kind: TokenSoftBreak}
	}
}

// scanDelimiter consumes a maximal run of the delimiter byte c and computes
// its flanking from the raw characters around the run.
func (l *Lexer) scanDelimiter(c byte) Token {
	begin := l.pos
	end := begin + 1
	for end < len(l.src) && l.src[end] == c {
		end++
	}
	l.pos = end

	prev, lPrev := utf8.DecodeLastRuneInString(l.src[:begin])
	next, lNext := utf8.DecodeRuneInString(l.src[end:])
	leftFlanking := lNext > 0 && !unicode.IsSpace(next) &&
		(!unicode.IsPunct(next) || lPrev == 0 || unicode.IsSpace(prev) || unicode.IsPunct(prev))
	rightFlanking := lPrev > 0 && !unicode.IsSpace(prev) &&
		(!unicode.IsPunct(prev) || lNext == 0 || unicode.IsSpace(next) || unicode.IsPunct(next))
	canOpen, canClose := leftFlanking, rightFlanking
	if c == '_' {
		// Intraword underscores stay literal.
		canOpen = leftFlanking && (!rightFlanking || (lPrev > 0 && unicode.IsPunct(prev)))
		canClose = rightFlanking && (!leftFlanking || (lNext > 0 && unicode.IsPunct(next)))
	}
	return Token{
		Kind:          TokenDelimiter,
		Delim:         c,
		Count:         end - begin,
		LeftFlanking:  leftFlanking,
		RightFlanking: rightFlanking,
		CanOpen:       canOpen,
		CanClose:      canClose,
	}
}

// scanEscape handles a backslash: the following character turns literal, a
// following newline turns into a hard break, and a backslash at end of input
// disappears.
func (l *Lexer) scanEscape() (Token, bool) {
	l.pos++
	if l.pos >= len(l.src) {
		return Token{}, false
	}
	c := l.src[l.pos]
	if c == '\n' {
		l.pos++
		return l.scanBreak(true), true
	}
	if c == '\r' {
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '\n' {
			l.pos += 2
			return l.scanBreak(true), true
		}
		l.pos++
		return Token{}, false
	}
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	start := l.pos
	l.pos += size
	if r == utf8.RuneError && size == 1 {
		return Token{}, false
	}
	if isControlRune(r) {
		return Token{}, false
	}
	return Token{Kind: TokenText, Text: l.src[start : start+size]}, true
}

// scanText consumes ordinary characters up to the next delimiter, backslash,
// line break, control byte or invalid byte. Trailing spaces and tabs before
// a newline are trimmed; exactly two trailing spaces arm a hard break for
// the newline that follows.
func (l *Lexer) scanText() (Token, bool) {
	start := l.pos
	i := l.pos
	for i < len(l.src) {
		c := l.src[i]
		if c == '*' || c == '_' || c == '~' || c == '\\' || c == '\n' || c == '\r' {
			break
		}
		if c < 0x20 && c != '\t' || c == 0x7F {
			break
		}
		if c < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(l.src[i:])
		if r == utf8.RuneError && size == 1 {
			break
		}
		i += size
	}
	if i == start {
		// Invalid byte where text was expected; skip it.
		l.pos = i + 1
		return Token{}, false
	}
	l.pos = i
	raw := l.src[start:i]
	if !l.atNewline(i) {
		return Token{Kind: TokenText, Text: raw}, true
	}
	trimmed := strings.TrimRight(raw, " \t")
	trailing := raw[len(trimmed):]
	l.hardEOL = trailing == "  " && (trimmed != "" || !l.atLineStart)
	if trimmed == "" {
		return Token{}, false
	}
	return Token{Kind: TokenText, Text: trimmed}, true
}

func (l *Lexer) atNewline(i int) bool {
	if i >= len(l.src) {
		return false
	}
	if l.src[i] == '\n' {
		return true
	}
	return l.src[i] == '\r' && i+1 < len(l.src) && l.src[i+1] == '\n'
}
