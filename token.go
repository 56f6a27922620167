package sani

import "strings"

// TokenKind discriminates lexer tokens.
type TokenKind uint8

const (
	// TokenText is a run of literal text.
	TokenText TokenKind = iota
	// TokenDelimiter is a maximal run of a single delimiter character.
	TokenDelimiter
	// TokenSoftBreak is a plain newline inside a paragraph.
	TokenSoftBreak
	// TokenHardBreak is a forced line break within a paragraph.
	TokenHardBreak
	// TokenParagraphBreak is a blank-line run separating paragraphs.
	TokenParagraphBreak
)

// Token is one lexed unit of Markdown source. Tokens are immutable once
// produced; the resolver consumes them in a single pass.
type Token struct {
	Kind TokenKind

	// Text holds the literal content of a TokenText.
	Text string

	// Delim and Count describe a TokenDelimiter run: the delimiter byte
	// ('*', '_' or '~') and the run length.
	Delim byte
	Count int

	// Flanking describes the run's adjacency per the standard rule: a run is
	// left-flanking when it may open a span, judged from the characters
	// around it, and right-flanking when it may close one. CanOpen and
	// CanClose are the derived capabilities the resolver acts on; for '_'
	// they are stricter than the flanking flags to keep intraword
	// underscores literal.
	LeftFlanking  bool
	RightFlanking bool
	CanOpen       bool
	CanClose      bool
}

func delimString(d byte, n int) string {
	return strings.Repeat(string(rune(d)), n)
}
