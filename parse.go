package sani

import (
	"sync"
	"unicode/utf8"
	"unsafe"
)

var resolverPool = sync.Pool{
	New: func() any { return new(resolver) },
}

// ParseString parses Markdown emphasis markup into a Document. Input is
// split into paragraphs on blank lines and each paragraph is resolved
// independently. The only failure mode is invalid UTF-8; malformed markup
// degrades to literal text instead of erroring.
func ParseString(src string) (*Document, error) {
	if !utf8.ValidString(src) {
		return nil, ErrInvalidUTF8
	}
	return parseDocument(src), nil
}

// Parse is ParseString for a byte slice. The document may alias src, so
// callers must not modify src while the document is in use.
func Parse(src []byte) (*Document, error) {
	if !utf8.Valid(src) {
		return nil, ErrInvalidUTF8
	}
	return parseDocument(bytesToString(src)), nil
}

func parseDocument(src string) *Document {
	r := resolverPool.Get().(*resolver)
	defer func() {
		r.reset()
		resolverPool.Put(r)
	}()

	var (
		doc    Document
		lx     Lexer
		tokens []Token
	)
	lx.Reset(src)
	for {
		tok, ok := lx.Next()
		if !ok {
			break
		}
		if tok.Kind == TokenParagraphBreak {
			if inlines := resolveParagraph(r, tokens); len(inlines) > 0 {
				doc.Paragraphs = append(doc.Paragraphs, Paragraph{Inlines: inlines})
			}
			tokens = tokens[:0]
			continue
		}
		tokens = append(tokens, tok)
	}
	if inlines := resolveParagraph(r, tokens); len(inlines) > 0 {
		doc.Paragraphs = append(doc.Paragraphs, Paragraph{Inlines: inlines})
	}
	return &doc
}

// resolveParagraph trims break tokens that would render as stray whitespace
// at the paragraph edges, then runs the delimiter resolver. Returns nil for
// paragraphs with no content.
func resolveParagraph(r *resolver, tokens []Token) []Inline {
	for len(tokens) > 0 && isBreakToken(tokens[0]) {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && isBreakToken(tokens[len(tokens)-1]) {
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) == 0 {
		return nil
	}
	r.reset()
	return r.resolve(tokens)
}

func isBreakToken(t Token) bool {
	return t.Kind == TokenSoftBreak || t.Kind == TokenHardBreak
}

func bytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
