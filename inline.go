package sani

// Inline is a node of the inline Markdown tree produced by parsing one
// paragraph. A tree is owned by a single render pass and never shared across
// paragraphs.
type Inline interface {
	inlineNode()
}

// Text is a literal text span, emitted verbatim.
type Text struct {
	Content string
}

// Emphasis is a span produced from a matched single-unit delimiter pair.
type Emphasis struct {
	Children []Inline
}

// Strong is a span produced from a matched double-unit delimiter pair.
type Strong struct {
	Children []Inline
}

// Strikethrough is a span produced from a matched tilde run pair.
type Strikethrough struct {
	Children []Inline
}

// SoftBreak is a line break that collapses to a single space unless line
// breaks are preserved.
type SoftBreak struct{}

// HardBreak is a forced line break; open styles stay active across it.
type HardBreak struct{}

// ParagraphBoundary forces a paragraph gap with a full style reset. Parse
// expresses paragraph structure through Document.Paragraphs and never emits
// this node; it exists for hosts that assemble inline sequences directly.
type ParagraphBoundary struct{}

func (*Text) inlineNode()              {}
func (*Emphasis) inlineNode()          {}
func (*Strong) inlineNode()            {}
func (*Strikethrough) inlineNode()     {}
func (*SoftBreak) inlineNode()         {}
func (*HardBreak) inlineNode()         {}
func (*ParagraphBoundary) inlineNode() {}

// Paragraph is an ordered sequence of inline nodes.
type Paragraph struct {
	Inlines []Inline
}

// Document is one parsed Markdown input: an ordered sequence of paragraphs.
// It is immutable after construction and holds no state beyond the parse
// that produced it.
type Document struct {
	Paragraphs []Paragraph
}
