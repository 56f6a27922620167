package sani

// SegmentKind discriminates renderer output units.
type SegmentKind uint8

const (
	// SegmentText is a run of text with a single style in force.
	SegmentText SegmentKind = iota
	// SegmentHardBreak is a forced line break inside a paragraph. Styles
	// stay in force across it.
	SegmentHardBreak
	// SegmentParagraphGap separates paragraphs. All styles are off on both
	// sides of the gap.
	SegmentParagraphGap
)

// Segment is one unit of renderer output.
type Segment struct {
	Kind  SegmentKind
	Text  string
	Style Style
}

// Sink receives segments from the renderer in document order. ANSIRenderer
// is the built-in sink; hosts targeting other backends supply their own.
type Sink interface {
	WriteSegment(Segment) error
	Flush() error
}
