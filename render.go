package sani

import (
	"fmt"
	"io"
	"sync"
)

var ansiRendererPool = sync.Pool{
	New: func() any {
		return &ANSIRenderer{}
	},
}

// RenderRequest configures Render.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Width   int
	Theme   Theme
	Options []RenderOption
}

// Render reads Markdown from req.Reader and writes ANSI-styled text to
// req.Writer. A nil theme selects the default theme; a width of zero or
// less disables wrapping. Input must be UTF-8 text; front matter is
// stripped unless WithKeepFrontMatter is set.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	cfg := renderConfig{}
	for _, opt := range req.Options {
		if opt != nil {
			opt(&cfg)
		}
	}
	src, err := io.ReadAll(req.Reader)
	if err != nil {
		return fmt.Errorf("render: read: %w", err)
	}
	if err := ValidateInput(src); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if !cfg.keepFrontMatter {
		src = StripFrontMatter(src)
	}
	doc := parseDocument(bytesToString(src))
	sink := ansiRendererPool.Get().(*ANSIRenderer)
	sink.Reset(req.Writer, req.Width)
	err = renderDocument(doc, sink, req.Theme, cfg)
	if ferr := sink.Flush(); err == nil {
		err = ferr
	}
	sink.Reset(io.Discard, 0)
	ansiRendererPool.Put(sink)
	return err
}

// RenderDocument walks a parsed document and writes segments to sink,
// flushing it at the end. A nil theme selects the default theme.
func RenderDocument(doc *Document, sink Sink, theme Theme, opts ...RenderOption) error {
	if doc == nil {
		return fmt.Errorf("render: document is nil")
	}
	if sink == nil {
		return fmt.Errorf("render: sink is nil")
	}
	cfg := renderConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := renderDocument(doc, sink, theme, cfg); err != nil {
		return err
	}
	return sink.Flush()
}

func renderDocument(doc *Document, sink Sink, theme Theme, cfg renderConfig) error {
	if theme == nil {
		theme = DefaultTheme()
	}
	w := walker{
		sink:           sink,
		styles:         theme.Styles(),
		preserveBreaks: cfg.preserveLineBreaks,
	}
	return w.document(doc)
}

// walker traverses the inline tree depth-first, tracking the effective
// style on an explicit stack. Entering a span pushes its style layered
// over the current one; leaving pops back to the enclosing style, so a
// strong span inside emphasis drops bold on exit but keeps italic.
type walker struct {
	sink           Sink
	styles         Styles
	preserveBreaks bool

	stack    []Style
	stackArr [16]Style
}

func (w *walker) document(doc *Document) error {
	for i := range doc.Paragraphs {
		if i > 0 {
			if err := w.sink.WriteSegment(Segment{Kind: SegmentParagraphGap}); err != nil {
				return err
			}
		}
		if err := w.paragraph(&doc.Paragraphs[i]); err != nil {
			return err
		}
	}
	return nil
}

// paragraph renders one paragraph with a fresh style stack.
func (w *walker) paragraph(p *Paragraph) error {
	w.stack = w.stackArr[:0]
	w.stack = append(w.stack, w.styles.Text)
	return w.inlines(p.Inlines)
}

func (w *walker) inlines(nodes []Inline) error {
	for _, n := range nodes {
		if err := w.inline(n); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) inline(node Inline) error {
	switch n := node.(type) {
	case *Text:
		return w.sink.WriteSegment(Segment{Kind: SegmentText, Text: n.Content, Style: w.current()})
	case *Emphasis:
		return w.span(w.styles.Emphasis, n.Children)
	case *Strong:
		return w.span(w.styles.Strong, n.Children)
	case *Strikethrough:
		return w.span(w.styles.Strikethrough, n.Children)
	case *SoftBreak:
		if w.preserveBreaks {
			return w.sink.WriteSegment(Segment{Kind: SegmentHardBreak})
		}
		return w.sink.WriteSegment(Segment{Kind: SegmentText, Text: " ", Style: w.current()})
	case *HardBreak:
		return w.sink.WriteSegment(Segment{Kind: SegmentHardBreak})
	case *ParagraphBoundary:
		return w.sink.WriteSegment(Segment{Kind: SegmentParagraphGap})
	}
	return nil
}

func (w *walker) span(style Style, children []Inline) error {
	w.stack = append(w.stack, style.Over(w.current()))
	err := w.inlines(children)
	w.stack = w.stack[:len(w.stack)-1]
	return err
}

func (w *walker) current() Style {
	return w.stack[len(w.stack)-1]
}
