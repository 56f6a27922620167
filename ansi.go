package sani

import (
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
	"github.com/rivo/uniseg"
)

// styledRun is a fragment of a word or space run with its style.
type styledRun struct {
	text  string
	style Style
}

// ANSIRenderer writes segments to an io.Writer as ANSI-styled text with
// optional hard wrapping. Style changes emit minimal SGR transitions; every
// emitted newline is preceded by a clean SGR state, so each output line is
// self-contained.
type ANSIRenderer struct {
	w     io.Writer
	width int

	style          Style
	lineWidth      int
	wordWidth      int
	spaceWidth     int
	pendingWord    []styledRun
	pendingSpaces  []styledRun
	wrapIndent     string
	lastWasNewline bool

	sgrBuf []byte

	pendingWordArr   [64]styledRun
	pendingSpacesArr [16]styledRun
	sgrBufArr        [64]byte
}

// NewANSIRenderer creates a renderer writing to w. A width of zero or less
// disables wrapping.
func NewANSIRenderer(w io.Writer, width int) *ANSIRenderer {
	r := &ANSIRenderer{}
	r.Reset(w, width)
	return r
}

// Reset clears renderer state for reuse with a new writer or width.
func (r *ANSIRenderer) Reset(w io.Writer, width int) {
	if r.pendingWord == nil {
		r.pendingWord = r.pendingWordArr[:0]
	}
	if r.pendingSpaces == nil {
		r.pendingSpaces = r.pendingSpacesArr[:0]
	}
	if r.sgrBuf == nil {
		r.sgrBuf = r.sgrBufArr[:0]
	}
	r.w = w
	r.width = width
	r.style = Style{}
	r.lineWidth = 0
	r.wordWidth = 0
	r.spaceWidth = 0
	r.pendingWord = r.pendingWord[:0]
	r.pendingSpaces = r.pendingSpaces[:0]
	r.wrapIndent = ""
	r.lastWasNewline = true
}

// Width returns the configured wrap width.
func (r *ANSIRenderer) Width() int {
	return r.width
}

// SetWidth updates the wrap width.
func (r *ANSIRenderer) SetWidth(width int) {
	r.width = width
}

// SetWrapIndent sets the indentation prefix for continuation lines after a
// wrap or hard break.
func (r *ANSIRenderer) SetWrapIndent(indent string) {
	r.wrapIndent = indent
}

// WriteSegment implements Sink.
func (r *ANSIRenderer) WriteSegment(seg Segment) error {
	switch seg.Kind {
	case SegmentHardBreak:
		if err := r.flushWord(); err != nil {
			return err
		}
		if err := r.emitPendingSpaces(); err != nil {
			return err
		}
		return r.wrapNewline()
	case SegmentParagraphGap:
		if err := r.flushWord(); err != nil {
			return err
		}
		r.pendingSpaces = r.pendingSpaces[:0]
		r.spaceWidth = 0
		return r.paragraphGap()
	}
	return r.writeText(seg.Text, seg.Style)
}

func (r *ANSIRenderer) writeText(text string, style Style) error {
	if r.width <= 0 {
		return r.emitRun(text, style)
	}
	for len(text) > 0 {
		n := 1
		if text[0] == ' ' || text[0] == '\t' {
			for n < len(text) && (text[n] == ' ' || text[n] == '\t') {
				n++
			}
			if err := r.flushWord(); err != nil {
				return err
			}
			r.pendingSpaces = append(r.pendingSpaces, styledRun{text: text[:n], style: style})
			r.spaceWidth += ansi.PrintableRuneWidth(text[:n])
		} else {
			for n < len(text) && text[n] != ' ' && text[n] != '\t' {
				n++
			}
			r.pendingWord = append(r.pendingWord, styledRun{text: text[:n], style: style})
			r.wordWidth += ansi.PrintableRuneWidth(text[:n])
		}
		text = text[n:]
	}
	return nil
}

// flushWord decides where the buffered word lands: on the current line, on
// a fresh line when it would overflow, or split across lines when it is
// wider than the wrap width on its own. Spaces pending before a wrapped
// word are dropped with the wrap.
func (r *ANSIRenderer) flushWord() error {
	if len(r.pendingWord) == 0 {
		return nil
	}
	if r.width > 0 && r.lineWidth > 0 && r.lineWidth+r.spaceWidth+r.wordWidth > r.width {
		if err := r.wrapNewline(); err != nil {
			return err
		}
		r.pendingSpaces = r.pendingSpaces[:0]
		r.spaceWidth = 0
	}
	if err := r.emitPendingSpaces(); err != nil {
		return err
	}
	var err error
	if r.width > 0 && r.wordWidth > r.width {
		err = r.emitOverlongWord()
	} else {
		for _, run := range r.pendingWord {
			if err = r.emitRun(run.text, run.style); err != nil {
				break
			}
		}
	}
	r.pendingWord = r.pendingWord[:0]
	r.wordWidth = 0
	return err
}

func (r *ANSIRenderer) emitPendingSpaces() error {
	for _, run := range r.pendingSpaces {
		if err := r.emitRun(run.text, run.style); err != nil {
			return err
		}
	}
	r.pendingSpaces = r.pendingSpaces[:0]
	r.spaceWidth = 0
	return nil
}

// emitOverlongWord splits a word wider than the wrap width at grapheme
// cluster boundaries so combining sequences never straddle a line break.
func (r *ANSIRenderer) emitOverlongWord() error {
	for _, run := range r.pendingWord {
		text := run.text
		state := -1
		for len(text) > 0 {
			var cluster string
			cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
			w := runewidth.StringWidth(cluster)
			if r.lineWidth > 0 && r.lineWidth+w > r.width {
				if err := r.wrapNewline(); err != nil {
					return err
				}
			}
			if err := r.emitRun(cluster, run.style); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *ANSIRenderer) emitRun(text string, style Style) error {
	if text == "" {
		return nil
	}
	if style != r.style {
		r.sgrBuf = appendTransition(r.sgrBuf[:0], r.style, style)
		if _, err := r.w.Write(r.sgrBuf); err != nil {
			return err
		}
		r.style = style
	}
	if _, err := io.WriteString(r.w, text); err != nil {
		return err
	}
	r.lineWidth += ansi.PrintableRuneWidth(text)
	r.lastWasNewline = false
	return nil
}

func (r *ANSIRenderer) wrapNewline() error {
	if err := r.clearStyle(); err != nil {
		return err
	}
	if _, err := io.WriteString(r.w, "\n"); err != nil {
		return err
	}
	r.lineWidth = 0
	r.lastWasNewline = true
	if r.wrapIndent != "" {
		if _, err := io.WriteString(r.w, r.wrapIndent); err != nil {
			return err
		}
		r.lineWidth = ansi.PrintableRuneWidth(r.wrapIndent)
		r.lastWasNewline = false
	}
	return nil
}

func (r *ANSIRenderer) paragraphGap() error {
	if err := r.clearStyle(); err != nil {
		return err
	}
	if _, err := io.WriteString(r.w, "\n\n"); err != nil {
		return err
	}
	r.lineWidth = 0
	r.lastWasNewline = true
	return nil
}

func (r *ANSIRenderer) clearStyle() error {
	if r.style.IsZero() {
		return nil
	}
	r.style = Style{}
	_, err := io.WriteString(r.w, ansiReset)
	return err
}

// Flush implements Sink: buffered content is written out, any active style
// is reset, and output is terminated with a newline.
func (r *ANSIRenderer) Flush() error {
	if err := r.flushWord(); err != nil {
		return err
	}
	if err := r.emitPendingSpaces(); err != nil {
		return err
	}
	if err := r.clearStyle(); err != nil {
		return err
	}
	if !r.lastWasNewline {
		if _, err := io.WriteString(r.w, "\n"); err != nil {
			return err
		}
		r.lastWasNewline = true
	}
	return nil
}
