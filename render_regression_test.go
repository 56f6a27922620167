package sani

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRenderBasicSpansExactBytes(t *testing.T) {
	t.Parallel()
	src := []byte("plain *italic* **bold** ~~gone~~ text.\n")
	out := renderString(t, src, 80)
	want := "plain \x1b[3mitalic\x1b[23m \x1b[1mbold\x1b[22m \x1b[9mgone\x1b[29m text.\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRenderNestedSpanRestoresOuterStyle(t *testing.T) {
	t.Parallel()
	src := []byte("*outer **inner** tail*\n")
	out := renderString(t, src, 80)
	want := "\x1b[3mouter \x1b[1minner\x1b[22m tail\x1b[0m\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
	if strings.Contains(strings.TrimSuffix(out, "\x1b[0m\n"), "\x1b[0m") {
		t.Fatalf("full reset mid-line: %q", out)
	}
}

func TestRenderResetOnlyBeforeNewline(t *testing.T) {
	t.Parallel()
	for _, width := range []int{0, 40} {
		out := renderString(t, []byte(sampleDoc), width)
		for i := 0; ; {
			j := strings.Index(out[i:], "\x1b[0m")
			if j < 0 {
				break
			}
			i += j + len("\x1b[0m")
			if i >= len(out) || out[i] != '\n' {
				t.Fatalf("width %d: full reset not followed by newline at byte %d: %q", width, i, out)
			}
		}
	}
}

func TestRenderHardBreakPreservesStrong(t *testing.T) {
	t.Parallel()
	src := []byte("**bold before  \nand after**\n")
	out := renderString(t, src, 0)
	want := "\x1b[1mbold before\x1b[0m\n\x1b[1mand after\x1b[0m\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRenderWrapClearsAndRearmsStyle(t *testing.T) {
	t.Parallel()
	out := renderString(t, []byte("*aaaa bbbb*\n"), 4)
	want := "\x1b[3maaaa\x1b[0m\n\x1b[3mbbbb\x1b[0m\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRenderWrapDoesNotRearmPlainText(t *testing.T) {
	t.Parallel()
	out := renderString(t, []byte("*aaa bbb* ccc\n"), 7)
	want := "\x1b[3maaa bbb\x1b[0m\nccc\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRenderSoftBreakCollapsesToSpace(t *testing.T) {
	t.Parallel()
	out := renderString(t, []byte("one\ntwo\n"), 0)
	if out != "one two\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestRenderPreserveLineBreaks(t *testing.T) {
	t.Parallel()
	out := renderStringWithOptions(t, []byte("one\ntwo\n"), 0, WithPreserveLineBreaks(true))
	if out != "one\ntwo\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestRenderParagraphGapExactBytes(t *testing.T) {
	t.Parallel()
	out := renderString(t, []byte("*one*\n\n*two*\n"), 0)
	want := "\x1b[3mone\x1b[0m\n\n\x1b[3mtwo\x1b[0m\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRenderUnmatchedMarkersLiteral(t *testing.T) {
	t.Parallel()
	tests := []string{
		"a ** b",
		"*unclosed",
		"unopened*",
		"snake_case_name",
		"lone ~ tilde",
	}
	for _, src := range tests {
		out := renderString(t, []byte(src+"\n"), 0)
		if out != src+"\n" {
			t.Fatalf("%q: output = %q, want literal", src, out)
		}
	}
}

func TestRenderDelimiterStateResetAcrossParagraphs(t *testing.T) {
	t.Parallel()
	out := renderString(t, []byte("*open\n\nclose*\n"), 0)
	if out != "*open\n\nclose*\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestRenderAllSampleTextPresent(t *testing.T) {
	t.Parallel()
	out := normalizeWhitespace(stripANSI(renderString(t, []byte(sampleDoc), 0)))
	for _, line := range strings.Split(sampleDoc, "\n") {
		want := normalizeMarkupLine(line)
		if want == "" {
			continue
		}
		if !strings.Contains(out, normalizeWhitespace(want)) {
			t.Fatalf("missing text %q in rendered output", want)
		}
	}
}

func TestRenderWrappedSampleTextPresent(t *testing.T) {
	t.Parallel()
	out := normalizeWhitespace(stripANSI(renderString(t, []byte(sampleDoc), 40)))
	for _, line := range strings.Split(sampleDoc, "\n") {
		want := normalizeMarkupLine(line)
		if want == "" {
			continue
		}
		for _, word := range strings.Fields(want) {
			if !strings.Contains(out, word) {
				t.Fatalf("missing word %q in wrapped output", word)
			}
		}
	}
}

func TestRenderThemedSpans(t *testing.T) {
	t.Parallel()
	theme, ok := ThemeByName("gruvbox")
	if !ok {
		t.Fatalf("gruvbox theme missing")
	}
	var out bytes.Buffer
	err := Render(RenderRequest{
		Reader: strings.NewReader("plain *em* **st** ~~sk~~ tail\n"),
		Writer: &out,
		Width:  0,
		Theme:  theme,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	styles := theme.Styles()
	got := out.String()
	for name, style := range map[string]Style{
		"emphasis":      styles.Emphasis.Over(styles.Text),
		"strong":        styles.Strong.Over(styles.Text),
		"strikethrough": styles.Strikethrough.Over(styles.Text),
	} {
		if !strings.Contains(got, style.SGR()) {
			t.Fatalf("missing %s sequence %q in %q", name, style.SGR(), got)
		}
	}
}

func TestRenderUnstyledThemeEmitsNoANSI(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	err := Render(RenderRequest{
		Reader: strings.NewReader(sampleDoc),
		Writer: &out,
		Width:  60,
		Theme:  NewTheme("boring", Styles{}),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := out.String(); strings.Contains(got, "\x1b") {
		t.Fatalf("unstyled theme produced escapes: %q", got)
	}
}

func TestRenderInputEscapesCannotForgeStyles(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	err := Render(RenderRequest{
		Reader: strings.NewReader("red \x1b[31mtext\n"),
		Writer: &out,
		Width:  0,
		Theme:  NewTheme("boring", Styles{}),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := out.String()
	if strings.Contains(got, "\x1b") {
		t.Fatalf("raw escape survived: %q", got)
	}
	if !strings.Contains(got, "red [31mtext") {
		t.Fatalf("printable remainder lost: %q", got)
	}
}

func TestRenderRejectsInvalidUTF8(t *testing.T) {
	t.Parallel()
	err := Render(RenderRequest{
		Reader: bytes.NewReader([]byte{0xff, 0xfe, 0xfd}),
		Writer: &bytes.Buffer{},
	})
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestRenderRejectsBinaryInput(t *testing.T) {
	t.Parallel()
	err := Render(RenderRequest{
		Reader: bytes.NewReader(append([]byte("hello"), 0x00)),
		Writer: &bytes.Buffer{},
	})
	if !errors.Is(err, ErrBinaryInput) {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
}

func TestRenderNilArguments(t *testing.T) {
	t.Parallel()
	if err := Render(RenderRequest{Writer: &bytes.Buffer{}}); err == nil {
		t.Fatalf("expected error for nil reader")
	}
	if err := Render(RenderRequest{Reader: strings.NewReader("x")}); err == nil {
		t.Fatalf("expected error for nil writer")
	}
}

func TestRenderDocumentDirect(t *testing.T) {
	t.Parallel()
	doc := mustParse(t, "*hi*")
	var out bytes.Buffer
	sink := NewANSIRenderer(&out, 0)
	if err := RenderDocument(doc, sink, nil); err != nil {
		t.Fatalf("render document: %v", err)
	}
	if got := out.String(); got != "\x1b[3mhi\x1b[0m\n" {
		t.Fatalf("output = %q", got)
	}
	if err := RenderDocument(nil, sink, nil); err == nil {
		t.Fatalf("expected error for nil document")
	}
	if err := RenderDocument(doc, nil, nil); err == nil {
		t.Fatalf("expected error for nil sink")
	}
}

func TestRenderParagraphBoundaryNode(t *testing.T) {
	t.Parallel()
	doc := &Document{Paragraphs: []Paragraph{{Inlines: []Inline{
		text("a"),
		&ParagraphBoundary{},
		text("b"),
	}}}}
	var out bytes.Buffer
	sink := NewANSIRenderer(&out, 0)
	if err := RenderDocument(doc, sink, nil); err != nil {
		t.Fatalf("render document: %v", err)
	}
	if got := out.String(); got != "a\n\nb\n" {
		t.Fatalf("output = %q", got)
	}
}
