package sani

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

// sampleDoc exercises every inline construct across several paragraphs:
// nested spans, spans across soft breaks, hard breaks inside spans, and
// strikethrough runs.
var sampleDoc = strings.Join([]string{
	"Termcap articles praise *plain text* for being **portable**, and",
	"terminal emulators agree on the basics even when they disagree on",
	"everything else.",
	"",
	"This paragraph nests markup: *outer emphasis with **strong inside**",
	"and a ~~struck aside~~ closing thought* plus trailing prose.",
	"",
	"Hard breaks keep styling:  ",
	"**bold before  ",
	"and bold after** the forced line.",
	"",
	"Tildes also pair across ~~dropped words~~ and the paragraph then",
	"ends quietly.",
}, "\n") + "\n"

var ansiRegexp = regexp.MustCompile("\x1b\\[[0-9;]*[A-Za-z]")

func stripANSI(s string) string {
	return ansiRegexp.ReplaceAllString(s, "")
}

func renderString(t *testing.T, src []byte, width int) string {
	t.Helper()
	return renderStringWithOptions(t, src, width)
}

func renderStringWithOptions(t *testing.T, src []byte, width int, opts ...RenderOption) string {
	t.Helper()
	var out bytes.Buffer
	err := Render(RenderRequest{
		Reader:  bytes.NewReader(src),
		Writer:  &out,
		Width:   width,
		Theme:   DefaultTheme(),
		Options: opts,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out.String()
}

func normalizeWhitespace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, " ")
}

// normalizeMarkupLine reduces a source line to the text the renderer should
// surface: emphasis markers dropped, escapes unwrapped, whitespace folded.
func normalizeMarkupLine(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	line = strings.ReplaceAll(line, "\\", "")
	line = strings.ReplaceAll(line, "*", "")
	line = strings.ReplaceAll(line, "_", "")
	line = strings.ReplaceAll(line, "~~", "")
	line = strings.TrimSpace(line)
	return line
}

// mustParse parses src and fails the test on error.
func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := ParseString(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return doc
}
