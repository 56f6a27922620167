// Package sani renders inline Markdown emphasis to ANSI for terminal display.
//
// The package covers the inline emphasis subset of Markdown: emphasis,
// strong emphasis, strikethrough, line breaks and paragraphs. Input is
// parsed with a CommonMark-style delimiter stack, so nesting, partial
// delimiter runs and unbalanced markup resolve the way terminal users
// expect, with anything unmatched degrading to literal text. Parsing
// never fails on markup; only invalid UTF-8 is rejected.
//
// Core properties:
//   - Delimiter-stack emphasis resolution with flanking rules
//   - Minimal SGR transitions, every output line SGR-clean
//   - Theme-driven styling with 256-color palettes
//   - Optional hard wrapping at a configured width
//   - Low allocations in hot paths
//
// Example:
//
//	reader := strings.NewReader("render *some* **Markdown**, ~~HTML~~ ANSI out.\n")
//	err := sani.Render(sani.RenderRequest{
//		Reader: reader,
//		Writer: os.Stdout,
//		Width:  80,
//		Theme:  sani.DefaultTheme(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Hosts that need a different backend can parse with Parse or ParseString
// and walk the Document themselves, or implement Sink and reuse the
// renderer's traversal via RenderDocument.
package sani
