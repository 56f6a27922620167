package sani

import "bytes"

// StripFrontMatter removes a leading front matter block from src. A block
// opens with a line that is exactly ---, +++ or ;;;, must be followed by a
// line that looks like metadata, and runs through the matching closing
// delimiter line. Unterminated blocks and anything else pass through
// unchanged.
func StripFrontMatter(src []byte) []byte {
	openLine, next, ok := frontMatterLine(src, 0)
	if !ok {
		return src
	}
	delim, isFrontMatter := frontMatterDelimiter(openLine)
	if !isFrontMatter {
		return src
	}
	secondLine, idx, ok := frontMatterLine(src, next)
	if !ok || !frontMatterMetadataLikely(secondLine) {
		return src
	}
	for {
		line, lineNext, ok := frontMatterLine(src, idx)
		if !ok {
			return src
		}
		if bytes.Equal(bytes.TrimSpace(line), delim) {
			return src[lineNext:]
		}
		idx = lineNext
	}
}

func frontMatterLine(src []byte, start int) ([]byte, int, bool) {
	if start >= len(src) {
		return nil, start, false
	}
	i := bytes.IndexByte(src[start:], '\n')
	if i < 0 {
		return trimCR(src[start:]), len(src), true
	}
	end := start + i
	return trimCR(src[start:end]), end + 1, true
}

func frontMatterDelimiter(line []byte) ([]byte, bool) {
	trimmed := bytes.TrimSpace(trimBOM(line))
	switch {
	case bytes.Equal(trimmed, []byte("---")):
		return []byte("---"), true
	case bytes.Equal(trimmed, []byte("+++")):
		return []byte("+++"), true
	case bytes.Equal(trimmed, []byte(";;;")):
		return []byte(";;;"), true
	default:
		return nil, false
	}
}

// frontMatterMetadataLikely reports whether a line plausibly starts a
// metadata body: key/value pairs or a JSON document. A thematic-break-like
// line followed by prose is not front matter.
func frontMatterMetadataLikely(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	if bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("[")) {
		return true
	}
	if bytes.Contains(trimmed, []byte(":")) || bytes.Contains(trimmed, []byte("=")) {
		return true
	}
	return false
}

func trimCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}

func trimBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}
