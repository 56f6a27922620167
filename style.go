package sani

import "strconv"

// Attr is a set of terminal text attributes.
type Attr uint8

const (
	// AttrItalic renders italic text (SGR 3).
	AttrItalic Attr = 1 << iota
	// AttrBold renders bold text (SGR 1).
	AttrBold
	// AttrDim renders faint text (SGR 2).
	AttrDim
	// AttrUnderline renders underlined text (SGR 4).
	AttrUnderline
	// AttrBlink renders blinking text (SGR 5).
	AttrBlink
	// AttrInverse swaps foreground and background (SGR 7).
	AttrInverse
	// AttrStrike renders struck-through text (SGR 9).
	AttrStrike
)

// Has reports whether all bits of flag are set.
func (a Attr) Has(flag Attr) bool { return a&flag == flag }

// With returns a with the bits of flag set.
func (a Attr) With(flag Attr) Attr { return a | flag }

// Without returns a with the bits of flag cleared.
func (a Attr) Without(flag Attr) Attr { return a &^ flag }

// Style describes a terminal style as an attribute set plus an optional
// 256-color foreground. A zero Style renders unstyled text. Fg 0 selects the
// terminal default foreground; palette entry 0 (ANSI black) is not
// addressable, which no built-in theme needs.
type Style struct {
	Attrs Attr
	Fg    uint8
}

// IsZero reports whether the style carries no attributes and no color.
func (s Style) IsZero() bool { return s == Style{} }

// Over returns the style of a span nested inside parent: attributes are the
// union, and the span's foreground wins when set.
func (s Style) Over(parent Style) Style {
	out := Style{Attrs: parent.Attrs | s.Attrs, Fg: s.Fg}
	if out.Fg == 0 {
		out.Fg = parent.Fg
	}
	return out
}

// SGR returns the escape sequence enabling the style from a plain terminal
// state, or "" for the zero style.
func (s Style) SGR() string {
	return string(appendTransition(nil, Style{}, s))
}

const ansiReset = "\x1b[0m"

// sgrPairs orders attribute bits with their enable and disable codes. Bold
// and dim share disable code 22; appendTransition compensates.
var sgrPairs = [...]struct {
	bit Attr
	on  string
	off string
}{
	{AttrBold, "1", "22"},
	{AttrDim, "2", "22"},
	{AttrItalic, "3", "23"},
	{AttrUnderline, "4", "24"},
	{AttrBlink, "5", "25"},
	{AttrInverse, "7", "27"},
	{AttrStrike, "9", "29"},
}

// appendTransition appends the minimal SGR sequence switching the terminal
// from one style to another. Disable codes come before enable codes, joined
// into a single CSI sequence. Appends nothing when the styles are equal.
func appendTransition(dst []byte, from, to Style) []byte {
	if from == to {
		return dst
	}
	removed := from.Attrs &^ to.Attrs
	added := to.Attrs &^ from.Attrs
	if removed&(AttrBold|AttrDim) != 0 {
		// SGR 22 clears both intensity attributes; re-arm the survivor.
		added |= to.Attrs & (AttrBold | AttrDim)
	}
	dst = append(dst, "\x1b["...)
	n := 0
	param := func(code string) {
		if n > 0 {
			dst = append(dst, ';')
		}
		dst = append(dst, code...)
		n++
	}
	cleared22 := false
	for _, p := range sgrPairs {
		if removed&p.bit == 0 {
			continue
		}
		if p.off == "22" {
			if cleared22 {
				continue
			}
			cleared22 = true
		}
		param(p.off)
	}
	for _, p := range sgrPairs {
		if added&p.bit != 0 {
			param(p.on)
		}
	}
	if from.Fg != to.Fg {
		if to.Fg == 0 {
			param("39")
		} else {
			param("38;5;")
			dst = strconv.AppendUint(dst, uint64(to.Fg), 10)
		}
	}
	return append(dst, 'm')
}
