package sani

import "testing"

func TestAttrSetOperations(t *testing.T) {
	t.Parallel()
	a := AttrBold.With(AttrItalic)
	if !a.Has(AttrBold) || !a.Has(AttrItalic) {
		t.Fatalf("missing bits in %b", a)
	}
	if a.Has(AttrStrike) {
		t.Fatalf("unexpected strike bit in %b", a)
	}
	if b := a.Without(AttrBold); b.Has(AttrBold) || !b.Has(AttrItalic) {
		t.Fatalf("Without(bold) = %b", b)
	}
}

func TestStyleIsZero(t *testing.T) {
	t.Parallel()
	if !(Style{}).IsZero() {
		t.Fatalf("zero style not zero")
	}
	if (Style{Attrs: AttrBold}).IsZero() {
		t.Fatalf("bold style is zero")
	}
	if (Style{Fg: 1}).IsZero() {
		t.Fatalf("colored style is zero")
	}
}

func TestStyleOver(t *testing.T) {
	t.Parallel()
	parent := Style{Attrs: AttrItalic, Fg: 100}
	child := Style{Attrs: AttrBold}
	got := child.Over(parent)
	if got.Attrs != AttrItalic|AttrBold {
		t.Fatalf("attrs = %b, want union", got.Attrs)
	}
	if got.Fg != 100 {
		t.Fatalf("fg = %d, want inherited 100", got.Fg)
	}
	colored := Style{Attrs: AttrStrike, Fg: 200}
	if got := colored.Over(parent); got.Fg != 200 {
		t.Fatalf("fg = %d, want child override 200", got.Fg)
	}
}

func TestStyleSGR(t *testing.T) {
	t.Parallel()
	tests := []struct {
		style Style
		want  string
	}{
		{Style{}, ""},
		{Style{Attrs: AttrItalic}, "\x1b[3m"},
		{Style{Attrs: AttrBold | AttrItalic}, "\x1b[1;3m"},
		{Style{Attrs: AttrBold, Fg: 208}, "\x1b[1;38;5;208m"},
		{Style{Fg: 34}, "\x1b[38;5;34m"},
		{Style{Attrs: AttrStrike}, "\x1b[9m"},
	}
	for _, tc := range tests {
		if got := tc.style.SGR(); got != tc.want {
			t.Fatalf("SGR(%+v) = %q, want %q", tc.style, got, tc.want)
		}
	}
}

func TestAppendTransitionMinimal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		from Style
		to   Style
		want string
	}{
		{"same", Style{Attrs: AttrBold}, Style{Attrs: AttrBold}, ""},
		{"add italic", Style{}, Style{Attrs: AttrItalic}, "\x1b[3m"},
		{"drop italic", Style{Attrs: AttrItalic}, Style{}, "\x1b[23m"},
		{"italic to bold", Style{Attrs: AttrItalic}, Style{Attrs: AttrBold}, "\x1b[23;1m"},
		{
			"bold in italic pops to italic",
			Style{Attrs: AttrItalic | AttrBold},
			Style{Attrs: AttrItalic},
			"\x1b[22m",
		},
		{"set color", Style{}, Style{Fg: 120}, "\x1b[38;5;120m"},
		{"change color", Style{Fg: 10}, Style{Fg: 20}, "\x1b[38;5;20m"},
		{"clear color", Style{Fg: 10}, Style{}, "\x1b[39m"},
		{
			"attr and color together",
			Style{Attrs: AttrBold, Fg: 100},
			Style{Attrs: AttrStrike},
			"\x1b[22;9;39m",
		},
	}
	for _, tc := range tests {
		got := string(appendTransition(nil, tc.from, tc.to))
		if got != tc.want {
			t.Fatalf("%s: transition = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestAppendTransitionSharedIntensityCode(t *testing.T) {
	t.Parallel()
	// SGR 22 turns off both bold and dim, so dropping one must re-enable
	// the other in the same sequence.
	tests := []struct {
		name string
		from Style
		to   Style
		want string
	}{
		{"drop bold keep dim", Style{Attrs: AttrBold | AttrDim}, Style{Attrs: AttrDim}, "\x1b[22;2m"},
		{"drop dim keep bold", Style{Attrs: AttrBold | AttrDim}, Style{Attrs: AttrBold}, "\x1b[22;1m"},
		{"bold to dim", Style{Attrs: AttrBold}, Style{Attrs: AttrDim}, "\x1b[22;2m"},
		{"dim to bold", Style{Attrs: AttrDim}, Style{Attrs: AttrBold}, "\x1b[22;1m"},
		{"drop both", Style{Attrs: AttrBold | AttrDim}, Style{}, "\x1b[22m"},
	}
	for _, tc := range tests {
		got := string(appendTransition(nil, tc.from, tc.to))
		if got != tc.want {
			t.Fatalf("%s: transition = %q, want %q", tc.name, got, tc.want)
		}
	}
}
