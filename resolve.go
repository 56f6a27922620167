package sani

// pendingDelim is a delimiter run that may still open a span. It sits in the
// resolver's working list as a position marker and falls back to literal
// text if nothing ever closes it.
type pendingDelim struct {
	delim byte
	count int
}

func (*pendingDelim) inlineNode() {}

// openDelim records one open candidate: its delimiter byte and the position
// of its marker in the working list.
type openDelim struct {
	delim byte
	pos   int
}

// resolver turns one paragraph's tokens into inline nodes with an explicit
// delimiter stack: innermost-first matching, greedy closure, partial run
// consumption. It never fails; unmatched markup degrades to literal text.
type resolver struct {
	out   []Inline
	stack []openDelim

	outArr   [64]Inline
	stackArr [16]openDelim
}

func (r *resolver) reset() {
	if r.out == nil {
		r.out = r.outArr[:0]
		r.stack = r.stackArr[:0]
	}
	for i := range r.out {
		r.out[i] = nil
	}
	r.out = r.out[:0]
	r.stack = r.stack[:0]
}

// resolve consumes one paragraph's worth of tokens. Paragraph break tokens
// must not appear; callers split on them first.
func (r *resolver) resolve(tokens []Token) []Inline {
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenText:
			r.appendText(tok.Text)
		case TokenSoftBreak:
			r.out = append(r.out, &SoftBreak{})
		case TokenHardBreak:
			r.out = append(r.out, &HardBreak{})
		case TokenDelimiter:
			r.delimiter(tok)
		}
	}
	nodes := literalizePending(r.out)
	out := make([]Inline, len(nodes))
	copy(out, nodes)
	return out
}

func (r *resolver) appendText(s string) {
	if s == "" {
		return
	}
	if n := len(r.out); n > 0 {
		if t, ok := r.out[n-1].(*Text); ok {
			t.Content += s
			return
		}
	}
	r.out = append(r.out, &Text{Content: s})
}

// delimiter applies the matching rules to one run: close against the nearest
// same-character opener while possible (closing wins over opening), then
// push any remainder as a new candidate, or fall back to literal text.
func (r *resolver) delimiter(tok Token) {
	count := tok.Count
	if tok.CanClose {
		for count > 0 {
			k := r.findOpener(tok.Delim)
			if k < 0 {
				break
			}
			count = r.close(k, count)
		}
	}
	if count == 0 {
		return
	}
	if tok.CanOpen {
		r.stack = append(r.stack, openDelim{delim: tok.Delim, pos: len(r.out)})
		r.out = append(r.out, &pendingDelim{delim: tok.Delim, count: count})
		return
	}
	r.appendText(delimString(tok.Delim, count))
}

func (r *resolver) findOpener(delim byte) int {
	for k := len(r.stack) - 1; k >= 0; k-- {
		if r.stack[k].delim == delim {
			return k
		}
	}
	return -1
}

// close matches the opener at stack index k against a closer run of
// closerCount units and returns the units the closer has left. Candidates
// opened after the matched opener can no longer reach outside the new span
// and are dropped from the stack; their markers turn literal with the span.
func (r *resolver) close(k int, closerCount int) int {
	entry := r.stack[k]
	opener := r.out[entry.pos].(*pendingDelim)
	r.stack = r.stack[:k]

	start := entry.pos + 1
	if start == len(r.out) {
		// Nothing between opener and closer: literal passthrough.
		r.out[entry.pos] = &Text{Content: delimString(opener.delim, opener.count)}
		return closerCount
	}
	children := make([]Inline, len(r.out)-start)
	copy(children, r.out[start:])
	children = literalizePending(children)

	var node Inline
	if opener.delim == '~' {
		node = &Strikethrough{Children: children}
		r.out = r.out[:entry.pos]
		closerCount = 0
	} else {
		units := 1
		if opener.count >= 2 && closerCount >= 2 {
			units = 2
		}
		if units == 2 {
			node = &Strong{Children: children}
		} else {
			node = &Emphasis{Children: children}
		}
		opener.count -= units
		closerCount -= units
		if opener.count > 0 {
			r.out = r.out[:start]
			r.stack = append(r.stack, entry)
		} else {
			r.out = r.out[:entry.pos]
		}
	}
	r.out = append(r.out, node)
	return closerCount
}

// literalizePending rewrites leftover markers as literal text and merges
// adjacent text nodes, in place.
func literalizePending(nodes []Inline) []Inline {
	w := 0
	for _, n := range nodes {
		if pd, ok := n.(*pendingDelim); ok {
			n = &Text{Content: delimString(pd.delim, pd.count)}
		}
		if t, ok := n.(*Text); ok && w > 0 {
			if prev, ok := nodes[w-1].(*Text); ok {
				prev.Content += t.Content
				continue
			}
		}
		nodes[w] = n
		w++
	}
	return nodes[:w]
}
