package outline

import "github.com/leapstack-labs/xamlnav/pkg/token"

// node is an arena slot. Children are arena indices; a child index is always
// greater than its parent's because nodes are appended in document order.
type node struct {
	elem     Element
	children []int
}

// builder reconstructs nesting from a flat stream of open and close events.
type builder struct {
	nodes []node
	roots []int
	stack []int // indices of open elements, innermost last
}

// open records a start or self-closing tag. Property elements and
// definition tags produce no node; their content attaches to whatever is
// currently open.
func (b *builder) open(tag, rawAttrs string, start token.Position, name token.Span, end token.Position, selfClosing bool) {
	if skipped(tag) {
		return
	}

	attrs := ParseAttributes(rawAttrs)
	label, kind := Classify(tag, attrs)

	idx := len(b.nodes)
	b.nodes = append(b.nodes, node{elem: Element{
		TagName:     tag,
		Label:       label,
		Kind:        kind,
		Attributes:  attrs,
		Span:        token.Span{Start: start, End: end},
		NameSpan:    name,
		SelfClosing: selfClosing,
	}})

	if len(b.stack) == 0 {
		b.roots = append(b.roots, idx)
	} else {
		parent := b.stack[len(b.stack)-1]
		b.nodes[parent].children = append(b.nodes[parent].children, idx)
	}

	if !selfClosing {
		b.stack = append(b.stack, idx)
	}
}

// close handles an end tag. The stack is searched from the top for an open
// element with the same name; elements above the match are closed where the
// end tag starts, the match itself ends past the end tag's '>'. Closers for
// skipped tags or with no open counterpart change nothing.
func (b *builder) close(tag string, start, end token.Position) {
	if skipped(tag) {
		return
	}
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.nodes[b.stack[i]].elem.TagName != tag {
			continue
		}
		for j := len(b.stack) - 1; j > i; j-- {
			b.nodes[b.stack[j]].elem.Span.End = start
		}
		b.nodes[b.stack[i]].elem.Span.End = end
		b.stack = b.stack[:i]
		return
	}
}

// finish closes everything still open at eof and materializes the forest.
func (b *builder) finish(eof token.Position) Forest {
	for _, idx := range b.stack {
		b.nodes[idx].elem.Span.End = eof
	}
	b.stack = b.stack[:0]

	// Children have higher indices than parents, so a reverse sweep always
	// finds a node's children already built.
	built := make([]Element, len(b.nodes))
	for idx := len(b.nodes) - 1; idx >= 0; idx-- {
		n := b.nodes[idx]
		e := n.elem
		if len(n.children) > 0 {
			e.Children = make([]Element, len(n.children))
			for i, c := range n.children {
				e.Children[i] = built[c]
			}
		}
		built[idx] = e
	}

	forest := make(Forest, len(b.roots))
	for i, r := range b.roots {
		forest[i] = built[r]
	}
	return forest
}
