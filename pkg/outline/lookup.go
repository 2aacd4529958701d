package outline

import "github.com/leapstack-labs/xamlnav/pkg/token"

// ElementAt returns the deepest element whose span contains pos. Siblings are
// tried in document order and the first containing one is descended into.
// The returned pointer aliases the forest.
func ElementAt(forest Forest, pos token.Position) (*Element, bool) {
	path := PathAt(forest, pos)
	if len(path) == 0 {
		return nil, false
	}
	return path[len(path)-1], true
}

// PathAt returns the chain of elements from a root down to the deepest one
// containing pos. It is empty when no element contains pos.
func PathAt(forest Forest, pos token.Position) []*Element {
	var path []*Element
	level := []Element(forest)
	for {
		var next *Element
		for i := range level {
			if level[i].Span.Contains(pos) {
				next = &level[i]
				break
			}
		}
		if next == nil {
			return path
		}
		path = append(path, next)
		level = next.Children
	}
}
