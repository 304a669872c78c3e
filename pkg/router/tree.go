package router

import "strings"

// node is a node in the segment trie.
type node struct {
	// static are literal children keyed by segment text
	static map[string]*node

	// dynamic is the single-component child shared by :param and *
	dynamic *node

	// catchAll is the catch-all child (**)
	catchAll *node

	// entries are routes terminating here, in registration order
	entries []*entry
}

// entry is one registered route at a terminal node.
type entry struct {
	name    string
	route   *Route
	handler Handler
	seq     int
}

// acceptFunc lets the router veto a terminal candidate, e.g. when a typed
// parameter fails its hint. Rejected candidates cause backtracking.
type acceptFunc func(e *entry, values []string) bool

func newNode() *node {
	return &node{}
}

// staticChild adds or retrieves a literal child.
func (n *node) staticChild(text string) *node {
	if n.static == nil {
		n.static = make(map[string]*node)
	}
	child, ok := n.static[text]
	if !ok {
		child = newNode()
		n.static[text] = child
	}
	return child
}

// dynamicChild adds or retrieves the single-component child.
func (n *node) dynamicChild() *node {
	if n.dynamic == nil {
		n.dynamic = newNode()
	}
	return n.dynamic
}

// catchAllChild adds or retrieves the catch-all child.
func (n *node) catchAllChild() *node {
	if n.catchAll == nil {
		n.catchAll = newNode()
	}
	return n.catchAll
}

// insert adds e under its pattern. A registration whose pattern is
// identical to an existing one replaces it in place and the replaced entry
// is returned. Otherwise e is appended behind earlier registrations.
func (n *node) insert(e *entry) (replaced *entry) {
	current := n
	for _, seg := range e.route.pattern.segments {
		switch seg.Kind {
		case Literal:
			current = current.staticChild(seg.Text)
		case Param, Wildcard:
			current = current.dynamicChild()
		case CatchAll:
			current = current.catchAllChild()
		}
	}

	key := e.route.pattern.String()
	for i, existing := range current.entries {
		if existing.route.pattern.String() == key {
			current.entries[i] = e
			return existing
		}
	}
	current.entries = append(current.entries, e)
	return nil
}

// lookup finds the best entry for the path components. Fixed-depth
// patterns are tried first; catch-alls only when none of them matches the
// whole path. Values are the captured components in pattern order.
func (n *node) lookup(segments []string, accept acceptFunc) (*entry, []string) {
	values := make([]string, 0, len(segments))
	if e, vals := n.match(segments, values, false, accept); e != nil {
		return e, vals
	}
	return n.match(segments, values[:0], true, accept)
}

// match walks the trie: static before dynamic before catch-all, with
// backtracking on failure.
func (n *node) match(segments, values []string, catchAll bool, accept acceptFunc) (*entry, []string) {
	if len(segments) == 0 {
		if e := n.pick(values, accept); e != nil {
			return e, values
		}
		return nil, nil
	}

	segment := segments[0]
	remaining := segments[1:]

	// Try exact match first
	if child, ok := n.static[segment]; ok {
		if e, vals := child.match(remaining, values, catchAll, accept); e != nil {
			return e, vals
		}
	}

	// Try single-component match
	if n.dynamic != nil {
		if e, vals := n.dynamic.match(remaining, append(values, segment), catchAll, accept); e != nil {
			return e, vals
		}
	}

	// Try catch-all match
	if catchAll && n.catchAll != nil {
		vals := append(values, strings.Join(segments, "/"))
		if e := n.catchAll.pick(vals, accept); e != nil {
			return e, vals
		}
	}

	return nil, nil
}

// pick returns the first acceptable entry in registration order.
func (n *node) pick(values []string, accept acceptFunc) *entry {
	for _, e := range n.entries {
		if accept == nil || accept(e, values) {
			return e
		}
	}
	return nil
}

// walk visits every entry in the trie.
func (n *node) walk(fn func(e *entry)) {
	for _, e := range n.entries {
		fn(e)
	}
	for _, child := range n.static {
		child.walk(fn)
	}
	if n.dynamic != nil {
		n.dynamic.walk(fn)
	}
	if n.catchAll != nil {
		n.catchAll.walk(fn)
	}
}
