package route

import (
	"sort"
	"strings"
)

// node is one position in the route trie. Its children are tried in the
// order statics, matchers, mixed, dynamic, wildcard.
type node struct {
	statics  map[string]*node
	matchers []edge
	mixed    []edge
	dynamic  *node
	wildcard *node

	// paramName is the parameter this node binds when reached through a
	// non-static edge.
	paramName string

	store   *Store
	pattern string
}

// edge is an ordered child keyed by its raw segment, e.g. ":id=number" or "file-:name".
type edge struct {
	segment segment
	node    *node
}

func findEdge(edges []edge, raw string) *node {
	for i := range edges {
		if edges[i].segment.raw == raw {
			return edges[i].node
		}
	}
	return nil
}

func (n *node) staticChild(s string) *node {
	next, ok := n.statics[s]
	if !ok {
		if n.statics == nil {
			n.statics = make(map[string]*node)
		}
		next = &node{}
		n.statics[s] = next
	}
	return next
}

func (n *node) matcherChild(seg segment) *node {
	if next := findEdge(n.matchers, seg.raw); next != nil {
		return next
	}
	next := &node{paramName: seg.param}
	n.matchers = append(n.matchers, edge{segment: seg, node: next})
	return next
}

func (n *node) mixedChild(seg segment) *node {
	if next := findEdge(n.mixed, seg.raw); next != nil {
		return next
	}
	next := &node{paramName: seg.param}
	n.mixed = append(n.mixed, edge{segment: seg, node: next})
	return next
}

// lookup follows static children along keys without creating nodes.
func (n *node) lookup(keys []string) *node {
	for _, key := range keys {
		if n = n.statics[key]; n == nil {
			return nil
		}
	}
	return n
}

func (n *node) dynamicChild(name string) *node {
	if n.dynamic == nil {
		n.dynamic = &node{paramName: name}
	}
	return n.dynamic
}

func (n *node) wildcardChild(name string) *node {
	if n.wildcard == nil {
		n.wildcard = &node{paramName: name}
	}
	return n.wildcard
}

// match returns the terminal node for path or nil. Bindings are written
// to params only once a branch has matched completely, so abandoned
// branches leave no trace.
func (n *node) match(path []string, params Params, m matchers) *node {
	if len(path) == 0 {
		if n.store != nil {
			return n
		}
		if n.wildcard != nil && n.wildcard.store != nil {
			params.bind(n.wildcard.paramName, "")
			return n.wildcard
		}
		return nil
	}
	first, rest := path[0], path[1:]

	if child, ok := n.statics[first]; ok {
		if hit := child.match(rest, params, m); hit != nil {
			return hit
		}
	}
	for _, e := range n.matchers {
		if !m.test(e.segment.matcher, first) {
			continue
		}
		if hit := e.node.match(rest, params, m); hit != nil {
			params.bind(e.node.paramName, first)
			return hit
		}
	}
	for _, e := range n.mixed {
		value, ok := strings.CutPrefix(first, e.segment.prefix)
		if !ok || value == "" {
			continue
		}
		if hit := e.node.match(rest, params, m); hit != nil {
			params.bind(e.node.paramName, value)
			return hit
		}
	}
	if n.dynamic != nil {
		if hit := n.dynamic.match(rest, params, m); hit != nil {
			params.bind(n.dynamic.paramName, first)
			return hit
		}
	}
	if n.wildcard != nil && n.wildcard.store != nil {
		params.bind(n.wildcard.paramName, strings.Join(path, "/"))
		return n.wildcard
	}
	return nil
}

// walk visits every node carrying a store, parents before children and
// children in match precedence. Static children are visited in key order.
func (n *node) walk(visit func(*node)) {
	if n.store != nil {
		visit(n)
	}
	keys := make([]string, 0, len(n.statics))
	for k := range n.statics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		n.statics[k].walk(visit)
	}
	for _, e := range n.matchers {
		e.node.walk(visit)
	}
	for _, e := range n.mixed {
		e.node.walk(visit)
	}
	if n.dynamic != nil {
		n.dynamic.walk(visit)
	}
	if n.wildcard != nil {
		n.wildcard.walk(visit)
	}
}
