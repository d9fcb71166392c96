package validator

import (
	"fmt"
	"strings"
)

// DefaultPropertySeparator joins chain segments when no separator is configured.
const DefaultPropertySeparator = "."

type chainNode struct {
	parent  *chainNode
	segment string
	// indexer text attached by AddIndexer, rendered as-is
	suffix string
	depth  int
}

func (n *chainNode) text() string { return n.segment + n.suffix }

// PropertyChain is the path from the root instance to the property being validated,
// for example "Address.City" or "Orders[2].Sku".
//
// Chains are immutable values. Add, AddIndexer and Prepend return a new chain that shares
// the unchanged prefix, so a child context can extend its parent's chain without copying it
// and without affecting it.
type PropertyChain struct {
	tail      *chainNode
	separator string
}

// NewPropertyChain builds a chain from the given segments. Empty segments are ignored.
func NewPropertyChain(segments ...string) PropertyChain {
	var c PropertyChain
	for _, s := range segments {
		c = c.Add(s)
	}
	return c
}

// WithSeparator returns a copy of the chain rendered with sep between segments.
func (c PropertyChain) WithSeparator(sep string) PropertyChain {
	c.separator = sep
	return c
}

// Separator returns the separator used by String.
func (c PropertyChain) Separator() string {
	if c.separator == "" {
		return DefaultPropertySeparator
	}
	return c.separator
}

// Add appends a member name. Adding an empty name returns the chain unchanged.
func (c PropertyChain) Add(segment string) PropertyChain {
	if segment == "" {
		return c
	}
	depth := 1
	if c.tail != nil {
		depth = c.tail.depth + 1
	}
	c.tail = &chainNode{parent: c.tail, segment: segment, depth: depth}
	return c
}

// AddPath appends a dotted member path such as "Address.City" one member per segment.
// Indexers written inline ("Lines[0].Sku") stay attached to their member.
func (c PropertyChain) AddPath(path string) PropertyChain {
	for _, member := range strings.Split(path, ".") {
		c = c.Add(member)
	}
	return c
}

// AddIndexer attaches an indexer to the last segment. With useDefaultFormat the indexer
// is rendered as "[i]"; otherwise its text is appended as-is and never escaped. On an
// empty chain the indexer becomes the first segment.
func (c PropertyChain) AddIndexer(indexer any, useDefaultFormat bool) PropertyChain {
	s := fmt.Sprint(indexer)
	if useDefaultFormat {
		s = "[" + s + "]"
	}
	if c.tail == nil {
		c.tail = &chainNode{suffix: s, depth: 1}
		return c
	}
	t := c.tail
	c.tail = &chainNode{parent: t.parent, segment: t.segment, suffix: t.suffix + s, depth: t.depth}
	return c
}

// Prepend returns a chain made of parent's segments followed by c's segments.
// The result keeps c's separator.
func (c PropertyChain) Prepend(parent PropertyChain) PropertyChain {
	out := parent
	out.separator = c.separator
	for _, n := range c.nodes() {
		depth := 1
		if out.tail != nil {
			depth = out.tail.depth + 1
		}
		out.tail = &chainNode{parent: out.tail, segment: n.segment, suffix: n.suffix, depth: depth}
	}
	return out
}

func (c PropertyChain) nodes() []*chainNode {
	if c.tail == nil {
		return nil
	}
	out := make([]*chainNode, c.tail.depth)
	for n := c.tail; n != nil; n = n.parent {
		out[n.depth-1] = n
	}
	return out
}

// Segments returns the chain segments from root to leaf, indexers included.
func (c PropertyChain) Segments() []string {
	nodes := c.nodes()
	if nodes == nil {
		return nil
	}
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.text()
	}
	return out
}

// Len returns the number of segments.
func (c PropertyChain) Len() int {
	if c.tail == nil {
		return 0
	}
	return c.tail.depth
}

// Last returns the leaf segment, or "" for an empty chain.
func (c PropertyChain) Last() string {
	if c.tail == nil {
		return ""
	}
	return c.tail.text()
}

// IsChildChainOf reports whether parent's segments are a prefix of c's segments.
func (c PropertyChain) IsChildChainOf(parent PropertyChain) bool {
	if parent.Len() > c.Len() {
		return false
	}
	n := c.tail
	for n != nil && n.depth > parent.Len() {
		n = n.parent
	}
	p := parent.tail
	for n != nil && p != nil {
		if n == p {
			return true
		}
		if n.segment != p.segment || n.suffix != p.suffix {
			return false
		}
		n, p = n.parent, p.parent
	}
	return n == nil && p == nil
}

// BuildPropertyName renders the chain extended with the member path name without
// modifying c.
func (c PropertyChain) BuildPropertyName(name string) string {
	return c.AddPath(name).String()
}

// String renders the chain. Occurrences of the separator inside a member name are
// escaped with a backslash so segments never merge; indexer text is left as-is.
func (c PropertyChain) String() string {
	nodes := c.nodes()
	if len(nodes) == 0 {
		return ""
	}
	sep := c.Separator()
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		seg := n.segment
		if strings.Contains(seg, sep) {
			seg = strings.ReplaceAll(seg, sep, `\`+sep)
		}
		parts[i] = seg + n.suffix
	}
	return strings.Join(parts, sep)
}
