package scldiff

import (
	"fmt"
	"strings"
)

// excluded reports whether n never participates in equivalence under p:
// anything that isn't an element, and private elements along with their
// descendants unless privates are considered
func excluded(n Node, p Policy) bool {
	if !isElement(n) {
		return true
	}
	return !p.ConsiderPrivates && underPrivate(n)
}

// selfShape builds the shape of n without any child information. Defaults
// are substituted into a fresh attribute slice, n is never modified
func selfShape(n Node, r Rule, p Policy) Shape {
	s := Shape{Name: canonicalName(n.Name())}
	for _, a := range r.Defaults(n.Attrs()) {
		if r.IncludeAttr(a, p) {
			s.Attrs = append(s.Attrs, a)
		}
	}
	if r.Text() {
		s.Text, s.HasText = textContent(n)
	}
	return s
}

// includedChildren lists the children of n that contribute to its child
// digest, in document order
func includedChildren(n Node, r Rule, p Policy) []Node {
	var kids []Node
	for _, ch := range n.Children() {
		if !isElement(ch) {
			continue
		}
		if isPrivate(ch) && !p.ConsiderPrivates {
			continue
		}
		if r.IncludeChild(ch, p) {
			kids = append(kids, ch)
		}
	}
	return kids
}

// textContent concatenates the direct text & CDATA children of n. whitespace
// only segments are dropped & the rest are trimmed, so indentation never
// matters. ok is false when no text remains
func textContent(n Node) (text string, ok bool) {
	var b strings.Builder
	for _, ch := range n.Children() {
		if k := ch.Kind(); k != TextNode && k != CDataNode {
			continue
		}
		seg := strings.TrimSpace(ch.Data())
		if seg == "" {
			continue
		}
		b.WriteString(seg)
		ok = true
	}
	return b.String(), ok
}

// Normalize produces the canonical shape of n under p. The shape's child
// digest covers every included descendant. ok is false when n is excluded:
// comments, processing instructions, text & private content when privates
// aren't considered. Depth & size limits only apply to HashTree
func Normalize(n Node, p Policy, opts ...Option) (s *Shape, ok bool) {
	if n == nil || excluded(n, p) {
		return nil, false
	}
	_, s = walk(n, p, opts)
	return s, true
}

// Hash fingerprints n & everything it includes under p. Two nodes that are
// equivalent under p always hash the same. ok is false when n is excluded.
// Hash(n) equals the Rolled digest HashTree records for n
func Hash(n Node, p Policy, opts ...Option) (d Digest, ok bool) {
	if n == nil || excluded(n, p) {
		return 0, false
	}
	root, _ := walk(n, p, opts)
	return root.Rolled, true
}

// walk hashes the subtree at n with limits & cancellation switched off.
// nothing else fails a walk, so an error here is a bug
func walk(n Node, p Policy, opts []Option) (*Entry, *Shape) {
	w := newWalker(unbounded(newConfig(p, opts)), nil)
	root, err := w.run(n)
	if err != nil {
		panic(fmt.Sprintf("scldiff: unbounded walk of %s failed: %s", n.Name(), err))
	}
	return root, w.rootShape
}

// LinearHash fingerprints a list of sibling nodes by their own shapes,
// ignoring descendants entirely. Excluded nodes and elements in namespaces
// p doesn't consider are skipped
func LinearHash(nodes []Node, p Policy, opts ...Option) Digest {
	cfg := newConfig(p, opts)
	var ds []Digest
	for _, n := range nodes {
		if excluded(n, p) {
			continue
		}
		name := n.Name()
		if !isPrimary(name.Space) && !p.considers(name.Space) {
			continue
		}
		s := selfShape(n, cfg.Rules.Lookup(name), p)
		ds = append(ds, HashShape(&s))
	}
	return combine(ds, false)
}
