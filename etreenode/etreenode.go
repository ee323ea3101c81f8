// Package etreenode adapts github.com/beevik/etree documents to the
// scldiff.Node interface. Wrappers are created on demand & read the host tree
// directly, nothing is copied or modified
package etreenode

import (
	"fmt"
	"io"
	"slices"

	"github.com/beevik/etree"
	"github.com/qri-io/scldiff"
)

// XMLNamespace is the namespace bound to the reserved "xml" prefix
const XMLNamespace = "http://www.w3.org/XML/1998/namespace"

// New wraps an element. A nil element yields a nil Node
func New(e *etree.Element) scldiff.Node {
	if e == nil {
		return nil
	}
	return element{e}
}

// Root wraps the root element of doc, nil when the document is empty
func Root(doc *etree.Document) scldiff.Node {
	return New(doc.Root())
}

// RootNamespaces lists the namespace URIs declared on the root element of doc
// in declaration order, minus the SCL namespace. Feeding the result to
// Policy.ExtraNamespaces considers every namespace the document declares
func RootNamespaces(doc *etree.Document) []string {
	root := doc.Root()
	if root == nil {
		return nil
	}
	var spaces []string
	for _, a := range root.Attr {
		if !isDecl(a) || a.Value == "" || a.Value == scldiff.SCLNamespace {
			continue
		}
		if !slices.Contains(spaces, a.Value) {
			spaces = append(spaces, a.Value)
		}
	}
	return spaces
}

// ParseString reads a document from a string
func ParseString(s string) (*etree.Document, error) {
	doc := newDocument()
	if err := doc.ReadFromString(s); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return doc, nil
}

// ParseFile reads a document from disk
func ParseFile(path string) (*etree.Document, error) {
	doc := newDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// ParseReader reads a document from r
func ParseReader(r io.Reader) (*etree.Document, error) {
	doc := newDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return doc, nil
}

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	return doc
}

// isDecl reports whether a is a namespace declaration
func isDecl(a etree.Attr) bool {
	return a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns")
}

// wrap converts any etree token to a Node
func wrap(t etree.Token) scldiff.Node {
	switch t := t.(type) {
	case *etree.Element:
		return element{t}
	case *etree.CharData:
		return charData{t}
	case *etree.Comment:
		return other{kind: scldiff.CommentNode, data: t.Data, parent: t.Parent()}
	case *etree.ProcInst:
		return other{kind: scldiff.ProcInstNode, data: t.Inst, parent: t.Parent()}
	case *etree.Directive:
		return other{kind: scldiff.DocTypeNode, data: t.Data, parent: t.Parent()}
	default:
		return other{kind: scldiff.UnknownNode, parent: t.Parent()}
	}
}

// parentOf wraps the parent of a token, nil at the document level
func parentOf(p *etree.Element) scldiff.Node {
	// the document itself is an element without a tag
	if p == nil || p.Tag == "" {
		return nil
	}
	return element{p}
}

type element struct {
	e *etree.Element
}

var _ scldiff.Node = element{}

func (n element) Kind() scldiff.NodeKind { return scldiff.ElementNode }

func (n element) Name() scldiff.Name {
	return scldiff.Name{Space: n.e.NamespaceURI(), Local: n.e.Tag}
}

func (n element) Attrs() []scldiff.Attr {
	if len(n.e.Attr) == 0 {
		return nil
	}
	attrs := make([]scldiff.Attr, len(n.e.Attr))
	for i := range n.e.Attr {
		attrs[i] = scldiff.Attr{Name: attrName(&n.e.Attr[i]), Value: n.e.Attr[i].Value}
	}
	return attrs
}

// attrName resolves the namespace of an attribute. unprefixed attributes are
// in no namespace, unresolvable prefixes are treated the same way
func attrName(a *etree.Attr) scldiff.Name {
	switch {
	case a.Space == "" && a.Key == "xmlns":
		return scldiff.Name{Space: scldiff.XMLNSNamespace, Local: "xmlns"}
	case a.Space == "xmlns":
		return scldiff.Name{Space: scldiff.XMLNSNamespace, Local: a.Key}
	case a.Space == "xml":
		return scldiff.Name{Space: XMLNamespace, Local: a.Key}
	case a.Space == "":
		return scldiff.Name{Local: a.Key}
	}
	return scldiff.Name{Space: a.NamespaceURI(), Local: a.Key}
}

func (n element) Children() []scldiff.Node {
	kids := make([]scldiff.Node, len(n.e.Child))
	for i, t := range n.e.Child {
		kids[i] = wrap(t)
	}
	return kids
}

func (n element) Parent() scldiff.Node { return parentOf(n.e.Parent()) }

func (n element) Data() string { return "" }

type charData struct {
	c *etree.CharData
}

func (n charData) Kind() scldiff.NodeKind {
	if n.c.IsCData() {
		return scldiff.CDataNode
	}
	return scldiff.TextNode
}

func (n charData) Name() scldiff.Name       { return scldiff.Name{} }
func (n charData) Attrs() []scldiff.Attr    { return nil }
func (n charData) Children() []scldiff.Node { return nil }
func (n charData) Parent() scldiff.Node     { return parentOf(n.c.Parent()) }
func (n charData) Data() string             { return n.c.Data }

// other covers the node kinds scldiff always excludes
type other struct {
	kind   scldiff.NodeKind
	data   string
	parent *etree.Element
}

func (n other) Kind() scldiff.NodeKind   { return n.kind }
func (n other) Name() scldiff.Name       { return scldiff.Name{} }
func (n other) Attrs() []scldiff.Attr    { return nil }
func (n other) Children() []scldiff.Node { return nil }
func (n other) Parent() scldiff.Node     { return parentOf(n.parent) }
func (n other) Data() string             { return n.data }
