package scldiff

// NodeKind enumerates the node types a document tree can hold
type NodeKind uint8

const (
	// UnknownNode is the zero kind, never produced by a well-behaved host
	UnknownNode NodeKind = iota
	// ElementNode is a namespaced element with attributes & children
	ElementNode
	// TextNode is character data
	TextNode
	// CDataNode is a CDATA section
	CDataNode
	// CommentNode is an XML comment
	CommentNode
	// ProcInstNode is a processing instruction
	ProcInstNode
	// DocTypeNode is a document type declaration or other directive
	DocTypeNode
)

// String implements the fmt.Stringer interface for NodeKind
func (k NodeKind) String() string {
	switch k {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CDataNode:
		return "cdata"
	case CommentNode:
		return "comment"
	case ProcInstNode:
		return "procinst"
	case DocTypeNode:
		return "doctype"
	default:
		return "unknown"
	}
}

// Name is a namespace-qualified name. Space holds the namespace URI, never
// the prefix. An empty Space means "no namespace"
type Name struct {
	Space string
	Local string
}

// String renders the name in Clark notation: {space}local
func (n Name) String() string {
	if n.Space == "" {
		return n.Local
	}
	return "{" + n.Space + "}" + n.Local
}

// Attr is a single namespaced attribute
type Attr struct {
	Name  Name
	Value string
}

// Node is the read-only capability interface scldiff needs from a host
// document model. scldiff never mutates a Node.
//
// Element-only methods return zero values on other kinds, Data returns
// the character data of text & CDATA nodes. Hosts that cannot resolve an
// attribute or element namespace should report it as "" rather than fail
type Node interface {
	Kind() NodeKind
	Name() Name
	// attributes in document order
	Attrs() []Attr
	// children in document order, all kinds
	Children() []Node
	// nil for the root of a tree
	Parent() Node
	Data() string
}

const (
	// SCLNamespace is the primary namespace of substation configuration
	// documents. Elements in this namespace (or in no namespace at all) are
	// always considered
	SCLNamespace = "http://www.iec.ch/61850/2003/SCL"
	// XMLNSNamespace is the namespace namespace declarations live in
	XMLNSNamespace = "http://www.w3.org/2000/xmlns/"
)

// isPrimary reports whether a namespace is the document's primary namespace
func isPrimary(space string) bool {
	return space == "" || space == SCLNamespace
}

// isElement is a nil-safe element check
func isElement(n Node) bool {
	return n != nil && n.Kind() == ElementNode
}

// isPrivate reports whether n is a private (vendor extension) element
func isPrivate(n Node) bool {
	if !isElement(n) {
		return false
	}
	name := n.Name()
	return name.Local == "Private" && isPrimary(name.Space)
}

// underPrivate walks n and its ancestors looking for a private element
func underPrivate(n Node) bool {
	for ; n != nil; n = n.Parent() {
		if isPrivate(n) {
			return true
		}
	}
	return false
}
