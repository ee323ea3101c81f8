package scldiff

import "slices"

// Rule decides which parts of one element kind participate in equivalence.
// Rules must be pure: results may depend only on their arguments
type Rule interface {
	// IncludeAttr reports whether an attribute is part of the canonical shape
	IncludeAttr(a Attr, p Policy) bool
	// IncludeChild reports whether a child element contributes to the
	// parent's child digest
	IncludeChild(child Node, p Policy) bool
	// Text reports whether character data is part of the canonical shape
	Text() bool
	// Unordered reports whether child digests combine in sorted order
	// instead of document order
	Unordered() bool
	// Defaults returns the attribute set with default values substituted.
	// implementations must not modify attrs, returning a new slice when
	// anything changes
	Defaults(attrs []Attr) []Attr
}

// Default substitutes Value for an unprefixed attribute that is absent or
// empty
type Default struct {
	Attr  string
	Value string
	// only substitute when this attribute is present. empty means always
	When string
}

// Dependency treats Drops as absent whenever Attr is absent
type Dependency struct {
	Attr  string
	Drops []string
}

// TagRule is the table-driven Rule used for every built-in tag
type TagRule struct {
	// local names always relevant, regardless of namespace
	Attributes []string
	// every unprefixed attribute is relevant
	AllAttributes bool
	// local names of primary-namespace children that are relevant
	Children []string
	// every primary-namespace child is relevant
	AllChildren bool
	// character data is relevant
	IncludeText bool
	// "desc" is only considered when Policy.ConsiderDescriptions is set.
	// otherwise it's an ordinary attribute
	Descriptions bool
	// Private children are considered when Policy.ConsiderPrivates is set
	Privates bool
	// child order is irrelevant
	IgnoreOrder bool

	Substitute []Default
	Requires   []Dependency
}

var _ Rule = (*TagRule)(nil)

// IncludeAttr implements Rule
func (r *TagRule) IncludeAttr(a Attr, p Policy) bool {
	if p.considers(a.Name.Space) {
		return true
	}
	if r.Descriptions && a.Name.Space == "" && a.Name.Local == "desc" {
		return p.ConsiderDescriptions
	}
	if slices.Contains(r.Attributes, a.Name.Local) {
		return true
	}
	return r.AllAttributes && a.Name.Space == ""
}

// IncludeChild implements Rule
func (r *TagRule) IncludeChild(child Node, p Policy) bool {
	if !isElement(child) {
		return false
	}
	if isPrivate(child) {
		return p.ConsiderPrivates && (r.Privates || r.AllChildren)
	}
	name := child.Name()
	if p.considers(name.Space) {
		return true
	}
	if !isPrimary(name.Space) {
		return false
	}
	return r.AllChildren || slices.Contains(r.Children, name.Local)
}

// Text implements Rule
func (r *TagRule) Text() bool { return r.IncludeText }

// Unordered implements Rule
func (r *TagRule) Unordered() bool { return r.IgnoreOrder }

// Defaults implements Rule
func (r *TagRule) Defaults(attrs []Attr) []Attr {
	if len(r.Substitute) == 0 && len(r.Requires) == 0 {
		return attrs
	}

	out := make([]Attr, 0, len(attrs)+len(r.Substitute))
	for _, a := range attrs {
		if a.Name.Space == "" && r.dropped(attrs, a.Name.Local) {
			continue
		}
		out = append(out, a)
	}

	for _, d := range r.Substitute {
		if d.When != "" && !hasAttr(out, d.When) {
			continue
		}
		i := slices.IndexFunc(out, func(a Attr) bool {
			return a.Name.Space == "" && a.Name.Local == d.Attr
		})
		switch {
		case i < 0:
			out = append(out, Attr{Name: Name{Local: d.Attr}, Value: d.Value})
		case out[i].Value == "":
			out[i].Value = d.Value
		}
	}
	return out
}

// dropped reports whether a dependency removes local from attrs
func (r *TagRule) dropped(attrs []Attr, local string) bool {
	for _, dep := range r.Requires {
		if slices.Contains(dep.Drops, local) && !hasAttr(attrs, dep.Attr) {
			return true
		}
	}
	return false
}

func hasAttr(attrs []Attr, local string) bool {
	return slices.ContainsFunc(attrs, func(a Attr) bool {
		return a.Name.Space == "" && a.Name.Local == local
	})
}

// Registry maps element names to rules. A Registry must not be modified
// while traversals are using it
type Registry struct {
	rules    map[Name]Rule
	fallback Rule
	foreign  Rule
}

// NewRegistry creates an empty registry. fallback applies to primary
// namespace elements without a registered rule, foreign to every element
// outside the primary namespace without one
func NewRegistry(fallback, foreign Rule) *Registry {
	return &Registry{
		rules:    map[Name]Rule{},
		fallback: fallback,
		foreign:  foreign,
	}
}

// Register assigns a rule to an element name. Names in no namespace are
// registered in the primary namespace
func (reg *Registry) Register(name Name, r Rule) {
	reg.rules[canonicalName(name)] = r
}

// Lookup returns the rule for an element name, never nil
func (reg *Registry) Lookup(name Name) Rule {
	if r, ok := reg.rules[canonicalName(name)]; ok {
		return r
	}
	if isPrimary(name.Space) {
		return reg.fallback
	}
	return reg.foreign
}

// canonicalName maps both spellings of the primary namespace to one
func canonicalName(name Name) Name {
	if isPrimary(name.Space) {
		name.Space = SCLNamespace
	}
	return name
}

// sclName is shorthand for a primary namespace name
func sclName(local string) Name {
	return Name{Space: SCLNamespace, Local: local}
}

// falseFlags defaults each boolean attribute to "false"
func falseFlags(names ...string) []Default {
	ds := make([]Default, len(names))
	for i, n := range names {
		ds[i] = Default{Attr: n, Value: "false"}
	}
	return ds
}

// DefaultRegistry returns a new registry populated with the rules for
// substation configuration documents. Callers may Register additional
// rules on the returned value
func DefaultRegistry() *Registry {
	reg := NewRegistry(
		&TagRule{AllAttributes: true, AllChildren: true, IncludeText: true},
		&TagRule{AllAttributes: true, AllChildren: true, IncludeText: true},
	)

	reg.Register(sclName("EnumVal"), &TagRule{
		Attributes:   []string{"ord"},
		IncludeText:  true,
		Descriptions: true,
	})
	reg.Register(sclName("EnumType"), &TagRule{
		Children:     []string{"EnumVal", "Text"},
		IncludeText:  true,
		Descriptions: true,
		Privates:     true,
	})
	reg.Register(sclName("Private"), &TagRule{
		Attributes:  []string{"type", "source"},
		IncludeText: true,
	})
	reg.Register(sclName("Text"), &TagRule{
		Attributes:  []string{"source"},
		IncludeText: true,
	})

	withDefaults := func(local string, defaults []Default, requires ...Dependency) {
		reg.Register(sclName(local), &TagRule{
			AllAttributes: true,
			AllChildren:   true,
			IncludeText:   true,
			Substitute:    defaults,
			Requires:      requires,
		})
	}

	withDefaults("LNode", []Default{
		{Attr: "lnInst", Value: ""},
		{Attr: "iedName", Value: "None"},
		{Attr: "ldInst", Value: ""},
		{Attr: "prefix", Value: ""},
	})
	withDefaults("ExtRef", []Default{
		{Attr: "srcLNClass", Value: "LLN0", When: "srcCBName"},
		{Attr: "srcPrefix", Value: "", When: "srcCBName"},
		{Attr: "srcLNInst", Value: "", When: "srcCBName"},
	}, Dependency{
		Attr:  "srcCBName",
		Drops: []string{"srcLDInst", "srcPrefix", "srcLNClass", "srcLNInst"},
	})
	valueDefaults := []Default{
		{Attr: "valKind", Value: "Set"},
		{Attr: "valImport", Value: "false"},
	}
	withDefaults("DA", valueDefaults)
	withDefaults("BDA", valueDefaults)
	withDefaults("DAI", valueDefaults)
	withDefaults("ReportControl", []Default{
		{Attr: "buffered", Value: "false"},
		{Attr: "bufTime", Value: "0"},
		{Attr: "indexed", Value: "true"},
	})
	withDefaults("GSEControl", []Default{
		{Attr: "type", Value: "GOOSE"},
		{Attr: "fixedOffs", Value: "false"},
	})
	withDefaults("TrgOps", falseFlags("dchg", "qchg", "dupd", "period", "gi"))

	reg.Register(sclName("DataTypeTemplates"), &TagRule{
		AllAttributes: true,
		AllChildren:   true,
		IncludeText:   true,
		IgnoreOrder:   true,
	})

	return reg
}

// defaultRules backs traversals that don't supply OptionRules. it is never
// modified after initialization
var defaultRules = DefaultRegistry()
