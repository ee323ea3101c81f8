package scldiff_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/qri-io/scldiff"
	"github.com/qri-io/scldiff/etreenode"
)

const (
	exampleNS = "https://example.org"
	dreamNS   = "http://www.dreaming.com/a/better/world"
	treesNS   = "http://green.com/trees/for/future"
)

const templates = `
<SCL xmlns:sxy="http://www.iec.ch/61850/2003/SCLcoordinates"
  xmlns="http://www.iec.ch/61850/2003/SCL"
  xmlns:scl="http://www.iec.ch/61850/2003/SCL"
  xmlns:expl="https://example.org" version="2007" revision="B" release="4">
  <Header id="Compare test"></Header>
  <DataTypeTemplates>
    <EnumType id="Example">
      <EnumVal ord="0">blocked</EnumVal>
      <EnumVal ord="1" expl:my="attr">on</EnumVal>
      <Private type="star" src="./cosmos"></Private>
      <Private type="dream" expl:probes="brain">
        <expl:MyElement myAttr="myVal" expl:AnotherAttr="ImportantStuff">
          <expl:AnotherElement myAttr="myVal" expl:AnotherAttr="ImportantStuff"></expl:AnotherElement>
        </expl:MyElement>
      </Private>
      <Text>Just saying you know, these can go in many places</Text>
    </EnumType>
    <EnumType id="Example2">
      <EnumVal ord="0">blocked</EnumVal>
      <EnumVal ord="1">on</EnumVal>
    </EnumType>
  </DataTypeTemplates>
</SCL>
`

func mustParse(t *testing.T, s string) *etree.Document {
	t.Helper()
	doc, err := etreenode.ParseString(s)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func mustFind(t *testing.T, doc *etree.Document, path string) *etree.Element {
	t.Helper()
	e := doc.FindElement(path)
	if e == nil {
		t.Fatalf("no element matches %q", path)
	}
	return e
}

func mustDigest(t *testing.T, e *etree.Element, p scldiff.Policy) scldiff.Digest {
	t.Helper()
	d, ok := scldiff.Hash(etreenode.New(e), p)
	if !ok {
		t.Fatalf("element %s is excluded", e.GetPath())
	}
	return d
}

// appendForeign adds a child element in ns, declaring the prefix on the
// child itself
func appendForeign(e *etree.Element, prefix, ns, tag string) *etree.Element {
	ch := e.CreateElement(prefix + ":" + tag)
	ch.CreateAttr("xmlns:"+prefix, ns)
	return ch
}

type mutation struct {
	description string
	policy      scldiff.Policy
	mutate      func(e *etree.Element)
	changes     bool
}

// runMutations hashes the element at path in two copies of templates, one of
// them mutated, and checks whether the digests differ
func runMutations(t *testing.T, path string, cases []mutation) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			before := mustFind(t, mustParse(t, templates), path)
			after := mustFind(t, mustParse(t, templates), path)
			c.mutate(after)

			changed := mustDigest(t, before, c.policy) != mustDigest(t, after, c.policy)
			if changed != c.changes {
				t.Errorf("expected digest change: %t, got: %t", c.changes, changed)
			}
		})
	}
}

func TestHashEnumVal(t *testing.T) {
	runMutations(t, "//EnumVal", []mutation{
		{"ord attribute", scldiff.Policy{}, func(e *etree.Element) {
			e.CreateAttr("ord", "2")
		}, true},
		{"text content", scldiff.Policy{}, func(e *etree.Element) {
			e.SetText("unblocked")
		}, true},
		{"disallowed scl attribute", scldiff.Policy{}, func(e *etree.Element) {
			e.CreateAttr("scl:randomthing", "2")
		}, false},
		{"unprefixed attribute outside the allowlist", scldiff.Policy{}, func(e *etree.Element) {
			e.CreateAttr("randomthing", "2")
		}, false},
		{"desc considered", scldiff.Policy{ConsiderDescriptions: true}, func(e *etree.Element) {
			e.CreateAttr("desc", "unblocked")
		}, true},
		{"desc not considered", scldiff.Policy{}, func(e *etree.Element) {
			e.CreateAttr("desc", "unblocked")
		}, false},
		{"foreign attribute", scldiff.Policy{}, func(e *etree.Element) {
			e.CreateAttr("xmlns:gr", treesNS)
			e.CreateAttr("gr:tree", "kauri")
		}, false},
		{"foreign attribute considered", scldiff.Policy{ExtraNamespaces: []string{treesNS}}, func(e *etree.Element) {
			e.CreateAttr("xmlns:gr", treesNS)
			e.CreateAttr("gr:tree", "kauri")
		}, true},
		{"whitespace around text", scldiff.Policy{}, func(e *etree.Element) {
			e.SetText("\n\t blocked \n")
		}, false},
		{"text split by a comment", scldiff.Policy{}, func(e *etree.Element) {
			e.SetText("bloc")
			e.CreateComment("split")
			e.CreateText("ked")
		}, false},
		{"text moved to cdata", scldiff.Policy{}, func(e *etree.Element) {
			e.SetText("")
			e.CreateCData("blocked")
		}, false},
	})
}

func TestHashPrivate(t *testing.T) {
	privates := scldiff.Policy{ConsiderPrivates: true}
	runMutations(t, "//Private", []mutation{
		{"type", privates, func(e *etree.Element) {
			e.CreateAttr("type", "NotVeryTypical")
		}, true},
		{"source", privates, func(e *etree.Element) {
			e.CreateAttr("source", "./galaxyB")
		}, true},
		{"text content", privates, func(e *etree.Element) {
			e.SetText("unblocked")
		}, true},
		{"considered foreign element", scldiff.Policy{ConsiderPrivates: true, ExtraNamespaces: []string{dreamNS}}, func(e *etree.Element) {
			appendForeign(e, "dr", dreamNS, "Dream").CreateAttr("dreamId", "001")
		}, true},
		{"considered foreign attribute name", scldiff.Policy{ConsiderPrivates: true, ExtraNamespaces: []string{dreamNS}}, func(e *etree.Element) {
			e.CreateAttr("xmlns:dr", dreamNS)
			e.CreateAttr("dr:Dream", "TimesGoneBy")
		}, true},
	})

	runMutations(t, "//Private[@type='dream']", []mutation{
		{"considered foreign attribute value", scldiff.Policy{ConsiderPrivates: true, ExtraNamespaces: []string{exampleNS}}, func(e *etree.Element) {
			e.CreateAttr("expl:probes", "ears")
		}, true},
		{"foreign attribute value", privates, func(e *etree.Element) {
			e.CreateAttr("expl:probes", "ears")
		}, false},
	})
}

func TestHashText(t *testing.T) {
	runMutations(t, "//Text", []mutation{
		{"source", scldiff.Policy{}, func(e *etree.Element) {
			e.CreateAttr("source", "https://truth.com")
		}, true},
	})
}

func TestHashEnumType(t *testing.T) {
	runMutations(t, "//EnumType", []mutation{
		{"EnumVal added", scldiff.Policy{}, func(e *etree.Element) {
			ch := e.SelectElement("EnumVal").Copy()
			ch.CreateAttr("ord", "3")
			e.AddChild(ch)
		}, true},
		{"Private added", scldiff.Policy{}, func(e *etree.Element) {
			e.CreateElement("Private").CreateAttr("type", "VeryPrivateDoNotLook")
		}, false},
		{"Private added & considered", scldiff.Policy{ConsiderPrivates: true}, func(e *etree.Element) {
			e.CreateElement("Private").CreateAttr("type", "VeryPrivateDoNotLook")
		}, true},
		{"comment added", scldiff.Policy{}, func(e *etree.Element) {
			e.CreateComment("You will never see this comment in a comparison!")
		}, false},
		{"processing instruction added", scldiff.Policy{}, func(e *etree.Element) {
			e.CreateProcInst("editor", "collapsed")
		}, false},
		{"foreign element", scldiff.Policy{}, func(e *etree.Element) {
			appendForeign(e, "dr", dreamNS, "Dream").CreateAttr("dreamId", "001")
		}, false},
		{"foreign element considered", scldiff.Policy{ExtraNamespaces: []string{dreamNS}}, func(e *etree.Element) {
			appendForeign(e, "dr", dreamNS, "Dream").CreateAttr("dreamId", "001")
		}, true},
		{"other namespace considered", scldiff.Policy{ExtraNamespaces: []string{dreamNS + "NotReally"}}, func(e *etree.Element) {
			appendForeign(e, "dr", dreamNS, "Dream").CreateAttr("dreamId", "001")
		}, false},
		{"desc considered", scldiff.Policy{ConsiderDescriptions: true}, func(e *etree.Element) {
			e.CreateAttr("desc", "unblocked")
		}, true},
		{"Text added", scldiff.Policy{}, func(e *etree.Element) {
			e.CreateElement("Text")
		}, true},
		{"child EnumVal changed", scldiff.Policy{}, func(e *etree.Element) {
			e.SelectElement("EnumVal").CreateAttr("ord", "73")
		}, true},
		{"child Private changed", scldiff.Policy{}, func(e *etree.Element) {
			e.SelectElement("Private").CreateAttr("type", "ANewType")
		}, false},
		{"child Private changed & considered", scldiff.Policy{ConsiderPrivates: true}, func(e *etree.Element) {
			e.SelectElement("Private").CreateAttr("type", "ANewType")
		}, true},
		{"child Text changed", scldiff.Policy{ConsiderPrivates: true}, func(e *etree.Element) {
			e.SelectElement("Text").SetText("Merry Christmas, my friends!")
		}, true},
		{"element inside a Private changed", scldiff.Policy{ExtraNamespaces: []string{exampleNS}}, func(e *etree.Element) {
			e.FindElement(".//MyElement").CreateAttr("myAttr", "3")
		}, false},
		{"element inside a Private changed & considered", scldiff.Policy{ConsiderPrivates: true, ExtraNamespaces: []string{exampleNS}}, func(e *etree.Element) {
			e.FindElement(".//MyElement").CreateAttr("myAttr", "3")
		}, true},
		{"id", scldiff.Policy{}, func(e *etree.Element) {
			e.CreateAttr("id", "Renamed")
		}, false},
	})
}

func TestHashForeignElement(t *testing.T) {
	p := scldiff.Policy{ConsiderPrivates: true, ExtraNamespaces: []string{exampleNS}}
	runMutations(t, "//MyElement", []mutation{
		{"attribute name", p, func(e *etree.Element) {
			e.CreateAttr("expl:new-attribute", "2")
		}, true},
		{"attribute value", p, func(e *etree.Element) {
			e.CreateAttr("myAttr", "3")
		}, true},
		{"attribute without a namespace", p, func(e *etree.Element) {
			e.CreateAttr("myAttrNonNamespace", "3")
		}, true},
		{"desc is an ordinary attribute", p, func(e *etree.Element) {
			e.CreateAttr("desc", "plain")
		}, true},
		{"text content", p, func(e *etree.Element) {
			e.SetText("Hello World")
		}, true},
		{"child text content", p, func(e *etree.Element) {
			e.ChildElements()[0].SetText("Hi Earthling")
		}, true},
		{"child cdata", p, func(e *etree.Element) {
			e.ChildElements()[0].CreateCData("A CDATA section with a tricksy &")
		}, true},
	})
}

func TestHashExcluded(t *testing.T) {
	doc := mustParse(t, templates)
	private := etreenode.New(mustFind(t, doc, "//Private"))
	if _, ok := scldiff.Hash(private, scldiff.Policy{}); ok {
		t.Error("expected Private to be excluded")
	}
	if _, ok := scldiff.Hash(etreenode.New(mustFind(t, doc, "//MyElement")), scldiff.Policy{ExtraNamespaces: []string{exampleNS}}); ok {
		t.Error("expected descendants of Private to be excluded")
	}
	if _, ok := scldiff.Hash(private, scldiff.Policy{ConsiderPrivates: true}); !ok {
		t.Error("expected Private to be included when considered")
	}
	if _, ok := scldiff.Hash(nil, scldiff.Policy{}); ok {
		t.Error("expected nil to be excluded")
	}
}

func TestHashIgnoresLimits(t *testing.T) {
	doc := mustParse(t, templates)
	root := etreenode.Root(doc)
	limits := []scldiff.Option{scldiff.OptionMaxDepth(1), scldiff.OptionMaxNodes(1)}

	if _, err := scldiff.HashTree(root, scldiff.Policy{}, limits...); err == nil {
		t.Fatal("expected limits to apply to HashTree")
	}
	idx, err := scldiff.HashTree(root, scldiff.Policy{})
	if err != nil {
		t.Fatal(err)
	}

	d, ok := scldiff.Hash(root, scldiff.Policy{}, limits...)
	if !ok {
		t.Fatal("expected root to be included")
	}
	if d != idx.Root().Rolled {
		t.Errorf("expected Hash to match the indexed root. %s != %s", d, idx.Root().Rolled)
	}
	if s, ok := scldiff.Normalize(root, scldiff.Policy{}, limits...); !ok || s.ChildCount == 0 {
		t.Errorf("expected a normalized root with children, got %v", s)
	}
}

func TestHashIsDeterministic(t *testing.T) {
	doc := mustParse(t, templates)
	p := scldiff.Policy{ConsiderPrivates: true, ConsiderDescriptions: true, ExtraNamespaces: []string{exampleNS}}
	first := mustDigest(t, doc.Root(), p)
	for i := 0; i < 10; i++ {
		if d := mustDigest(t, mustParse(t, templates).Root(), p); d != first {
			t.Fatalf("run %d: %s != %s", i, d, first)
		}
	}
}

func TestHashDocumentInvariance(t *testing.T) {
	cases := []struct {
		description string
		a, b        string
		policy      scldiff.Policy
		equal       bool
	}{
		{"attribute order",
			`<SCL><Header id="h" version="1" revision="A"/></SCL>`,
			`<SCL><Header revision="A" id="h" version="1"/></SCL>`,
			scldiff.Policy{}, true},
		{"indentation",
			`<SCL><Header id="h"/><Substation name="S1"><VoltageLevel name="V1"/></Substation></SCL>`,
			"<SCL>\n  <Header id=\"h\"/>\n  <Substation name=\"S1\">\n    <VoltageLevel name=\"V1\"/>\n  </Substation>\n</SCL>\n",
			scldiff.Policy{}, true},
		{"comments & processing instructions",
			`<SCL><Header id="h"/></SCL>`,
			`<?xml version="1.0"?><!-- generated --><SCL><?editor pos="1"?><Header id="h"><!-- note --></Header></SCL>`,
			scldiff.Policy{}, true},
		{"default namespace declared or not",
			`<SCL><Header id="h"/></SCL>`,
			`<SCL xmlns="http://www.iec.ch/61850/2003/SCL"><Header id="h"/></SCL>`,
			scldiff.Policy{}, true},
		{"prefixes don't matter, namespaces do",
			`<SCL xmlns:a="urn:ext"><a:Ext x="1"/></SCL>`,
			`<SCL xmlns:b="urn:ext"><b:Ext x="1"/></SCL>`,
			scldiff.Policy{ExtraNamespaces: []string{"urn:ext"}}, true},
		{"same prefix, different namespace",
			`<SCL xmlns:a="urn:ext"><a:Ext x="1"/></SCL>`,
			`<SCL xmlns:a="urn:other"><a:Ext x="1"/></SCL>`,
			scldiff.Policy{ExtraNamespaces: []string{"urn:ext", "urn:other"}}, false},
		{"ignored namespace",
			`<SCL><Header id="h"/></SCL>`,
			`<SCL xmlns:a="urn:ext"><a:Ext x="1"/><Header id="h" a:note="x"/></SCL>`,
			scldiff.Policy{}, true},
		{"description on generic element",
			`<SCL><Substation name="S1" desc="old"/></SCL>`,
			`<SCL><Substation name="S1" desc="new"/></SCL>`,
			scldiff.Policy{}, false},
		{"description on IED",
			`<SCL><IED name="I1" desc="old"/></SCL>`,
			`<SCL><IED name="I1" desc="new"/></SCL>`,
			scldiff.Policy{}, false},
		{"description on defaulted element",
			`<SCL><LNode lnClass="XCBR" desc="old"/></SCL>`,
			`<SCL><LNode lnClass="XCBR" desc="new"/></SCL>`,
			scldiff.Policy{}, false},
		{"enumeration description ignored",
			`<SCL><DataTypeTemplates><EnumType id="E" desc="old"><EnumVal ord="0" desc="a">x</EnumVal></EnumType></DataTypeTemplates></SCL>`,
			`<SCL><DataTypeTemplates><EnumType id="E" desc="new"><EnumVal ord="0" desc="b">x</EnumVal></EnumType></DataTypeTemplates></SCL>`,
			scldiff.Policy{}, true},
		{"enumeration description considered",
			`<SCL><DataTypeTemplates><EnumType id="E" desc="old"><EnumVal ord="0">x</EnumVal></EnumType></DataTypeTemplates></SCL>`,
			`<SCL><DataTypeTemplates><EnumType id="E" desc="new"><EnumVal ord="0">x</EnumVal></EnumType></DataTypeTemplates></SCL>`,
			scldiff.Policy{ConsiderDescriptions: true}, false},
		{"explicit defaults",
			`<SCL><LNode lnClass="XCBR" lnInst="1"/><DA name="stVal" bType="BOOLEAN"/></SCL>`,
			`<SCL><LNode lnClass="XCBR" lnInst="1" iedName="None" prefix=""/><DA name="stVal" bType="BOOLEAN" valKind="Set" valImport="false"/></SCL>`,
			scldiff.Policy{}, true},
		{"non-default value",
			`<SCL><LNode lnClass="XCBR" lnInst="1"/></SCL>`,
			`<SCL><LNode lnClass="XCBR" lnInst="1" iedName="IED1"/></SCL>`,
			scldiff.Policy{}, false},
		{"child order",
			`<SCL><Substation name="S1"/><Substation name="S2"/></SCL>`,
			`<SCL><Substation name="S2"/><Substation name="S1"/></SCL>`,
			scldiff.Policy{}, false},
		{"template order",
			`<SCL><DataTypeTemplates><EnumType id="A"><EnumVal ord="0">a</EnumVal></EnumType><EnumType id="B"><EnumVal ord="0">b</EnumVal></EnumType></DataTypeTemplates></SCL>`,
			`<SCL><DataTypeTemplates><EnumType id="B"><EnumVal ord="0">b</EnumVal></EnumType><EnumType id="A"><EnumVal ord="0">a</EnumVal></EnumType></DataTypeTemplates></SCL>`,
			scldiff.Policy{}, true},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			a := mustDigest(t, mustParse(t, c.a).Root(), c.policy)
			b := mustDigest(t, mustParse(t, c.b).Root(), c.policy)
			if (a == b) != c.equal {
				t.Errorf("expected equal digests: %t. a: %s b: %s", c.equal, a, b)
			}
		})
	}
}

func TestChildSensitivity(t *testing.T) {
	a := mustParse(t, templates)
	b := mustParse(t, templates)
	mustFind(t, b, "//EnumType[@id='Example2']/EnumVal").CreateAttr("ord", "9")

	for _, path := range []string{"/SCL", "/SCL/DataTypeTemplates", "//EnumType[@id='Example2']", "//EnumType[@id='Example2']/EnumVal"} {
		if mustDigest(t, mustFind(t, a, path), scldiff.Policy{}) == mustDigest(t, mustFind(t, b, path), scldiff.Policy{}) {
			t.Errorf("%s: expected digest to change", path)
		}
	}
	for _, path := range []string{"/SCL/Header", "//EnumType[@id='Example']"} {
		if mustDigest(t, mustFind(t, a, path), scldiff.Policy{}) != mustDigest(t, mustFind(t, b, path), scldiff.Policy{}) {
			t.Errorf("%s: expected digest to stay the same", path)
		}
	}
}

func linearHash(t *testing.T, s string, spaces ...string) scldiff.Digest {
	t.Helper()
	root := etreenode.Root(mustParse(t, s))
	return scldiff.LinearHash(root.Children(), scldiff.Policy{ExtraNamespaces: spaces})
}

func TestLinearHash(t *testing.T) {
	const (
		welearn  = "http://www.welearn.com"
		welearn2 = "http://www.welearn2.com"
	)
	cases := []struct {
		description string
		a, b        string
		spaces      []string
		equal       bool
	}{
		{"same nodes",
			`<root><node1 test="hi"/><node2/></root>`,
			`<root><node1 test="hi"/><node2/></root>`,
			nil, true},
		{"different tag names",
			`<root><node1/><node2/></root>`,
			`<root><node9/><node2/></root>`,
			nil, false},
		{"different attribute names",
			`<root><node1 first="hey"/><node2/></root>`,
			`<root><node1 firsT="hey"/><node2/></root>`,
			nil, false},
		{"different attribute values",
			`<root><node1 first="hey"/><node2/></root>`,
			`<root><node1 first="jude"/><node2/></root>`,
			nil, false},
		{"children aren't considered",
			`<root><node1 first="hey"><test1/></node1><node2/></root>`,
			`<root><node1 first="hey"></node1><node2/></root>`,
			nil, true},
		{"comments aren't included",
			`<root><node1/><node2/><!-- This is a comment --><node3/></root>`,
			`<root><node1/><node2/><node3/></root>`,
			nil, true},
		{"namespaces aren't included by default",
			`<root xmlns:wl="http://www.welearn.com"><node1/><node2/><wl:node2a/><node3/></root>`,
			`<root><node1/><node2/><node3/></root>`,
			nil, true},
		{"the primary namespace is included by default",
			`<root xmlns="http://www.iec.ch/61850/2003/SCL"><node1/><node2/><node3/></root>`,
			`<root xmlns="http://www.iec.ch/61850/2003/SCL"><nodex/><node2/><node3/></root>`,
			nil, false},
		{"namespaces are included when required",
			`<root xmlns:wl="http://www.welearn.com"><node1/><node2/><wl:node2/><node3/></root>`,
			`<root><node1/><node2/><node3/></root>`,
			[]string{welearn}, false},
		{"element namespaces are distinguished",
			`<root xmlns:wl="http://www.welearn.com" xmlns:wl2="http://www.welearn2.com"><node1/><node2/><wl:node2/><node3/></root>`,
			`<root xmlns:wl="http://www.welearn.com" xmlns:wl2="http://www.welearn2.com"><node1/><node2/><wl2:node2/><node3/></root>`,
			[]string{welearn, welearn2}, false},
		{"attribute namespaces are distinguished",
			`<root xmlns:wl="http://www.welearn.com" xmlns:wl2="http://www.welearn2.com"><node1 wl:test="great"/><node2/><node3/></root>`,
			`<root xmlns:wl="http://www.welearn.com" xmlns:wl2="http://www.welearn2.com"><node1 wl2:test="great"/><node2/><node3/></root>`,
			[]string{welearn, welearn2}, false},
		{"order matters",
			`<root><node1/><node2/></root>`,
			`<root><node2/><node1/></root>`,
			nil, false},
	}

	for _, c := range cases {
		a, b := linearHash(t, c.a, c.spaces...), linearHash(t, c.b, c.spaces...)
		if (a == b) != c.equal {
			t.Errorf("%s: expected equal digests: %t. a: %s b: %s", c.description, c.equal, a, b)
		}
	}
}

func TestNormalize(t *testing.T) {
	doc := mustParse(t, `<SCL xmlns="http://www.iec.ch/61850/2003/SCL" xmlns:a="urn:ext">
	<LNode a:x="1" lnClass="XCBR" desc="breaker"> <Private type="t"/> </LNode>
</SCL>`)
	n := etreenode.New(mustFind(t, doc, "//LNode"))

	s, ok := scldiff.Normalize(n, scldiff.Policy{})
	if !ok {
		t.Fatal("expected LNode to be included")
	}
	if s.Name != (scldiff.Name{Space: scldiff.SCLNamespace, Local: "LNode"}) {
		t.Errorf("unexpected name: %s", s.Name)
	}
	var names []string
	for _, a := range s.Attrs {
		names = append(names, a.Name.Local+"="+a.Value)
	}
	for _, want := range []string{"lnClass=XCBR", "desc=breaker", "iedName=None", "lnInst=", "ldInst=", "prefix="} {
		found := false
		for _, got := range names {
			found = found || got == want
		}
		if !found {
			t.Errorf("expected attribute %s in %v", want, names)
		}
	}
	if len(names) != 6 {
		t.Errorf("expected 6 attributes, got %v", names)
	}
	if s.HasText {
		t.Errorf("expected no text, got %q", s.Text)
	}
	if s.ChildCount != 0 {
		t.Errorf("expected private child to be excluded, got %d children", s.ChildCount)
	}

	s, _ = scldiff.Normalize(n, scldiff.Policy{ConsiderPrivates: true, ConsiderDescriptions: true, ExtraNamespaces: []string{"urn:ext"}})
	if len(s.Attrs) != 7 || s.ChildCount != 1 {
		t.Errorf("expected 7 attributes & 1 child, got %d & %d", len(s.Attrs), s.ChildCount)
	}

	if _, ok := scldiff.Normalize(etreenode.New(mustFind(t, doc, "//Private")), scldiff.Policy{}); ok {
		t.Error("expected Private to be excluded")
	}
}
