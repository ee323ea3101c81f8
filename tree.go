package scldiff

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Entry is an included element observed while hashing a tree
type Entry struct {
	Node  Node
	Depth int
	// pre-order position within the traversal
	Seq    int
	Parent *Entry
	// digest of this element plus the own shapes of its direct included
	// children. descendants further down don't contribute
	Local Digest
	// digest of this element & its entire included subtree
	Rolled Digest
	// byte-ish size of the subtree: elements plus included attributes
	Weight int

	// last path step, eg: EnumType[2]
	step string
	// 1-based position among included siblings of the same name
	pos int
	// canonical encoding behind Rolled, used to tell duplicates from
	// collisions
	shape []byte
}

// Path locates the entry in its document, eg: /SCL/DataTypeTemplates/EnumType[2].
// Positions only count included siblings of the same name & are omitted for
// names that occur once
func (e *Entry) Path() string {
	var steps []string
	for ; e != nil; e = e.Parent {
		steps = append(steps, e.step)
	}
	slices.Reverse(steps)
	return "/" + strings.Join(steps, "/")
}

// pairKey is the path with every position spelled out, eg: /SCL[1]/Header[1],
// so it doesn't depend on how many same-name siblings an element has
func (e *Entry) pairKey() string {
	var steps []string
	for ; e != nil; e = e.Parent {
		steps = append(steps, segment(e.Node.Name(), e.pos, 0)+"["+strconv.Itoa(e.pos)+"]")
	}
	slices.Reverse(steps)
	return "/" + strings.Join(steps, "/")
}

// MarshalJSON implements the json.Marshaler interface. Entries reference
// their parents, so only identifying fields are encoded
func (e *Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Path   string `json:"path"`
		Depth  int    `json:"depth"`
		Local  Digest `json:"local"`
		Rolled Digest `json:"rolled"`
		Weight int    `json:"weight"`
	}{e.Path(), e.Depth, e.Local, e.Rolled, e.Weight})
}

// sameShape reports whether two entries share a canonical encoding, which
// confirms a genuine duplicate rather than a digest collision
func (e *Entry) sameShape(o *Entry) bool {
	return string(e.shape) == string(o.shape)
}

// Index maps digests to the entries that produced them within one traversal
type Index struct {
	// post-order
	entries []*Entry
	rolled  map[Digest][]*Entry
	local   map[Digest][]*Entry
	root    *Entry
}

func newIndex() *Index {
	return &Index{
		rolled: map[Digest][]*Entry{},
		local:  map[Digest][]*Entry{},
	}
}

func (x *Index) add(e *Entry) {
	x.entries = append(x.entries, e)
	x.rolled[e.Rolled] = append(x.rolled[e.Rolled], e)
	x.local[e.Local] = append(x.local[e.Local], e)
}

// Root returns the entry for the traversal root, nil if the root was excluded
func (x *Index) Root() *Entry { return x.root }

// Digest returns the rolled digest of the whole tree, zero if the root was
// excluded
func (x *Index) Digest() Digest {
	if x.root == nil {
		return 0
	}
	return x.root.Rolled
}

// Len returns the number of entries in the index
func (x *Index) Len() int { return len(x.entries) }

// Entries lists every entry in post-order (children before parents)
func (x *Index) Entries() []*Entry { return x.entries }

// Lookup returns the entries whose subtree hashed to d
func (x *Index) Lookup(d Digest) []*Entry { return x.rolled[d] }

// LookupLocal returns the entries whose local digest is d
func (x *Index) LookupLocal(d Digest) []*Entry { return x.local[d] }

// Digests lists every distinct rolled digest in ascending order
func (x *Index) Digests() []Digest {
	ds := make([]Digest, 0, len(x.rolled))
	for d := range x.rolled {
		ds = append(ds, d)
	}
	slices.Sort(ds)
	return ds
}

// Duplicates groups entries that are genuinely equivalent, each group holding
// two or more entries sharing both a digest and a canonical encoding. This
// finds repeated definitions, eg: identical EnumType templates. Groups are
// ordered by first appearance in the document
func (x *Index) Duplicates() [][]*Entry {
	var groups [][]*Entry
	for _, bucket := range x.rolled {
		if len(bucket) < 2 {
			continue
		}
		for _, class := range shapeClasses(bucket) {
			if len(class) > 1 {
				groups = append(groups, class)
			}
		}
	}
	slices.SortFunc(groups, func(a, b []*Entry) int { return a[0].Seq - b[0].Seq })
	return groups
}

// Collisions lists digests shared by entries with different canonical
// encodings, in ascending order. With a 64-bit digest this should be empty
// for any realistic document
func (x *Index) Collisions() []Digest {
	var ds []Digest
	for d, bucket := range x.rolled {
		if len(bucket) > 1 && len(shapeClasses(bucket)) > 1 {
			ds = append(ds, d)
		}
	}
	slices.Sort(ds)
	return ds
}

// shapeClasses partitions a bucket by canonical encoding. classes & their
// members are in document order
func shapeClasses(bucket []*Entry) [][]*Entry {
	sorted := slices.Clone(bucket)
	slices.SortFunc(sorted, func(a, b *Entry) int { return a.Seq - b.Seq })

	var classes [][]*Entry
NEXT:
	for _, e := range sorted {
		for i, class := range classes {
			if class[0].sameShape(e) {
				classes[i] = append(class, e)
				continue NEXT
			}
		}
		classes = append(classes, []*Entry{e})
	}
	return classes
}

// HashTree hashes root & every element it includes in a single post-order
// pass, returning an index of all included elements. An excluded root
// produces an empty index
func HashTree(root Node, p Policy, opts ...Option) (*Index, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return hashTree(context.Background(), root, newConfig(p, opts))
}

func hashTree(ctx context.Context, root Node, cfg *Config) (*Index, error) {
	if root == nil {
		return nil, ErrNilNode
	}
	idx := newIndex()
	if excluded(root, cfg.Policy) {
		cfg.Logger.Debug("tree root excluded", "kind", root.Kind(), "name", root.Name())
		return idx, nil
	}

	w := newWalker(cfg, idx)
	w.ctx = ctx
	top, err := w.run(root)
	if err != nil {
		return nil, err
	}
	idx.root = top

	cfg.Logger.Debug("hashed tree",
		"root", top.Path(),
		"digest", top.Rolled,
		"entries", idx.Len(),
		"distinct", len(idx.rolled),
		"maxDepth", w.maxDepth)
	for _, d := range idx.Collisions() {
		paths := make([]string, 0, len(idx.rolled[d]))
		for _, e := range idx.rolled[d] {
			paths = append(paths, e.Path())
		}
		cfg.Logger.Warn("digest collision", "digest", d, "paths", paths)
	}
	return idx, nil
}

// level is the aggregation window for one nesting depth. while children of
// the element at this depth are being hashed their digests accumulate here.
// when the walk climbs back out the window is rolled up into the element's
// digests and reset for reuse by the next element at the same depth
type level struct {
	entry *Entry
	rule  Rule
	shape Shape
	kids  []Node
	next  int

	// occurrences of each child name, for positional paths. only
	// allocated for elements with several children
	total map[Name]int
	seen  map[Name]int

	count  int
	local  []Digest
	rolled []Digest
	weight int
}

func (l *level) reset() {
	clear(l.total)
	clear(l.seen)
	*l = level{
		total:  l.total,
		seen:   l.seen,
		local:  l.local[:0],
		rolled: l.rolled[:0],
	}
}

// walker is the traversal-local state of one hashing pass. Nothing in it is
// shared, so independent trees can be hashed concurrently
type walker struct {
	// checked every cancelCheck elements when non-nil
	ctx    context.Context
	cfg    *Config
	index  *Index
	levels []level
	depth  int
	seq    int

	// own-shape digest of the element most recently popped
	selfDigest Digest
	maxDepth   int
	rootShape  *Shape
}

const cancelCheck = 1024

func newWalker(cfg *Config, idx *Index) *walker {
	return &walker{cfg: cfg, index: idx}
}

// run walks the tree rooted at n depth-first with an explicit stack, so
// document depth is bounded by memory, not by the goroutine stack
func (w *walker) run(n Node) (*Entry, error) {
	if err := w.push(n, nil, 1, 1); err != nil {
		return nil, err
	}

	for {
		top := &w.levels[w.depth-1]
		if top.next < len(top.kids) {
			kid := top.kids[top.next]
			top.next++
			name := kid.Name()
			pos, total := 1, 1
			if len(top.kids) > 1 {
				top.seen[name]++
				pos, total = top.seen[name], top.total[name]
			}
			if err := w.push(kid, top.entry, pos, total); err != nil {
				return nil, err
			}
			continue
		}

		done := w.pop()
		if w.depth == 0 {
			return done, nil
		}
		parent := &w.levels[w.depth-1]
		parent.count++
		parent.local = append(parent.local, w.selfDigest)
		parent.rolled = append(parent.rolled, done.Rolled)
		parent.weight += done.Weight
	}
}

// push opens the aggregation window for n one level below the current depth
func (w *walker) push(n Node, parent *Entry, pos, total int) error {
	step := segment(n.Name(), pos, total)
	if w.cfg.MaxDepth > 0 && w.depth >= w.cfg.MaxDepth {
		return fmt.Errorf("%w: %s is nested deeper than %d", ErrDepthExceeded, childPath(parent, step), w.cfg.MaxDepth)
	}
	if w.cfg.MaxNodes > 0 && w.seq >= w.cfg.MaxNodes {
		return fmt.Errorf("%w: %s is beyond %d elements", ErrSizeExceeded, childPath(parent, step), w.cfg.MaxNodes)
	}
	if w.ctx != nil && w.seq%cancelCheck == 0 {
		if err := w.ctx.Err(); err != nil {
			return err
		}
	}

	if w.depth == len(w.levels) {
		w.levels = append(w.levels, level{})
	}
	l := &w.levels[w.depth]
	l.reset()

	l.rule = w.cfg.Rules.Lookup(n.Name())
	l.shape = selfShape(n, l.rule, w.cfg.Policy)
	l.kids = includedChildren(n, l.rule, w.cfg.Policy)
	if len(l.kids) > 1 {
		if l.total == nil {
			l.total, l.seen = map[Name]int{}, map[Name]int{}
		}
		for _, k := range l.kids {
			l.total[k.Name()]++
		}
	}
	l.entry = &Entry{
		Node:   n,
		step:   step,
		pos:    pos,
		Depth:  w.depth,
		Seq:    w.seq,
		Parent: parent,
	}

	w.seq++
	w.depth++
	w.maxDepth = max(w.maxDepth, w.depth)
	return nil
}

// pop closes the innermost window, rolling accumulated child digests into
// the element's local & rolled digests
func (w *walker) pop() *Entry {
	w.depth--
	l := &w.levels[w.depth]
	e := l.entry
	s := l.shape

	w.selfDigest = HashShape(&s)

	s.ChildCount = l.count
	if l.count > 0 {
		s.ChildDigest = combine(l.local, l.rule.Unordered())
	}
	e.Local = HashShape(&s)

	if l.count > 0 {
		s.ChildDigest = combine(l.rolled, l.rule.Unordered())
	}
	enc := s.AppendEncoding(nil)
	e.Rolled = hashBytes(enc)
	e.Weight = 1 + len(s.Attrs) + l.weight

	if w.index != nil {
		e.shape = enc
		w.index.add(e)
	}
	if w.depth == 0 {
		w.rootShape = &s
	}
	return e
}

func childPath(parent *Entry, step string) string {
	if parent == nil {
		return "/" + step
	}
	return parent.Path() + "/" + step
}

// segment renders one path step. position is only shown for names that
// occur more than once among included siblings
func segment(name Name, pos, total int) string {
	step := name.Local
	if !isPrimary(name.Space) {
		step = name.String()
	}
	if total > 1 {
		step += "[" + strconv.Itoa(pos) + "]"
	}
	return step
}
