package scldiff

import (
	"cmp"
	"log/slog"
	"slices"
)

// Diff classifies the entries of two indices by digest. Subtrees present in
// both documents are never reported, wherever they sit in either tree. What
// remains is split into entries only found in a, entries only found in b, and
// digests both sides share but with a different number of members
//
// a & b must come from traversals using the same policy & rules, digests of
// differently configured traversals aren't comparable
func Diff(a, b *Index, opts ...Option) (*Report, error) {
	if a == nil || b == nil {
		return nil, ErrNilIndex
	}
	cfg := newConfig(Policy{}, opts)

	d := &diff{cfg: cfg, a: a, b: b}
	r := d.diff()

	if cfg.Stats != nil {
		d.stats(r, cfg.Stats)
	}
	cfg.Logger.Debug("diffed indices",
		"onlyInA", len(r.OnlyInA),
		"onlyInB", len(r.OnlyInB),
		"changed", len(r.Changed),
		"collapse", cfg.Collapse)
	return r, nil
}

// Config are any possible configuration parameters for hashing & diffing
type Config struct {
	// Policy decides what participates in equivalence. Only read by
	// entry points that don't take a Policy argument, eg: Comparer
	Policy Policy
	// Rules to normalize elements with. nil uses DefaultRegistry
	Rules *Registry
	// MaxDepth bounds element nesting during HashTree, 0 is unbounded
	MaxDepth int
	// MaxNodes bounds the number of included elements during HashTree,
	// 0 is unbounded
	MaxNodes int
	// Logger receives debug & warning output. nil discards
	Logger *slog.Logger
	// If true Diff omits entries that only differ through their
	// descendants, leaving the elements where changes actually happened
	Collapse bool
	// Provide a non-nil stats pointer & diff will populate it with data from
	// the diff process
	Stats *Stats
}

// Option is a function that adjusts a config, zero or more Options can be
// passed to any hashing or diffing function
type Option func(cfg *Config)

// newConfig applies opts over p & fills in defaults
func newConfig(p Policy, opts []Option) *Config {
	cfg := &Config{Policy: p}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Rules == nil {
		cfg.Rules = defaultRules
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return cfg
}

// unbounded lifts traversal limits
func unbounded(cfg *Config) *Config {
	cfg.MaxDepth = 0
	cfg.MaxNodes = 0
	return cfg
}

// OptionPolicy sets the policy used by entry points without a Policy
// argument. Functions that take a Policy ignore it
func OptionPolicy(p Policy) Option {
	return func(cfg *Config) {
		cfg.Policy = p
	}
}

// OptionRules replaces the default tag rules
func OptionRules(reg *Registry) Option {
	return func(cfg *Config) {
		cfg.Rules = reg
	}
}

// OptionMaxDepth makes HashTree fail with ErrDepthExceeded on trees nested
// deeper than n elements
func OptionMaxDepth(n int) Option {
	return func(cfg *Config) {
		cfg.MaxDepth = n
	}
}

// OptionMaxNodes makes HashTree fail with ErrSizeExceeded on trees holding
// more than n included elements
func OptionMaxNodes(n int) Option {
	return func(cfg *Config) {
		cfg.MaxNodes = n
	}
}

// OptionLogger sets the structured logger
func OptionLogger(l *slog.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = l
	}
}

// OptionCollapse omits pure ancestors from a Diff report
func OptionCollapse(collapse bool) Option {
	return func(cfg *Config) {
		cfg.Collapse = collapse
	}
}

// OptionSetStats will set the passed-in stats pointer when Diff is called
func OptionSetStats(st *Stats) Option {
	return func(cfg *Config) {
		cfg.Stats = st
	}
}

// diff is the state of comparing two indices
type diff struct {
	cfg  *Config
	a, b *Index
}

func (d *diff) diff() *Report {
	r := &Report{}
	for dg, inA := range d.a.rolled {
		inB, ok := d.b.rolled[dg]
		if !ok {
			r.OnlyInA = append(r.OnlyInA, inA...)
			continue
		}
		if ch := compareBuckets(dg, inA, inB); ch != nil {
			r.Changed = append(r.Changed, ch)
		}
	}
	for dg, inB := range d.b.rolled {
		if _, ok := d.a.rolled[dg]; !ok {
			r.OnlyInB = append(r.OnlyInB, inB...)
		}
	}

	if d.cfg.Collapse {
		r.OnlyInA = collapse(r.OnlyInA, d.b)
		r.OnlyInB = collapse(r.OnlyInB, d.a)
	}

	slices.SortFunc(r.OnlyInA, bySeq)
	slices.SortFunc(r.OnlyInB, bySeq)
	slices.SortFunc(r.Changed, func(x, y *Change) int {
		// sequence numbers of A & B members can tie
		return cmp.Or(cmp.Compare(x.first(), y.first()), cmp.Compare(x.Digest, y.Digest))
	})
	return r
}

// compareBuckets reports the members of a shared digest that have no
// counterpart on the other side, nil if every member is accounted for.
// members are grouped by canonical encoding first, so a collision is never
// mistaken for a duplicate
func compareBuckets(dg Digest, inA, inB []*Entry) *Change {
	classesA := shapeClasses(inA)
	classesB := shapeClasses(inB)
	matched := make([]bool, len(classesB))

	ch := &Change{Digest: dg}
	for _, ca := range classesA {
		j := slices.IndexFunc(classesB, func(cb []*Entry) bool { return cb[0].sameShape(ca[0]) })
		if j < 0 {
			ch.A = append(ch.A, ca...)
			continue
		}
		matched[j] = true
		restA, restB := unpaired(ca, classesB[j])
		ch.A = append(ch.A, restA...)
		ch.B = append(ch.B, restB...)
	}
	for j, cb := range classesB {
		if !matched[j] {
			ch.B = append(ch.B, cb...)
		}
	}

	if len(ch.A) == 0 && len(ch.B) == 0 {
		return nil
	}
	slices.SortFunc(ch.A, bySeq)
	slices.SortFunc(ch.B, bySeq)
	return ch
}

// unpaired matches equivalent members one-to-one, preferring members at the
// same position in both documents, then document order. Positions are
// compared fully spelled out, so /r/x in one document pairs with /r/x[1] in
// the other. Members left over are returned. Classes of equal size always
// pair up completely
func unpaired(as, bs []*Entry) (restA, restB []*Entry) {
	if len(as) == len(bs) {
		return nil, nil
	}

	keys := make(map[string]int, len(bs))
	for i, e := range bs {
		keys[e.pairKey()] = i
	}
	pairedB := make([]bool, len(bs))
	for _, e := range as {
		if i, ok := keys[e.pairKey()]; ok && !pairedB[i] {
			pairedB[i] = true
			continue
		}
		restA = append(restA, e)
	}
	for i, e := range bs {
		if !pairedB[i] {
			restB = append(restB, e)
		}
	}

	// classes are in document order already
	n := min(len(restA), len(restB))
	return restA[n:], restB[n:]
}

// collapse drops pure ancestors: entries whose local digest is present in
// other, meaning the element & its direct children are unchanged and only
// deeper descendants differ
func collapse(es []*Entry, other *Index) []*Entry {
	return slices.DeleteFunc(es, func(e *Entry) bool {
		return len(other.LookupLocal(e.Local)) > 0
	})
}

func (d *diff) stats(r *Report, st *Stats) {
	st.Left = d.a.Len()
	st.Right = d.b.Len()
	if root := d.a.Root(); root != nil {
		st.LeftWeight = root.Weight
	}
	if root := d.b.Root(); root != nil {
		st.RightWeight = root.Weight
	}
	st.OnlyInA = len(r.OnlyInA)
	st.OnlyInB = len(r.OnlyInB)
	st.Changed = len(r.Changed)
	st.Duplicates = len(d.a.Duplicates()) + len(d.b.Duplicates())
}

func bySeq(x, y *Entry) int { return x.Seq - y.Seq }
