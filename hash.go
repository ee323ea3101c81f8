package scldiff

import (
	"cmp"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// NewHash returns a new 64-bit hash, wrapped in a function for easy hash
// algorithm switching. Package consumers may replace NewHash before hashing
// anything, never while a traversal is running. Default is xxhash64 for fast,
// well-mixed (non-cryptographic) hashing
var NewHash = func() hash.Hash64 {
	return xxhash.New()
}

// Digest is the fixed-width fingerprint of a canonical shape
type Digest uint64

// String hex-encodes a digest as 16 lowercase characters
func (d Digest) String() string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(d))
	return hex.EncodeToString(buf[:])
}

// MarshalText implements encoding.TextMarshaler
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := ParseDigest(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDigest decodes the output of Digest.String
func ParseDigest(s string) (Digest, error) {
	if len(s) != 16 {
		return 0, fmt.Errorf("invalid digest %q: want 16 hex characters", s)
	}
	buf, err := hex.DecodeString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid digest %q: %w", s, err)
	}
	return Digest(binary.BigEndian.Uint64(buf)), nil
}

// Shape is the canonical, policy-filtered form of one element. Descendants
// are summarized by ChildDigest alone
type Shape struct {
	Name Name
	// included attributes in document order, defaults applied
	Attrs []Attr
	// trimmed, concatenated character data. HasText distinguishes "no text"
	// from text that happens to be empty
	Text    string
	HasText bool
	// number of included children & the combination of their digests
	ChildCount  int
	ChildDigest Digest
}

// field markers of the canonical encoding
const (
	tagElement  = 'E'
	tagAttrs    = 'A'
	tagText     = 'T'
	tagNoText   = 'N'
	tagChildren = 'C'
)

// AppendEncoding appends the canonical encoding of s to b. Every variable
// length field is length-prefixed & attributes are sorted by (namespace,
// name, value), so the encoding is unambiguous & independent of attribute
// order
func (s *Shape) AppendEncoding(b []byte) []byte {
	b = append(b, tagElement)
	b = appendString(b, s.Name.Space)
	b = appendString(b, s.Name.Local)

	b = append(b, tagAttrs)
	b = binary.AppendUvarint(b, uint64(len(s.Attrs)))
	for _, a := range sortedAttrs(s.Attrs) {
		b = appendString(b, a.Name.Space)
		b = appendString(b, a.Name.Local)
		b = appendString(b, a.Value)
	}

	if s.HasText {
		b = append(b, tagText)
		b = appendString(b, s.Text)
	} else {
		b = append(b, tagNoText)
	}

	b = append(b, tagChildren)
	b = binary.AppendUvarint(b, uint64(s.ChildCount))
	if s.ChildCount > 0 {
		b = binary.BigEndian.AppendUint64(b, uint64(s.ChildDigest))
	}
	return b
}

func appendString(b []byte, s string) []byte {
	b = binary.AppendUvarint(b, uint64(len(s)))
	return append(b, s...)
}

func sortedAttrs(attrs []Attr) []Attr {
	if slices.IsSortedFunc(attrs, compareAttrs) {
		return attrs
	}
	sorted := slices.Clone(attrs)
	slices.SortFunc(sorted, compareAttrs)
	return sorted
}

func compareAttrs(a, b Attr) int {
	if c := cmp.Compare(a.Name.Space, b.Name.Space); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Name.Local, b.Name.Local); c != 0 {
		return c
	}
	return cmp.Compare(a.Value, b.Value)
}

// HashShape fingerprints a canonical shape
func HashShape(s *Shape) Digest {
	return hashBytes(s.AppendEncoding(nil))
}

func hashBytes(b []byte) Digest {
	h := NewHash()
	h.Write(b)
	return Digest(h.Sum64())
}

// combine folds child digests into one. unordered combinations sort ds in
// place first
func combine(ds []Digest, unordered bool) Digest {
	if unordered {
		slices.Sort(ds)
	}
	h := NewHash()
	var buf [8]byte
	for _, d := range ds {
		binary.BigEndian.PutUint64(buf[:], uint64(d))
		h.Write(buf[:])
	}
	return Digest(h.Sum64())
}
