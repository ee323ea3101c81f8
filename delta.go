package scldiff

import (
	"encoding/json"
)

// Operation marks how an entry figures in a report
type Operation string

const (
	// DTDelete marks entries only present in A
	DTDelete = Operation("-")
	// DTInsert marks entries only present in B
	DTInsert = Operation("+")
	// DTUpdate marks a digest present in both indices with members that
	// don't pair up
	DTUpdate = Operation("~")
)

// Report is the result of comparing two indices
type Report struct {
	// entries whose digest never occurs in B, in document order
	OnlyInA []*Entry `json:"onlyInA"`
	// entries whose digest never occurs in A, in document order
	OnlyInB []*Entry `json:"onlyInB"`
	// shared digests with unmatched members
	Changed []*Change `json:"changed"`
}

// Equal is true when the compared indices hold the same subtrees the same
// number of times
func (r *Report) Equal() bool {
	return len(r.OnlyInA) == 0 && len(r.OnlyInB) == 0 && len(r.Changed) == 0
}

// Len returns the number of reported entries
func (r *Report) Len() int {
	n := len(r.OnlyInA) + len(r.OnlyInB)
	for _, ch := range r.Changed {
		n += len(ch.A) + len(ch.B)
	}
	return n
}

// Change lists the members of a shared digest without a counterpart on the
// other side, eg: one document defining an EnumType twice where the other
// defines it once
type Change struct {
	Digest Digest
	// surplus members in A & B
	A, B []*Entry
}

// first returns the lowest sequence number of any member
func (ch *Change) first() int {
	seq := -1
	for _, es := range [][]*Entry{ch.A, ch.B} {
		for _, e := range es {
			if seq < 0 || e.Seq < seq {
				seq = e.Seq
			}
		}
	}
	return seq
}

// MarshalJSON implements a custom JSON Marshaller
func (ch *Change) MarshalJSON() ([]byte, error) {
	v := []interface{}{DTUpdate, ch.Digest, ch.A, ch.B}
	return json.Marshal(v)
}
