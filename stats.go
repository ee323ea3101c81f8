package scldiff

// Stats holds statistical metadata about a diff
type Stats struct {
	Left  int `json:"leftNodes"`  // count of included elements in the left tree
	Right int `json:"rightNodes"` // count of included elements in the right tree

	LeftWeight  int `json:"leftWeight"`  // byte-ish count of left tree
	RightWeight int `json:"rightWeight"` // byte-ish count of right tree

	OnlyInA    int `json:"onlyInA,omitempty"`    // number of entries only in the left tree
	OnlyInB    int `json:"onlyInB,omitempty"`    // number of entries only in the right tree
	Changed    int `json:"changed,omitempty"`    // number of shared digests with unmatched members
	Duplicates int `json:"duplicates,omitempty"` // duplicate groups across both trees
}

// NodeChange returns a count of the shift between left & right trees
func (s Stats) NodeChange() int {
	return s.Right - s.Left
}

// PctWeightChange returns a value from -1.0 to max(float64) representing the size shift
// between left & right trees
func (s Stats) PctWeightChange() float64 {
	if s.LeftWeight == 0 {
		return 0
	}
	return float64(s.RightWeight-s.LeftWeight) / float64(s.LeftWeight)
}
