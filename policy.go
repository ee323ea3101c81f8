package scldiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Policy configures which optional parts of a document participate in
// equivalence. The zero value considers the primary namespace only, with
// enumeration descriptions & private extensions ignored. Policy is passed by value & is
// safe to share between concurrent traversals
type Policy struct {
	// namespace URIs considered in addition to the primary namespace
	ExtraNamespaces []string `yaml:"extraNamespaces,omitempty" json:"extraNamespaces,omitempty"`
	// consider "desc" attributes on tags whose rule gates them, eg: EnumVal
	ConsiderDescriptions bool `yaml:"considerDescriptions,omitempty" json:"considerDescriptions,omitempty"`
	// consider Private elements & everything beneath them
	ConsiderPrivates bool `yaml:"considerPrivates,omitempty" json:"considerPrivates,omitempty"`
}

// considers reports whether space is listed in ExtraNamespaces
func (p Policy) considers(space string) bool {
	return space != "" && slices.Contains(p.ExtraNamespaces, space)
}

// Validate checks a policy for host misuse
func (p Policy) Validate() error {
	seen := make(map[string]bool, len(p.ExtraNamespaces))
	for i, ns := range p.ExtraNamespaces {
		if ns == "" {
			return fmt.Errorf("%w: extraNamespaces[%d] is empty", ErrInvalidPolicy, i)
		}
		if seen[ns] {
			return fmt.Errorf("%w: extraNamespaces lists %q twice", ErrInvalidPolicy, ns)
		}
		seen[ns] = true
	}
	return nil
}

// ParsePolicy decodes & validates a YAML policy document. Unknown keys are an
// error, an empty document yields the zero Policy
func ParsePolicy(data []byte) (Policy, error) {
	var p Policy
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Policy{}, fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// LoadPolicy reads a YAML policy file from disk
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("reading policy: %w", err)
	}
	return ParsePolicy(data)
}
