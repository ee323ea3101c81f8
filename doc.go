// Package scldiff fingerprints & compares substation configuration (SCL)
// documents by semantic content. It's intended to tell whether two
// configuration files, or two parts of one file, mean the same thing while
// ignoring everything that doesn't carry meaning: whitespace, comments,
// processing instructions, attribute order, undeclared namespaces & values
// that merely restate a default
//
// Every included element gets a canonical shape, the policy-filtered form of
// its tag, attributes & text. Shapes are serialized to an unambiguous
// encoding & hashed, children first, so each element ends up with two
// digests:
//   Local:  the element plus the own shapes of its direct children
//   Rolled: the element plus its entire included subtree
//
// HashTree collects every element into an Index keyed by rolled digest. Diff
// then compares two indices by digest alone: a subtree present in both
// documents is equal wherever it lives, and only subtrees without a
// counterpart are reported. Repeated definitions within one document, eg:
// two identical EnumType templates, share a bucket & surface through
// Index.Duplicates
//
// What participates in equivalence is decided by a Policy together with a
// Registry of per-tag rules. The default registry knows the SCL elements
// that need special treatment & falls back to a generic rule for the rest
//
// scldiff works on any document model implementing Node. see the etreenode
// package for an adapter over github.com/beevik/etree
//
// content-addressed comparison follows the subtree signature approach of:
// Detecting Changes in XML Documents by Grégory Cobéna & Amélie Marian
// https://ieeexplore.ieee.org/document/994696
package scldiff
