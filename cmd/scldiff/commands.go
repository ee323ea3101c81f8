package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/beevik/etree"
	"github.com/qri-io/scldiff"
	"github.com/qri-io/scldiff/etreenode"
	"github.com/spf13/cobra"
)

func newCompareCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare A B",
		Short: "report subtrees of A and B without an equivalent in the other",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.compare(cmd, args[0], args[1])
		},
	}
	f := cmd.Flags()
	f.BoolVar(&o.json, "json", false, "print the report as JSON")
	f.BoolVar(&o.color, "color", false, "colorize output")
	f.BoolVar(&o.collapse, "collapse", false, "omit elements that only differ through descendants")
	f.BoolVar(&o.stats, "stats", false, "print summary statistics")
	return cmd
}

func newHashCmd(o *options) *cobra.Command {
	var entries, dups bool
	cmd := &cobra.Command{
		Use:   "hash FILE",
		Short: "print the digest of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.hash(cmd.OutOrStdout(), cmd, args[0], entries, dups)
		},
	}
	cmd.Flags().BoolVar(&entries, "entries", false, "print the digest of every element")
	cmd.Flags().BoolVar(&dups, "dups", false, "print groups of equivalent elements")
	return cmd
}

func (o *options) compare(cmd *cobra.Command, pathA, pathB string) error {
	docA, err := etreenode.ParseFile(pathA)
	if err != nil {
		return err
	}
	docB, err := etreenode.ParseFile(pathB)
	if err != nil {
		return err
	}
	p, err := o.policy(cmd, docA, docB)
	if err != nil {
		return err
	}

	st := &scldiff.Stats{}
	c, err := scldiff.New(
		scldiff.OptionPolicy(p),
		scldiff.OptionLogger(o.logger),
		scldiff.OptionMaxDepth(o.maxDepth),
		scldiff.OptionMaxNodes(o.maxNodes),
		scldiff.OptionCollapse(o.collapse),
		scldiff.OptionSetStats(st),
	)
	if err != nil {
		return err
	}
	r, err := c.Compare(cmd.Context(), etreenode.Root(docA), etreenode.Root(docB))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if o.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return err
		}
	} else if err := scldiff.FormatPretty(w, r, o.color); err != nil {
		return err
	}
	if o.stats {
		if o.color {
			fmt.Fprint(w, scldiff.FormatPrettyStatsColor(st))
		} else {
			fmt.Fprint(w, scldiff.FormatPrettyStats(st))
		}
	}

	if !r.Equal() {
		return errDifferent
	}
	return nil
}

func (o *options) hash(w io.Writer, cmd *cobra.Command, path string, entries, dups bool) error {
	doc, err := etreenode.ParseFile(path)
	if err != nil {
		return err
	}
	p, err := o.policy(cmd, doc)
	if err != nil {
		return err
	}
	root := etreenode.Root(doc)
	if root == nil {
		return fmt.Errorf("%s: %w", path, scldiff.ErrNilNode)
	}
	idx, err := scldiff.HashTree(root, p,
		scldiff.OptionLogger(o.logger),
		scldiff.OptionMaxDepth(o.maxDepth),
		scldiff.OptionMaxNodes(o.maxNodes),
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s  %s\n", idx.Digest(), path)
	if entries {
		es := slices.Clone(idx.Entries())
		slices.SortFunc(es, func(a, b *scldiff.Entry) int { return a.Seq - b.Seq })
		for _, e := range es {
			fmt.Fprintf(w, "%s %s  %s\n", e.Rolled, e.Local, e.Path())
		}
	}
	if dups {
		for _, group := range idx.Duplicates() {
			fmt.Fprintf(w, "%s\n", group[0].Rolled)
			for _, e := range group {
				fmt.Fprintf(w, "  %s\n", e.Path())
			}
		}
	}
	return nil
}

// policy builds the hashing policy: the policy file if any, overridden by
// whichever flags were set
func (o *options) policy(cmd *cobra.Command, docs ...*etree.Document) (scldiff.Policy, error) {
	var p scldiff.Policy
	if o.policyPath != "" {
		var err error
		if p, err = scldiff.LoadPolicy(o.policyPath); err != nil {
			return p, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("descs") {
		p.ConsiderDescriptions = o.descs
	}
	if flags.Changed("privates") {
		p.ConsiderPrivates = o.privates
	}

	extra := slices.Concat(p.ExtraNamespaces, o.namespaces)
	if o.allNS {
		for _, doc := range docs {
			extra = append(extra, etreenode.RootNamespaces(doc)...)
		}
	}
	p.ExtraNamespaces = nil
	for _, ns := range extra {
		if !slices.Contains(p.ExtraNamespaces, ns) {
			p.ExtraNamespaces = append(p.ExtraNamespaces, ns)
		}
	}

	o.logger.Debug("resolved policy",
		"extraNamespaces", p.ExtraNamespaces,
		"considerDescriptions", p.ConsiderDescriptions,
		"considerPrivates", p.ConsiderPrivates)
	return p, p.Validate()
}
