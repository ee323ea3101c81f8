// Command scldiff compares substation configuration documents by semantic
// content
//
// # Exit Codes
//
//   - 0: documents are equivalent
//   - 1: documents differ
//   - 2: error
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const (
	exitEqual     = 0
	exitDifferent = 1
	exitError     = 2
)

// errDifferent signals a completed comparison that found differences
var errDifferent = errors.New("documents differ")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	switch {
	case err == nil:
		return exitEqual
	case errors.Is(err, errDifferent):
		return exitDifferent
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
}

// flags shared by every subcommand
type options struct {
	policyPath string
	namespaces []string
	descs      bool
	privates   bool
	allNS      bool
	maxDepth   int
	maxNodes   int
	verbose    bool

	json     bool
	color    bool
	collapse bool
	stats    bool

	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:           "scldiff",
		Short:         "semantic comparison of SCL documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if o.verbose {
				level = slog.LevelDebug
			}
			o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.policyPath, "policy", "", "YAML policy file, flags override its values")
	pf.StringSliceVar(&o.namespaces, "ns", nil, "extra namespace URI to consider, repeatable")
	pf.BoolVar(&o.descs, "descs", false, "consider desc attributes of enumeration types")
	pf.BoolVar(&o.privates, "privates", false, "consider Private elements")
	pf.BoolVar(&o.allNS, "all-ns", false, "consider every namespace declared on the document roots")
	pf.IntVar(&o.maxDepth, "max-depth", 0, "fail on documents nested deeper than this, 0 is unbounded")
	pf.IntVar(&o.maxNodes, "max-nodes", 0, "fail on documents with more elements than this, 0 is unbounded")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "log debug output to stderr")

	cmd.AddCommand(newCompareCmd(o), newHashCmd(o))
	return cmd
}
