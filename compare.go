package scldiff

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Comparer diffs pairs of trees under a fixed configuration. A Comparer is
// safe for concurrent use unless it populates Stats
type Comparer struct {
	opts []Option
	cfg  *Config
}

// New creates a Comparer. OptionPolicy sets the policy both trees are hashed
// with
func New(opts ...Option) (*Comparer, error) {
	cfg := newConfig(Policy{}, opts)
	if err := cfg.Policy.Validate(); err != nil {
		return nil, err
	}
	return &Comparer{opts: opts, cfg: cfg}, nil
}

// Policy returns the policy trees are hashed with
func (c *Comparer) Policy() Policy { return c.cfg.Policy }

// Compare hashes a & b in parallel then diffs the resulting indices.
// Cancelling ctx abandons both traversals
func (c *Comparer) Compare(ctx context.Context, a, b Node) (*Report, error) {
	ia, ib, err := c.HashBoth(ctx, a, b)
	if err != nil {
		return nil, err
	}
	return Diff(ia, ib, c.opts...)
}

// HashBoth hashes two independent trees concurrently. Each traversal owns
// its own index & buffers
func (c *Comparer) HashBoth(ctx context.Context, a, b Node) (ia, ib *Index, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ia, err = hashTree(gctx, a, c.cfg)
		return err
	})
	g.Go(func() (err error) {
		ib, err = hashTree(gctx, b, c.cfg)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return ia, ib, nil
}
