package simp

import (
	"context"
	"errors"
	"fmt"

	"github.com/kegliz/zxsyn/internal/logger"
	"github.com/kegliz/zxsyn/zx"
)

// Driver sequences rewrite rules to a fixed point. Rules that fail their
// monovariant assertion are disabled for the remainder of the strategy,
// so a misbehaving rule can never spin the driver forever.
type Driver struct {
	log *logger.Logger
}

// DriverOptions configures a Driver.
type DriverOptions struct {
	Logger *logger.Logger
}

// NewDriver creates a simplification driver.
func NewDriver(options DriverOptions) *Driver {
	l := options.Logger
	if l == nil {
		l = logger.NewLogger(logger.LoggerOptions{})
	}
	return &Driver{log: l.SpawnForService("simp")}
}

// Result reports what one strategy run did.
type Result struct {
	Iterations int            // passes over the rule queue
	Applied    map[string]int // rewrites applied per rule
}

func newResult() *Result { return &Result{Applied: make(map[string]int)} }

func (r *Result) total() int {
	t := 0
	for _, n := range r.Applied {
		t += n
	}
	return t
}

// runPass runs a single match-then-rewrite pass of one rule. It returns
// the number of matches applied. ErrNoProgress reports a monovariant
// violation; the graph is restored to its pre-pass state in that case.
func (d *Driver) runPass(ctx context.Context, g *zx.Graph, rule Rule) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInterrupted, err)
	}
	matches := rule.Find(g)
	if len(matches) == 0 {
		return 0, nil
	}
	before := rule.Monovariant(g)
	snapshot := g.Copy()
	for _, m := range matches {
		if err := rule.Apply(g, m); err != nil {
			// rewrites are atomic: roll the whole pass back
			*g = *snapshot
			return 0, fmt.Errorf("simp: %s failed: %w", rule.Name(), err)
		}
	}
	if after := rule.Monovariant(g); after >= before {
		*g = *snapshot
		return 0, fmt.Errorf("%w: %s monovariant %d -> %d",
			ErrNoProgress, rule.Name(), before, after)
	}
	return len(matches), nil
}

// runQueue iterates a rule queue to a fixed point. NoProgress from one
// rule disables it and the queue continues; other errors abort.
func (d *Driver) runQueue(ctx context.Context, g *zx.Graph, names []string) (*Result, error) {
	rules := make([]Rule, 0, len(names))
	for _, name := range names {
		rule, err := LookupRule(name)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	res := newResult()
	disabled := make(map[string]bool)
	for {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("%w: %v", ErrInterrupted, err)
		}
		res.Iterations++
		progressed := false
		for _, rule := range rules {
			if disabled[rule.Name()] {
				continue
			}
			n, err := d.runPass(ctx, g, rule)
			switch {
			case err == nil:
				if n > 0 {
					progressed = true
					res.Applied[rule.Name()] += n
				}
			case errors.Is(err, ErrNoProgress):
				d.log.Warn().Str("rule", rule.Name()).Err(err).
					Msg("disabling rule for this strategy")
				disabled[rule.Name()] = true
			default:
				return res, err
			}
		}
		if !progressed {
			return res, nil
		}
	}
}

// cliffordRules is the clifford-simp queue, in application order.
var cliffordRules = []string{
	"spider-fusion",
	"identity-removal",
	"pi-copy",
	"pivot",
	"local-complementation",
}

// CliffordSimp iterates spider fusion, identity removal, pi-copy, pivot
// and local complementation to a fixed point.
func (d *Driver) CliffordSimp(ctx context.Context, g *zx.Graph) (*Result, error) {
	d.log.Debug().Int("vertices", g.NumVertices()).Msg("clifford-simp start")
	res, err := d.runQueue(ctx, g, cliffordRules)
	if err == nil {
		d.log.Debug().Int("vertices", g.NumVertices()).
			Int("rewrites", res.total()).Msg("clifford-simp done")
	}
	return res, err
}

// FullReduce runs clifford-simp, extracts phase gadgets, fuses them, and
// repeats until the graph stops changing.
func (d *Driver) FullReduce(ctx context.Context, g *zx.Graph) (*Result, error) {
	total := newResult()
	maxRounds := g.NumVertices() + 1
	for round := 0; round < maxRounds; round++ {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("%w: %v", ErrInterrupted, err)
		}
		res, err := d.CliffordSimp(ctx, g)
		mergeResult(total, res)
		if err != nil {
			return total, err
		}

		before := fingerprint(g)
		if _, err := gadgetize(g); err != nil {
			return total, err
		}
		res, err = d.runQueue(ctx, g, []string{"gadget-fusion"})
		mergeResult(total, res)
		if err != nil {
			return total, err
		}
		res, err = d.CliffordSimp(ctx, g)
		mergeResult(total, res)
		if err != nil {
			return total, err
		}
		if fingerprint(g) == before {
			break
		}
	}
	return total, nil
}

func mergeResult(dst, src *Result) {
	if src == nil {
		return
	}
	dst.Iterations += src.Iterations
	for name, n := range src.Applied {
		dst.Applied[name] += n
	}
}

func fingerprint(g *zx.Graph) [3]int {
	return [3]int{g.NumVertices(), g.NumEdges(), g.NonCliffordCount()}
}
