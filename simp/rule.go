// Package simp implements the ZX-graph simplifier: a library of local
// rewrite rules, a deterministic non-overlapping match engine, and a
// driver that sequences rules to a fixed point.
package simp

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kegliz/zxsyn/zx"
)

// Match is the tuple of vertex ids a rule's rewrite needs, in the order
// the rule documents (e.g. pivot stores the edge endpoints first).
type Match struct {
	Vertices []zx.VertexID
}

// Rule is a local rewrite: it finds a maximal non-overlapping match set
// and applies one match as a batch of graph edits. Rules are stateless
// values; strategies are ordered sequences of them.
type Rule interface {
	// Name returns the canonical rule name used in strategies.
	Name() string

	// Find returns a maximal set of pairwise vertex-disjoint matches in
	// deterministic order.
	Find(g *zx.Graph) []Match

	// Apply rewrites one match. The rewrite is atomic: the driver
	// restores a snapshot if an error escapes.
	Apply(g *zx.Graph, m Match) error

	// Monovariant returns the integer quantity this rule strictly
	// decreases; the driver asserts the decrease after every pass.
	Monovariant(g *zx.Graph) int
}

// RuleRegistry maps rule names to their implementations.
type RuleRegistry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

var defaultRegistry = NewRuleRegistry()

// NewRuleRegistry creates an empty registry.
func NewRuleRegistry() *RuleRegistry {
	return &RuleRegistry{rules: make(map[string]Rule)}
}

// Register adds a rule under its name.
func (r *RuleRegistry) Register(rule Rule) error {
	if rule == nil || rule.Name() == "" {
		return fmt.Errorf("simp: rule must have a name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rules[rule.Name()]; exists {
		return fmt.Errorf("simp: rule %q is already registered", rule.Name())
	}
	r.rules[rule.Name()] = rule
	return nil
}

// MustRegister is Register that panics on failure; for init() use.
func (r *RuleRegistry) MustRegister(rule Rule) {
	if err := r.Register(rule); err != nil {
		panic(err)
	}
}

// Lookup returns the rule registered under name.
func (r *RuleRegistry) Lookup(name string) (Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[name]
	if !ok {
		return nil, fmt.Errorf("simp: unknown rule %q", name)
	}
	return rule, nil
}

// ListRules returns all registered rule names, sorted.
func (r *RuleRegistry) ListRules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupRule resolves a rule from the default registry.
func LookupRule(name string) (Rule, error) { return defaultRegistry.Lookup(name) }

// ListRules lists the default registry.
func ListRules() []string { return defaultRegistry.ListRules() }

func init() {
	defaultRegistry.MustRegister(IdentityRemoval{})
	defaultRegistry.MustRegister(SpiderFusion{})
	defaultRegistry.MustRegister(PiCopy{})
	defaultRegistry.MustRegister(Bialgebra{})
	defaultRegistry.MustRegister(StateCopy{})
	defaultRegistry.MustRegister(HadamardFusion{})
	defaultRegistry.MustRegister(LocalComplement{})
	defaultRegistry.MustRegister(Pivot{})
	defaultRegistry.MustRegister(GadgetFusion{})
}
