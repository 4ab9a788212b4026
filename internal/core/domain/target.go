package domain

import (
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// Target is a node in the build graph: a source leaf, a derived file produced
// by one rule application, or a phony alias aggregate. Targets are immutable
// once constructed; chaining produces new targets.
type Target struct {
	proj *Project
	path InternedString

	// rule is nil for source leaves and aliases.
	rule   *Rule
	inputs []*Target

	// extraOuts are secondary explicit outputs of multi-output rules.
	extraOuts    []string
	implicit     []string
	implicitOuts []string

	// vars holds the application's variable overrides (rule defaults are
	// emitted once on the rule declaration, not per edge).
	vars map[string]string
	pool string

	// fingerprint identifies the producing edge for construction-time
	// deduplication.
	fingerprint uint64

	alias        string
	aliasMembers []*Target

	isDefault bool
}

func (t *Target) inputPath() string { return t.path.String() }

// Path returns the target's output path, or its name for aliases.
func (t *Target) Path() string { return t.path.String() }

// IsSource reports whether the target is a source leaf.
func (t *Target) IsSource() bool { return t.rule == nil && t.alias == "" }

// IsAlias reports whether the target is a phony alias aggregate.
func (t *Target) IsAlias() bool { return t.alias != "" }

// Rule returns the producing rule, nil for leaves and aliases.
func (t *Target) Rule() *Rule { return t.rule }

// Inputs returns the explicit predecessor targets.
func (t *Target) Inputs() []*Target { return slices.Clone(t.inputs) }

// ExtraOutputs returns the secondary explicit outputs.
func (t *Target) ExtraOutputs() []string { return slices.Clone(t.extraOuts) }

// ImplicitInputs returns the implicit dependency paths.
func (t *Target) ImplicitInputs() []string { return slices.Clone(t.implicit) }

// ImplicitOutputs returns the implicit output paths.
func (t *Target) ImplicitOutputs() []string { return slices.Clone(t.implicitOuts) }

// Variables returns the edge's variable overrides in sorted key order.
func (t *Target) Variables() []Binding { return sortedBindings(t.vars) }

// Pool returns the edge's resolved scheduling pool.
func (t *Target) Pool() string { return t.pool }

// AliasMembers returns the flattened members of an alias target.
func (t *Target) AliasMembers() []*Target { return slices.Clone(t.aliasMembers) }

// Binding is one resolved variable binding on a build edge.
type Binding struct {
	Key   string
	Value string
}

// Then applies a rule application to the receiver, yielding the derived
// target. The receiver becomes the first explicit input; extra supplies the
// remaining inputs for rules with arity above one. The new target is
// registered with the owning project; an edge that is provably identical to
// an already-registered one returns the existing target instead.
func (t *Target) Then(app Application, extra ...*Target) (*Target, error) {
	r := app.rule
	if r == nil {
		return nil, zerr.New("application has no rule")
	}

	inputs := make([]*Target, 0, 1+len(extra))
	inputs = append(inputs, t)
	inputs = append(inputs, extra...)
	if len(inputs) < r.arity() {
		err := zerr.Wrap(ErrMissingInput, "fewer inputs than the rule's arity")
		err = zerr.With(zerr.With(err, "rule", r.Name), "arity", r.arity())
		return nil, zerr.With(err, "inputs", len(inputs))
	}

	outs, err := inferOutputs(t.proj.layout, t.Path(), r, app.output)
	if err != nil {
		return nil, err
	}

	nt := &Target{
		proj:         t.proj,
		path:         Intern(outs[0]),
		rule:         r,
		inputs:       inputs,
		extraOuts:    outs[1:],
		implicit:     slices.Clone(app.implicit),
		implicitOuts: slices.Clone(app.implicitOut),
		vars:         app.overrides(),
		pool:         app.resolvedPool(),
	}
	nt.fingerprint = edgeFingerprint(nt, app)
	return t.proj.register(nt)
}

// edgeFingerprint hashes everything that makes a build edge what it is: rule,
// explicit inputs and outputs, implicit inputs and outputs, resolved
// variables, and pool. Two edges with equal fingerprints are interchangeable
// and deduplicated at construction time.
func edgeFingerprint(t *Target, app Application) uint64 {
	h := xxhash.New()
	writeField := func(s string) {
		_, _ = h.WriteString(s)
		_, _ = h.Write([]byte{0})
	}
	section := func() {
		_, _ = h.Write([]byte{0})
	}

	writeField(t.rule.Name)
	section()
	for _, in := range t.inputs {
		writeField(in.Path())
	}
	section()
	writeField(t.Path())
	for _, out := range t.extraOuts {
		writeField(out)
	}
	section()
	for _, p := range sortedPaths(t.implicit) {
		writeField(p)
	}
	section()
	for _, p := range sortedPaths(t.implicitOuts) {
		writeField(p)
	}
	section()
	for _, b := range sortedBindings(app.resolvedVariables()) {
		writeField(b.Key)
		writeField(b.Value)
	}
	section()
	writeField(t.pool)

	return h.Sum64()
}

func sortedPaths(paths []string) []string {
	s := slices.Clone(paths)
	slices.Sort(s)
	return s
}

func sortedBindings(vars map[string]string) []Binding {
	if len(vars) == 0 {
		return nil
	}
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]Binding, len(keys))
	for i, k := range keys {
		out[i] = Binding{Key: k, Value: vars[k]}
	}
	return out
}
