// Package domain contains the core model of the build-graph generator:
// projects, targets, rules, rule applications, and output-path inference.
package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// Project is the aggregate owning every target and rule created during one
// build description session. It tracks aliases, default-build membership,
// the scheduling pools, and the directory layout. A Project is built
// single-threaded and is not safe for concurrent mutation.
type Project struct {
	layout Layout

	rules     map[string]*Rule
	usedRules []*Rule

	targets map[InternedString]*Target
	order   []*Target

	sources map[InternedString]*Target

	aliases    map[string]*Target
	aliasOrder []*Target

	defaults []*Target

	pools     map[string]int
	poolOrder []string

	defs     map[string]*Definition
	defOrder []string
}

// NewProject creates an empty project with the given layout. Zero-valued
// layout fields fall back to the conventional defaults.
func NewProject(layout Layout) *Project {
	return &Project{
		layout:  layout.withDefaults(),
		rules:   make(map[string]*Rule),
		targets: make(map[InternedString]*Target),
		sources: make(map[InternedString]*Target),
		aliases: make(map[string]*Target),
		pools:   make(map[string]int),
		defs:    make(map[string]*Definition),
	}
}

// Layout returns the project's directory layout.
func (p *Project) Layout() Layout { return p.layout }

// AddRule registers a rule template in the catalog.
func (p *Project) AddRule(r Rule) error {
	if _, exists := p.rules[r.Name]; exists {
		return zerr.With(zerr.Wrap(ErrDuplicateRule, "name already in the catalog"), "rule", r.Name)
	}
	p.rules[r.Name] = &r
	return nil
}

// HasRule reports whether the catalog contains the named rule.
func (p *Project) HasRule(name string) bool {
	_, ok := p.rules[name]
	return ok
}

// Rule returns a fresh application of the named catalog rule, carrying the
// rule's defaults as its initial state.
func (p *Project) Rule(name string) (Application, error) {
	r, ok := p.rules[name]
	if !ok {
		return Application{}, zerr.With(zerr.Wrap(ErrUnknownRule, "rule not in the catalog"), "rule", name)
	}
	return newApplication(r), nil
}

// Source returns the leaf target for an existing path. Calls are memoized:
// the same path always yields the same target identity. A path already
// produced by a build edge yields that derived target, so a path never has
// two identities in the graph.
func (p *Project) Source(path string) *Target {
	key := Intern(path)
	if t, ok := p.targets[key]; ok {
		return t
	}
	if t, ok := p.sources[key]; ok {
		return t
	}
	t := &Target{proj: p, path: key}
	p.sources[key] = t
	return t
}

// Alias declares a named phony aggregate over the given targets. Nested
// aliases are flattened and duplicate members dropped, so the emitted phony
// edge lists each concrete target once.
func (p *Project) Alias(name string, members ...*Target) (*Target, error) {
	if _, exists := p.aliases[name]; exists {
		return nil, zerr.With(zerr.Wrap(ErrDuplicateAlias, "alias name taken"), "alias", name)
	}
	// An alias emits a phony edge at its name, so the name must not collide
	// with any path already in the graph.
	key := Intern(name)
	if _, exists := p.targets[key]; exists {
		return nil, zerr.With(zerr.Wrap(ErrDuplicateOutput, "alias name matches a target path"), "alias", name)
	}
	if _, exists := p.sources[key]; exists {
		return nil, zerr.With(zerr.Wrap(ErrDuplicateOutput, "alias name matches a source path"), "alias", name)
	}

	flat := make([]*Target, 0, len(members))
	seen := make(map[InternedString]bool)
	var add func(ts []*Target)
	add = func(ts []*Target) {
		for _, t := range ts {
			if t.IsAlias() {
				add(t.aliasMembers)
				continue
			}
			if !seen[t.path] {
				seen[t.path] = true
				flat = append(flat, t)
			}
		}
	}
	add(members)

	t := &Target{
		proj:         p,
		path:         key,
		alias:        name,
		aliasMembers: flat,
	}
	p.aliases[name] = t
	p.aliasOrder = append(p.aliasOrder, t)
	return t, nil
}

// AliasTarget looks up a previously declared alias by name.
func (p *Project) AliasTarget(name string) (*Target, error) {
	t, ok := p.aliases[name]
	if !ok {
		return nil, zerr.With(zerr.Wrap(ErrUnknownAlias, "alias not declared"), "alias", name)
	}
	return t, nil
}

// Default marks targets as members of the default build set, in call order.
// Marking a target twice is idempotent.
func (p *Project) Default(targets ...*Target) {
	for _, t := range targets {
		if t.isDefault {
			continue
		}
		t.isDefault = true
		p.defaults = append(p.defaults, t)
	}
}

// Pool declares a scheduling pool with the given depth. Redeclaring a pool
// updates its depth without changing its position.
func (p *Project) Pool(name string, depth int) {
	if _, exists := p.pools[name]; !exists {
		p.poolOrder = append(p.poolOrder, name)
	}
	p.pools[name] = depth
}

// register adds a derived target to the graph, enforcing output-path
// uniqueness across derived targets, source leaves, and aliases. An existing
// target with the same path is returned as-is when its producing edge is
// identical; otherwise registration fails.
func (p *Project) register(nt *Target) (*Target, error) {
	if existing, ok := p.targets[nt.path]; ok {
		if existing.fingerprint == nt.fingerprint {
			return existing, nil
		}
		return nil, zerr.With(zerr.Wrap(ErrDuplicateOutput, "another edge produces this path"), "path", nt.Path())
	}
	if err := p.checkPathFree(nt.Path()); err != nil {
		return nil, err
	}
	for _, out := range nt.extraOuts {
		if _, ok := p.targets[Intern(out)]; ok {
			return nil, zerr.With(zerr.Wrap(ErrDuplicateOutput, "another edge produces this path"), "path", out)
		}
		if err := p.checkPathFree(out); err != nil {
			return nil, err
		}
	}

	p.targets[nt.path] = nt
	for _, out := range nt.extraOuts {
		p.targets[Intern(out)] = nt
	}
	p.order = append(p.order, nt)

	if !slices.Contains(p.usedRules, nt.rule) {
		p.usedRules = append(p.usedRules, nt.rule)
	}
	return nt, nil
}

// checkPathFree rejects an output path already claimed by a source leaf or an
// alias.
func (p *Project) checkPathFree(path string) error {
	key := Intern(path)
	if _, ok := p.sources[key]; ok {
		return zerr.With(zerr.Wrap(ErrDuplicateOutput, "path is an existing source leaf"), "path", path)
	}
	if _, ok := p.aliases[path]; ok {
		return zerr.With(zerr.Wrap(ErrDuplicateOutput, "path is a declared alias"), "path", path)
	}
	return nil
}

// Target looks up a derived target by output path.
func (p *Project) Target(path string) (*Target, bool) {
	t, ok := p.targets[Intern(path)]
	return t, ok
}

// UsedRules returns the rules with at least one build edge, in first-used
// order.
func (p *Project) UsedRules() []*Rule { return slices.Clone(p.usedRules) }

// Targets returns the derived targets in registration order.
func (p *Project) Targets() []*Target { return slices.Clone(p.order) }

// Aliases returns the alias targets in declaration order.
func (p *Project) Aliases() []*Target { return slices.Clone(p.aliasOrder) }

// Defaults returns the default-build targets in marking order.
func (p *Project) Defaults() []*Target { return slices.Clone(p.defaults) }

// PoolDecl is one declared scheduling pool.
type PoolDecl struct {
	Name  string
	Depth int
}

// Pools returns the declared pools in declaration order.
func (p *Project) Pools() []PoolDecl {
	out := make([]PoolDecl, len(p.poolOrder))
	for i, name := range p.poolOrder {
		out[i] = PoolDecl{Name: name, Depth: p.pools[name]}
	}
	return out
}
