package domain

import "go.trai.ch/zerr"

// Definition is a named, compiled semantics a toolchain command can run
// against: an alias, the backend it was compiled with, the directory holding
// the compiled artifacts, and per-tool extra flags and environment. The
// first-registered definition is the default.
type Definition struct {
	// Alias is the definition's unique name.
	Alias string

	// Backend is the compiler backend the definition targets.
	Backend string

	// Directory holds the compiled artifacts. Empty means the layout's
	// conventional definition directory for the alias.
	Directory string

	// Flags maps a tool name to extra flags appended to its invocation.
	Flags map[string]string

	// Env maps a tool name to KEY=VALUE pairs set for its invocation.
	Env map[string]string
}

// Dir returns the definition's artifact directory under the given layout.
func (d *Definition) Dir(layout Layout) string {
	if d.Directory != "" {
		return d.Directory
	}
	return layout.DefinitionDir(d.Alias)
}

// AddDefinition registers a definition. Registering the same alias twice
// replaces the earlier definition but keeps its position.
func (p *Project) AddDefinition(d Definition) {
	if _, exists := p.defs[d.Alias]; !exists {
		p.defOrder = append(p.defOrder, d.Alias)
	}
	p.defs[d.Alias] = &d
}

// Definition looks up a definition by alias.
func (p *Project) Definition(alias string) (*Definition, error) {
	d, ok := p.defs[alias]
	if !ok {
		return nil, zerr.With(zerr.Wrap(ErrUnknownDefinition, "definition not registered"), "definition", alias)
	}
	return d, nil
}

// DefaultDefinition returns the first-registered definition.
func (p *Project) DefaultDefinition() (*Definition, error) {
	if len(p.defOrder) == 0 {
		return nil, zerr.Wrap(ErrUnknownDefinition, "no definitions declared")
	}
	return p.defs[p.defOrder[0]], nil
}

// Definitions returns all definitions in registration order.
func (p *Project) Definitions() []*Definition {
	out := make([]*Definition, len(p.defOrder))
	for i, alias := range p.defOrder {
		out[i] = p.defs[alias]
	}
	return out
}
