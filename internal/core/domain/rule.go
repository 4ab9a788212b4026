package domain

import (
	"maps"
	"slices"
)

// Rule is a reusable recipe template: a command with $in/$out/$variable
// placeholders plus a default output-naming policy. Rules are stateless and
// shared across many applications; all per-use customization lives on
// Application.
type Rule struct {
	// Name identifies the rule in the generated build file.
	Name string

	// Command is the command template, passed through verbatim. $in, $out
	// and $variable references are resolved by the executor, not here.
	Command string

	// Description is a short human-readable progress line.
	Description string

	// Ext is the default output extension (including the dot) used when no
	// override is given.
	Ext string

	// OutDir roots inferred outputs. Empty means the project build dir for
	// default naming, or the input's own directory for a bare-extension
	// override.
	OutDir string

	// Outs are multi-output naming patterns; % expands to the input's
	// basename without extension. Only consulted when NumOutputs > 1 or
	// more than one pattern is declared.
	Outs []string

	// NumOutputs is the declared number of outputs. Zero means one.
	NumOutputs int

	// Variables are default bindings, overridable per application.
	Variables map[string]string

	// Pool is the default scheduling pool, overridable per application.
	Pool string

	// Arity is the number of explicit inputs the rule requires. Zero means
	// one.
	Arity int
}

func (r *Rule) arity() int {
	if r.Arity <= 0 {
		return 1
	}
	return r.Arity
}

func (r *Rule) outputCount() int {
	if n := max(r.NumOutputs, len(r.Outs)); n > 0 {
		return n
	}
	return 1
}

// Input is anything that can stand in for a path in an implicit list: a
// *Target or a raw Path.
type Input interface {
	inputPath() string
}

// Path is a raw file path usable wherever an Input is expected.
type Path string

func (p Path) inputPath() string { return string(p) }

// Application is one customized use-site of a Rule, not yet bound to inputs.
// Applications are immutable values: every customization method returns a new
// Application and leaves the receiver untouched, so one application can be
// handed to several targets without the targets observing each other's
// overrides.
type Application struct {
	rule        *Rule
	output      string
	vars        map[string]string
	implicit    []string
	implicitOut []string
	pool        string
	poolSet     bool
}

func newApplication(r *Rule) Application {
	return Application{rule: r}
}

// Rule returns the underlying rule template.
func (a Application) Rule() *Rule { return a.rule }

// Output overrides the inferred output path. A value containing a path
// separator is taken as the full output path; a dot-prefixed value replaces
// the input's extension.
func (a Application) Output(path string) Application {
	a.output = path
	return a
}

// Variables merges bindings into the application: new keys are added,
// existing keys overwritten, all other keys retained.
func (a Application) Variables(vars map[string]string) Application {
	merged := make(map[string]string, len(a.vars)+len(vars))
	maps.Copy(merged, a.vars)
	maps.Copy(merged, vars)
	a.vars = merged
	return a
}

// Implicit adds implicit dependencies, deduplicating by path.
func (a Application) Implicit(deps ...Input) Application {
	a.implicit = unionPaths(a.implicit, deps)
	return a
}

// ImplicitOutputs adds implicit outputs, deduplicating by path.
func (a Application) ImplicitOutputs(outs ...Input) Application {
	a.implicitOut = unionPaths(a.implicitOut, outs)
	return a
}

// Pool overrides the rule's default scheduling pool.
func (a Application) Pool(name string) Application {
	a.pool = name
	a.poolSet = true
	return a
}

// overrides returns a copy of the application's variable bindings.
func (a Application) overrides() map[string]string {
	if len(a.vars) == 0 {
		return nil
	}
	return maps.Clone(a.vars)
}

// resolvedPool returns the application pool, falling back to the rule default.
func (a Application) resolvedPool() string {
	if a.poolSet {
		return a.pool
	}
	if a.rule != nil {
		return a.rule.Pool
	}
	return ""
}

// resolvedVariables merges rule defaults under the application's overrides.
func (a Application) resolvedVariables() map[string]string {
	if a.rule == nil || len(a.rule.Variables) == 0 {
		return a.overrides()
	}
	merged := maps.Clone(a.rule.Variables)
	maps.Copy(merged, a.vars)
	return merged
}

// unionPaths appends new paths to a fresh slice. The result never shares a
// backing array with dst, so sibling applications derived from the same value
// cannot clobber each other.
func unionPaths(dst []string, deps []Input) []string {
	out := make([]string, 0, len(dst)+len(deps))
	out = append(out, dst...)
	for _, d := range deps {
		if p := d.inputPath(); !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}
