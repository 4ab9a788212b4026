// Package ninja serializes a project graph to the ninja build-file syntax.
package ninja

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"go.trai.ch/knin/internal/core/domain"
	"go.trai.ch/knin/internal/core/ports"
	"go.trai.ch/zerr"
)

// Emitter implements ports.Emitter for the ninja grammar. Emission walks the
// graph in stable orders only (first-used rules, registration-order edges,
// declaration-order aliases and pools, sorted per-edge variables), so two
// emissions of an unmodified graph are byte-identical.
type Emitter struct{}

// NewEmitter creates a new Emitter.
func NewEmitter() *Emitter {
	return &Emitter{}
}

var _ ports.Emitter = (*Emitter)(nil)

// Emit writes the graph as a ninja file.
func (e *Emitter) Emit(w io.Writer, p *domain.Project) error {
	var b strings.Builder

	b.WriteString("# Generated by knin. Do not edit.\n\n")
	fmt.Fprintf(&b, "builddir = %s\n\n", escapePath(p.Layout().Build))

	for _, pool := range p.Pools() {
		// ninja predefines the console pool; redeclaring it is an error.
		if pool.Name == "console" {
			continue
		}
		fmt.Fprintf(&b, "pool %s\n  depth = %d\n\n", pool.Name, pool.Depth)
	}

	for _, r := range p.UsedRules() {
		writeRule(&b, r)
	}

	for _, t := range p.Targets() {
		writeEdge(&b, t)
	}

	for _, a := range p.Aliases() {
		b.WriteString("build ")
		b.WriteString(escapePath(a.Path()))
		b.WriteString(": phony")
		for _, m := range a.AliasMembers() {
			b.WriteString(" ")
			b.WriteString(escapePath(m.Path()))
		}
		b.WriteString("\n")
	}
	if len(p.Aliases()) > 0 {
		b.WriteString("\n")
	}

	if defaults := p.Defaults(); len(defaults) > 0 {
		b.WriteString("default")
		for _, t := range defaults {
			b.WriteString(" ")
			b.WriteString(escapePath(t.Path()))
		}
		b.WriteString("\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return zerr.Wrap(err, "failed to write build file")
	}
	return nil
}

func writeRule(b *strings.Builder, r *domain.Rule) {
	fmt.Fprintf(b, "rule %s\n", r.Name)
	fmt.Fprintf(b, "  command = %s\n", r.Command)
	if r.Description != "" {
		fmt.Fprintf(b, "  description = %s\n", r.Description)
	}
	if r.Pool != "" {
		fmt.Fprintf(b, "  pool = %s\n", r.Pool)
	}
	// Rule-scope bindings act as defaults that edges may override.
	for _, binding := range sortedRuleVariables(r) {
		fmt.Fprintf(b, "  %s = %s\n", binding.Key, binding.Value)
	}
	b.WriteString("\n")
}

func writeEdge(b *strings.Builder, t *domain.Target) {
	b.WriteString("build ")
	b.WriteString(escapePath(t.Path()))
	for _, out := range t.ExtraOutputs() {
		b.WriteString(" ")
		b.WriteString(escapePath(out))
	}
	if outs := t.ImplicitOutputs(); len(outs) > 0 {
		b.WriteString(" |")
		for _, out := range outs {
			b.WriteString(" ")
			b.WriteString(escapePath(out))
		}
	}
	b.WriteString(": ")
	b.WriteString(t.Rule().Name)
	for _, in := range t.Inputs() {
		b.WriteString(" ")
		b.WriteString(escapePath(in.Path()))
	}
	if deps := t.ImplicitInputs(); len(deps) > 0 {
		b.WriteString(" |")
		for _, dep := range deps {
			b.WriteString(" ")
			b.WriteString(escapePath(dep))
		}
	}
	b.WriteString("\n")

	if pool := t.Pool(); pool != t.Rule().Pool {
		fmt.Fprintf(b, "  pool = %s\n", pool)
	}
	for _, binding := range t.Variables() {
		fmt.Fprintf(b, "  %s = %s\n", binding.Key, binding.Value)
	}
	b.WriteString("\n")
}

func sortedRuleVariables(r *domain.Rule) []domain.Binding {
	if len(r.Variables) == 0 {
		return nil
	}
	keys := make([]string, 0, len(r.Variables))
	for k := range r.Variables {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]domain.Binding, len(keys))
	for i, k := range keys {
		out[i] = domain.Binding{Key: k, Value: r.Variables[k]}
	}
	return out
}

// escapePath escapes ninja-significant characters in a path. $ must be
// escaped first so the escapes themselves survive.
func escapePath(path string) string {
	path = strings.ReplaceAll(path, "$", "$$")
	path = strings.ReplaceAll(path, " ", "$ ")
	path = strings.ReplaceAll(path, ":", "$:")
	return path
}
