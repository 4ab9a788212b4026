// Package config provides the YAML project description loader for knin.
package config

import (
	"os"
	"slices"

	"go.trai.ch/knin/internal/core/domain"
	"go.trai.ch/knin/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ProjectLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

var _ ports.ProjectLoader = (*Loader)(nil)

// Load reads the project description at path and materializes its graph.
func (l *Loader) Load(path string) (*domain.Project, error) {
	p, err := Load(path)
	if err != nil {
		return nil, err
	}
	l.logger.Info("project description loaded")
	return p, nil
}

// Load reads a project description file and builds the graph through the
// domain API, so every construction invariant is enforced in one place.
func Load(path string) (*domain.Project, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read project file")
	}

	var pf Projectfile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, zerr.Wrap(err, "failed to parse project file")
	}

	return build(&pf)
}

func build(pf *Projectfile) (*domain.Project, error) {
	layout := domain.Layout{
		Ext:          pf.Layout.Ext,
		Build:        pf.Layout.Build,
		Tangle:       pf.Layout.Tangle,
		Toolchain:    pf.Layout.Toolchain,
		ToolchainBin: pf.Layout.ToolchainBin,
	}
	p := domain.NewProject(layout)

	// Sorted registration keeps pool emission order independent of map
	// iteration, which the byte-determinism contract requires.
	for _, name := range sortedKeys(pf.Pools) {
		p.Pool(name, pf.Pools[name])
	}

	for _, name := range sortedKeys(pf.Rules) {
		if err := p.AddRule(ruleFromDTO(name, pf.Rules[name])); err != nil {
			return nil, err
		}
	}
	for _, r := range BuiltinRules(p.Layout()) {
		if p.HasRule(r.Name) {
			continue // project file shadows the builtin
		}
		if err := p.AddRule(r); err != nil {
			return nil, err
		}
	}

	for _, d := range pf.Definitions {
		p.AddDefinition(domain.Definition{
			Alias:     d.Alias,
			Backend:   d.Backend,
			Directory: d.Directory,
			Flags:     d.Flags,
			Env:       d.Env,
		})
	}

	for _, pipe := range pf.Targets {
		if err := buildPipeline(p, pipe); err != nil {
			return nil, err
		}
	}

	for _, a := range pf.Aliases {
		members := make([]*domain.Target, 0, len(a.Targets))
		for _, name := range a.Targets {
			t, err := resolveTarget(p, name)
			if err != nil {
				return nil, err
			}
			members = append(members, t)
		}
		if _, err := p.Alias(a.Name, members...); err != nil {
			return nil, err
		}
	}

	for _, name := range pf.Defaults {
		t, err := resolveTarget(p, name)
		if err != nil {
			return nil, err
		}
		p.Default(t)
	}

	return p, nil
}

func ruleFromDTO(name string, dto RuleDTO) domain.Rule {
	return domain.Rule{
		Name:        name,
		Command:     dto.Command,
		Description: dto.Description,
		Ext:         dto.Ext,
		OutDir:      dto.OutDir,
		Outs:        dto.Outs,
		NumOutputs:  dto.NumOutputs,
		Variables:   dto.Variables,
		Pool:        dto.Pool,
		Arity:       dto.Arity,
	}
}

func buildPipeline(p *domain.Project, pipe PipelineDTO) error {
	cur := p.Source(pipe.Source)
	for _, step := range pipe.Steps {
		app, err := p.Rule(step.Rule)
		if err != nil {
			return err
		}
		if step.Output != "" {
			app = app.Output(step.Output)
		}
		if len(step.Variables) > 0 {
			app = app.Variables(step.Variables)
		}
		if len(step.Implicit) > 0 {
			app = app.Implicit(asInputs(step.Implicit)...)
		}
		if len(step.ImplicitOutputs) > 0 {
			app = app.ImplicitOutputs(asInputs(step.ImplicitOutputs)...)
		}
		if step.Pool != "" {
			app = app.Pool(step.Pool)
		}

		extra := make([]*domain.Target, len(step.Inputs))
		for i, in := range step.Inputs {
			if t, ok := p.Target(in); ok {
				extra[i] = t
			} else {
				extra[i] = p.Source(in)
			}
		}

		cur, err = cur.Then(app, extra...)
		if err != nil {
			return err
		}
	}

	if pipe.Alias != "" {
		t, err := p.Alias(pipe.Alias, cur)
		if err != nil {
			return err
		}
		cur = t
	}
	if pipe.Default {
		p.Default(cur)
	}
	return nil
}

// resolveTarget maps a name from the aliases/defaults sections to a graph
// node: declared aliases first, then derived targets by output path.
func resolveTarget(p *domain.Project, name string) (*domain.Target, error) {
	if t, err := p.AliasTarget(name); err == nil {
		return t, nil
	}
	if t, ok := p.Target(name); ok {
		return t, nil
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrUnknownAlias, "name matches no alias or derived target"), "alias", name)
}

func asInputs(paths []string) []domain.Input {
	out := make([]domain.Input, len(paths))
	for i, p := range paths {
		out[i] = domain.Path(p)
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
