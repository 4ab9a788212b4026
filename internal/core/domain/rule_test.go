package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/knin/internal/core/domain"
)

func newTestProject(t *testing.T) *domain.Project {
	t.Helper()
	p := domain.NewProject(domain.Layout{})
	require.NoError(t, p.AddRule(domain.Rule{
		Name:    "tangle",
		Command: "tangle $in > $out",
		Ext:     ".tangled.k",
	}))
	require.NoError(t, p.AddRule(domain.Rule{
		Name:      "compile",
		Command:   "compile $in -o $out",
		Ext:       ".kompiled",
		Variables: map[string]string{"backend": "llvm"},
	}))
	require.NoError(t, p.AddRule(domain.Rule{
		Name:    "link",
		Command: "link $in -o $out",
		Ext:     ".bin",
		Arity:   2,
	}))
	return p
}

func TestApplication_VariablesMerge(t *testing.T) {
	p := newTestProject(t)
	app, err := p.Rule("compile")
	require.NoError(t, err)

	app = app.Variables(map[string]string{"a": "1"}).Variables(map[string]string{"b": "2"})
	target, err := p.Source("foo.k").Then(app)
	require.NoError(t, err)
	assert.Equal(t, []domain.Binding{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}, target.Variables())

	app = app.Variables(map[string]string{"a": "9"})
	target2, err := p.Source("bar.k").Then(app)
	require.NoError(t, err)
	assert.Equal(t, []domain.Binding{{Key: "a", Value: "9"}, {Key: "b", Value: "2"}}, target2.Variables())
}

func TestApplication_CustomizationDoesNotMutateReceiver(t *testing.T) {
	p := newTestProject(t)
	app, err := p.Rule("compile")
	require.NoError(t, err)

	withPool := app.Pool("console")
	withVars := app.Variables(map[string]string{"backend": "java"})

	plain, err := p.Source("a.k").Then(app)
	require.NoError(t, err)
	pooled, err := p.Source("b.k").Then(withPool)
	require.NoError(t, err)
	varred, err := p.Source("c.k").Then(withVars)
	require.NoError(t, err)

	assert.Empty(t, plain.Pool())
	assert.Empty(t, plain.Variables())
	assert.Equal(t, "console", pooled.Pool())
	assert.Equal(t, []domain.Binding{{Key: "backend", Value: "java"}}, varred.Variables())
}

func TestApplication_SharedAcrossTargets(t *testing.T) {
	// One application value applied to two targets must not make the
	// resulting targets observe each other's configuration.
	p := newTestProject(t)
	app, err := p.Rule("tangle")
	require.NoError(t, err)
	app = app.Variables(map[string]string{"code": ".k"})

	t1, err := p.Source("one.md").Then(app)
	require.NoError(t, err)
	t2, err := p.Source("two.md").Then(app.Variables(map[string]string{"code": ".j"}))
	require.NoError(t, err)

	assert.Equal(t, []domain.Binding{{Key: "code", Value: ".k"}}, t1.Variables())
	assert.Equal(t, []domain.Binding{{Key: "code", Value: ".j"}}, t2.Variables())
}

func TestApplication_ImplicitUnion(t *testing.T) {
	p := newTestProject(t)
	helper := p.Source("helpers.k")

	app, err := p.Rule("compile")
	require.NoError(t, err)
	app = app.Implicit(domain.Path("prelude.k"), helper)
	app = app.Implicit(domain.Path("prelude.k")) // duplicate, dropped

	target, err := p.Source("foo.k").Then(app)
	require.NoError(t, err)
	assert.Equal(t, []string{"prelude.k", "helpers.k"}, target.ImplicitInputs())
}

func TestApplication_ImplicitSiblingsDoNotShareBacking(t *testing.T) {
	p := newTestProject(t)
	base, err := p.Rule("compile")
	require.NoError(t, err)
	base = base.Implicit(domain.Path("prelude.k"))

	left := base.Implicit(domain.Path("left.k"))
	right := base.Implicit(domain.Path("right.k"))

	lt, err := p.Source("l.k").Then(left)
	require.NoError(t, err)
	rt, err := p.Source("r.k").Then(right)
	require.NoError(t, err)

	assert.Equal(t, []string{"prelude.k", "left.k"}, lt.ImplicitInputs())
	assert.Equal(t, []string{"prelude.k", "right.k"}, rt.ImplicitInputs())
}

func TestApplication_ImplicitOutputs(t *testing.T) {
	p := newTestProject(t)
	app, err := p.Rule("compile")
	require.NoError(t, err)
	app = app.ImplicitOutputs(domain.Path(".build/foo.d"))

	target, err := p.Source("foo.k").Then(app)
	require.NoError(t, err)
	assert.Equal(t, []string{".build/foo.d"}, target.ImplicitOutputs())
}
