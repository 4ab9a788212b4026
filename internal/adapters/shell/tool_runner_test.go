package shell

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/knin/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

func TestToolArgv(t *testing.T) {
	layout := domain.DefaultLayout()
	bin := func(tool string) string { return layout.BinDir(tool) }

	tests := []struct {
		name string
		def  domain.Definition
		tool string
		args []string
		want []string
	}{
		{
			name: "default directory and no flags",
			def:  domain.Definition{Alias: "java"},
			tool: "krun",
			args: []string{"program.k"},
			want: []string{bin("krun"), "--directory", filepath.Join(".build", "defn", "java"), "program.k"},
		},
		{
			name: "explicit directory and per-tool flags",
			def: domain.Definition{
				Alias:     "llvm",
				Directory: "custom/defn",
				Flags:     map[string]string{"krun": "--debugger --depth 5"},
			},
			tool: "krun",
			args: []string{"program.k", "--output", "none"},
			want: []string{
				bin("krun"), "--directory", "custom/defn",
				"--debugger", "--depth", "5",
				"program.k", "--output", "none",
			},
		},
		{
			name: "flags for other tools are not picked up",
			def: domain.Definition{
				Alias: "java",
				Flags: map[string]string{"kprove": "--spec-file x"},
			},
			tool: "kast",
			want: []string{bin("kast"), "--directory", filepath.Join(".build", "defn", "java")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toolArgv(layout, &tt.def, tt.tool, tt.args)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectDefinition(t *testing.T) {
	p := domain.NewProject(domain.Layout{})
	p.AddDefinition(domain.Definition{Alias: "java"})
	p.AddDefinition(domain.Definition{Alias: "llvm"})

	def, err := selectDefinition(p, "")
	assert.NoError(t, err)
	assert.Equal(t, "java", def.Alias)

	def, err = selectDefinition(p, "llvm")
	assert.NoError(t, err)
	assert.Equal(t, "llvm", def.Alias)

	_, err = selectDefinition(p, "haskell")
	assert.ErrorIs(t, err, domain.ErrUnknownDefinition)
}

func TestExec_UnknownTool(t *testing.T) {
	p := domain.NewProject(domain.Layout{Ext: filepath.Join(t.TempDir(), "ext")})
	p.AddDefinition(domain.Definition{Alias: "java"})

	err := NewToolRunner(nopLogger{}).Exec(context.Background(), p, "krun", "", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownTool)
}
