package domain

import "path/filepath"

const (
	// ProjectFileName is the name of the project description file.
	ProjectFileName = "knin.yaml"

	// BuildFileName is the name of the generated build file.
	BuildFileName = "build.ninja"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Layout is the directory convention of a project: where external
// dependencies, build outputs, and tangled sources live. All helpers are pure
// string joins and carry no graph side effects.
type Layout struct {
	// Ext is the root for external dependencies (checked-out submodules).
	Ext string

	// Build is the root for build outputs.
	Build string

	// Tangle is the root for tangled sources. Empty means <build>/tangle.
	Tangle string

	// Toolchain is the toolchain checkout, relative to Ext.
	Toolchain string

	// ToolchainBin is the binary directory, relative to the toolchain
	// checkout.
	ToolchainBin string
}

// DefaultLayout returns the conventional layout.
func DefaultLayout() Layout {
	return Layout{
		Ext:          "ext",
		Build:        ".build",
		Toolchain:    "k",
		ToolchainBin: filepath.Join("k-distribution", "target", "release", "k", "bin"),
	}
}

// withDefaults fills empty fields from DefaultLayout.
func (l Layout) withDefaults() Layout {
	d := DefaultLayout()
	if l.Ext == "" {
		l.Ext = d.Ext
	}
	if l.Build == "" {
		l.Build = d.Build
	}
	if l.Toolchain == "" {
		l.Toolchain = d.Toolchain
	}
	if l.ToolchainBin == "" {
		l.ToolchainBin = d.ToolchainBin
	}
	return l
}

// ExtDir joins parts under the external dependency root.
func (l Layout) ExtDir(parts ...string) string {
	return filepath.Join(append([]string{l.Ext}, parts...)...)
}

// ToolchainDir joins parts under the toolchain checkout.
func (l Layout) ToolchainDir(parts ...string) string {
	return l.ExtDir(append([]string{l.Toolchain}, parts...)...)
}

// BinDir joins parts under the toolchain binary directory.
func (l Layout) BinDir(parts ...string) string {
	return l.ToolchainDir(append([]string{l.ToolchainBin}, parts...)...)
}

// BuildDir joins parts under the build output root.
func (l Layout) BuildDir(parts ...string) string {
	return filepath.Join(append([]string{l.Build}, parts...)...)
}

// TangleDir joins parts under the tangle output root.
func (l Layout) TangleDir(parts ...string) string {
	root := l.Tangle
	if root == "" {
		root = l.BuildDir("tangle")
	}
	return filepath.Join(append([]string{root}, parts...)...)
}

// DefinitionDir returns the default directory for a definition alias.
func (l Layout) DefinitionDir(alias string) string {
	return l.BuildDir("defn", alias)
}

// BuildFile returns the path of the generated build file.
func (l Layout) BuildFile() string {
	return l.BuildDir(BuildFileName)
}
