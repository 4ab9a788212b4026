package config

// Projectfile represents the structure of the knin.yaml project description.
type Projectfile struct {
	Version     string             `yaml:"version"`
	Layout      LayoutDTO          `yaml:"layout"`
	Pools       map[string]int     `yaml:"pools"`
	Rules       map[string]RuleDTO `yaml:"rules"`
	Definitions []DefinitionDTO    `yaml:"definitions"`
	Targets     []PipelineDTO      `yaml:"targets"`
	Aliases     []AliasDTO         `yaml:"aliases"`
	Defaults    []string           `yaml:"defaults"`
}

// LayoutDTO overrides the conventional directory layout.
type LayoutDTO struct {
	Ext          string `yaml:"ext"`
	Build        string `yaml:"build"`
	Tangle       string `yaml:"tangle"`
	Toolchain    string `yaml:"toolchain"`
	ToolchainBin string `yaml:"toolchainBin"`
}

// RuleDTO represents one rule descriptor in the catalog. The catalog is open
// data: adding a rule here never touches core graph logic.
type RuleDTO struct {
	Command     string            `yaml:"command"`
	Description string            `yaml:"description"`
	Ext         string            `yaml:"ext"`
	OutDir      string            `yaml:"outDir"`
	Outs        []string          `yaml:"outs"`
	NumOutputs  int               `yaml:"numOutputs"`
	Variables   map[string]string `yaml:"variables"`
	Pool        string            `yaml:"pool"`
	Arity       int               `yaml:"arity"`
}

// DefinitionDTO represents one definition entry. List form keeps declaration
// order; the first entry is the default definition.
type DefinitionDTO struct {
	Alias     string            `yaml:"alias"`
	Backend   string            `yaml:"backend"`
	Directory string            `yaml:"directory"`
	Flags     map[string]string `yaml:"flags"`
	Env       map[string]string `yaml:"env"`
}

// PipelineDTO describes one source and the chain of rule applications run
// over it.
type PipelineDTO struct {
	Source  string    `yaml:"source"`
	Steps   []StepDTO `yaml:"steps"`
	Alias   string    `yaml:"alias"`
	Default bool      `yaml:"default"`
}

// StepDTO is one rule application in a pipeline.
type StepDTO struct {
	Rule            string            `yaml:"rule"`
	Output          string            `yaml:"output"`
	Variables       map[string]string `yaml:"variables"`
	Implicit        []string          `yaml:"implicit"`
	ImplicitOutputs []string          `yaml:"implicitOutputs"`
	Pool            string            `yaml:"pool"`
	Inputs          []string          `yaml:"inputs"`
}

// AliasDTO declares a named group of targets. Entries may reference earlier
// aliases, derived target paths, or pipeline outputs.
type AliasDTO struct {
	Name    string   `yaml:"name"`
	Targets []string `yaml:"targets"`
}
