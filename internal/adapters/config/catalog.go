package config

import (
	"path/filepath"

	"go.trai.ch/knin/internal/core/domain"
)

// BuiltinRules returns the default rule catalog for a layout: tangling
// literate sources, compiling definitions, running programs, and checking
// output against an expected file. Project files may shadow any of these by
// declaring a rule with the same name.
func BuiltinRules(layout domain.Layout) []domain.Rule {
	return []domain.Rule{
		{
			Name: "tangle",
			Command: "LUA_PATH=$lua_path pandoc --from markdown --to $tangler" +
				" --metadata=code:$code $in > $out",
			Description: "tangling $in",
			Ext:         ".k",
			OutDir:      layout.TangleDir(),
			Variables: map[string]string{
				"code":     ".k",
				"tangler":  layout.ExtDir("pandoc-tangle", "tangle.lua"),
				"lua_path": layout.ExtDir("pandoc-tangle") + "/?.lua;;",
			},
		},
		{
			Name: "compile",
			Command: filepath.Join("$bindir", "kompile") +
				" --backend $backend $flags --output-definition $out $in",
			Description: "compiling $in ($backend)",
			Ext:         ".kompiled",
			Variables: map[string]string{
				"bindir":  layout.BinDir(),
				"backend": "llvm",
				"flags":   "",
			},
		},
		{
			Name: "run",
			Command: filepath.Join("$bindir", "krun") +
				" --definition $definition $flags $in > $out",
			Description: "running $in",
			Ext:         ".out",
			Pool:        "console",
			Variables: map[string]string{
				"bindir":     layout.BinDir(),
				"definition": "",
				"flags":      "",
			},
		},
		{
			Name: "check",
			Command: "git --no-pager diff --no-index --ignore-all-space $expected $in" +
				" && touch $out",
			Description: "checking $in",
			Ext:         ".checked",
			Variables: map[string]string{
				"expected": "",
			},
		},
	}
}
