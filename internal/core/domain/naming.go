package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// inferOutputs resolves the explicit output paths for applying rule r to
// input, honoring an optional override. The first element is the primary
// output; further elements come from the rule's multi-output patterns.
func inferOutputs(layout Layout, input string, r *Rule, override string) ([]string, error) {
	multi := r.outputCount() > 1

	if override != "" {
		full, err := resolveOverride(input, r, override)
		if err != nil {
			return nil, err
		}
		if !multi {
			return []string{full}, nil
		}
		// A single override on a multi-output rule replaces the primary
		// output; the rest still need patterns.
		outs, err := patternOutputs(layout, input, r)
		if err != nil {
			return nil, err
		}
		outs[0] = full
		return outs, nil
	}

	if multi {
		return patternOutputs(layout, input, r)
	}

	if len(r.Outs) == 1 {
		return []string{expandPattern(layout, input, r, r.Outs[0])}, nil
	}

	if r.Ext == "" {
		return nil, zerr.With(zerr.Wrap(ErrAmbiguousOutput, "rule has no default extension"), "rule", r.Name)
	}
	stem := stemOf(input)
	return []string{filepath.Join(defaultOutDir(layout, r), stem+r.Ext)}, nil
}

// resolveOverride interprets an explicit override: a value with a path
// separator is the full output path, a dot-prefixed value swaps the input's
// extension.
func resolveOverride(input string, r *Rule, override string) (string, error) {
	if strings.ContainsRune(override, '/') || strings.ContainsRune(override, filepath.Separator) {
		return filepath.Clean(override), nil
	}
	if strings.HasPrefix(override, ".") {
		dir := r.OutDir
		if dir == "" {
			dir = filepath.Dir(input)
		}
		return filepath.Join(dir, stemOf(input)+override), nil
	}
	err := zerr.Wrap(ErrInvalidOverride, "neither a path nor a dot-prefixed extension")
	return "", zerr.With(zerr.With(err, "override", override), "rule", r.Name)
}

// patternOutputs expands the rule's declared output patterns. Fails when the
// rule declares more outputs than it has patterns for.
func patternOutputs(layout Layout, input string, r *Rule) ([]string, error) {
	if len(r.Outs) < r.outputCount() {
		err := zerr.Wrap(ErrAmbiguousOutput, "rule declares more outputs than patterns")
		return nil, zerr.With(zerr.With(err, "rule", r.Name), "declared_outputs", r.outputCount())
	}
	outs := make([]string, len(r.Outs))
	for i, pat := range r.Outs {
		outs[i] = expandPattern(layout, input, r, pat)
	}
	return outs, nil
}

func expandPattern(layout Layout, input string, r *Rule, pat string) string {
	expanded := strings.ReplaceAll(pat, "%", stemOf(input))
	if strings.ContainsRune(expanded, '/') || strings.ContainsRune(expanded, filepath.Separator) {
		return filepath.Clean(expanded)
	}
	return filepath.Join(defaultOutDir(layout, r), expanded)
}

func defaultOutDir(layout Layout, r *Rule) string {
	if r.OutDir != "" {
		return r.OutDir
	}
	return layout.Build
}

// stemOf returns the basename of a path without its extension.
func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
