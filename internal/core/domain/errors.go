package domain

import "go.trai.ch/zerr"

var (
	// ErrAmbiguousOutput is returned when a rule's output path cannot be
	// inferred: a multi-output rule without per-output naming, or a rule
	// with neither a default extension nor output patterns.
	ErrAmbiguousOutput = zerr.New("ambiguous output path")

	// ErrDuplicateOutput is returned when two distinct build edges resolve
	// to the same output path.
	ErrDuplicateOutput = zerr.New("duplicate output path")

	// ErrUnknownAlias is returned when an alias is referenced before it has
	// been declared.
	ErrUnknownAlias = zerr.New("unknown alias")

	// ErrDuplicateAlias is returned when an alias name is declared twice.
	ErrDuplicateAlias = zerr.New("alias already declared")

	// ErrInvalidOverride is returned for a malformed output override: not a
	// path and not a dot-prefixed extension.
	ErrInvalidOverride = zerr.New("invalid output override")

	// ErrMissingInput is returned when a rule is applied with fewer inputs
	// than its declared arity.
	ErrMissingInput = zerr.New("missing input")

	// ErrUnknownRule is returned when a rule name is not present in the
	// project's rule catalog.
	ErrUnknownRule = zerr.New("unknown rule")

	// ErrDuplicateRule is returned when a rule name is registered twice.
	ErrDuplicateRule = zerr.New("rule already declared")

	// ErrUnknownDefinition is returned when a definition alias is not
	// present in the project's definition registry.
	ErrUnknownDefinition = zerr.New("unknown definition")

	// ErrUnknownTool is returned when a toolchain binary is not present
	// under the layout's bin directory.
	ErrUnknownTool = zerr.New("unknown tool")
)
