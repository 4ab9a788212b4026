package ports

import (
	"io"

	"go.trai.ch/knin/internal/core/domain"
)

// Emitter serializes a project graph to the low-level build-file syntax.
// Emission must be deterministic: the same graph yields byte-identical
// output on every call.
//
//go:generate go run go.uber.org/mock/mockgen -source=emitter.go -destination=mocks/mock_emitter.go -package=mocks
type Emitter interface {
	Emit(w io.Writer, p *domain.Project) error
}
