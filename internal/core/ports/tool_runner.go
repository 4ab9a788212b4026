package ports

import (
	"context"

	"go.trai.ch/knin/internal/core/domain"
)

// ToolRunner invokes a toolchain binary against one of the project's
// definitions, forwarding stdio and the child's exit status.
//
//go:generate go run go.uber.org/mock/mockgen -source=tool_runner.go -destination=mocks/mock_tool_runner.go -package=mocks
type ToolRunner interface {
	// Exec runs the named tool. definition selects the definition alias;
	// empty means the project's default definition.
	Exec(ctx context.Context, p *domain.Project, tool, definition string, args []string) error
}
