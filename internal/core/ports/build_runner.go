package ports

import "context"

// BuildRunner invokes the external build executor on a generated build file,
// forwarding stdio and surfacing the executor's exit status as an error.
//
//go:generate go run go.uber.org/mock/mockgen -source=build_runner.go -destination=mocks/mock_build_runner.go -package=mocks
type BuildRunner interface {
	Run(ctx context.Context, buildFile string, args []string) error
}
