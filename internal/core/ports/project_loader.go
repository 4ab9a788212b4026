// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/knin/internal/core/domain"

// ProjectLoader defines the interface for loading a project description and
// materializing its build graph.
//
//go:generate go run go.uber.org/mock/mockgen -source=project_loader.go -destination=mocks/mock_project_loader.go -package=mocks
type ProjectLoader interface {
	// Load reads the project description at path and returns the fully
	// constructed graph. All construction errors surface here; emission
	// never revalidates.
	Load(path string) (*domain.Project, error)
}
