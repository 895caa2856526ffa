package ports

import "github.com/aalvaropc/domscan/internal/domain"

// WorkspaceInitializer scaffolds a project directory and returns the files it wrote.
type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) ([]string, error)
}
