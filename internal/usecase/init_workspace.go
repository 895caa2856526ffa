package usecase

import (
	"errors"
	"strings"

	"github.com/aalvaropc/domscan/internal/domain"
	"github.com/aalvaropc/domscan/internal/ports"
)

type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

func (uc *InitWorkspace) Execute(root string, force bool) ([]string, error) {
	if strings.TrimSpace(root) == "" {
		return nil, &domain.OpError{Op: "usecase.init", Kind: domain.KindValidation, Err: errors.New("root is empty")}
	}
	return uc.initializer.Init(domain.WorkspaceSpec{Root: root}, force)
}
