package tui

import (
	"log/slog"

	"github.com/aalvaropc/domscan/internal/ports"
)

type Deps struct {
	Domains ports.DomainService
	Scanner ports.ResourceScanner

	Logger  *slog.Logger
	BaseURL string
	Debug   bool
}
