package usecase

import (
	"context"
	"strings"

	"github.com/aalvaropc/domscan/internal/classify"
	"github.com/aalvaropc/domscan/internal/domain"
	"github.com/aalvaropc/domscan/internal/ports"
)

// ScanURL runs a one-off scan of a single page.
type ScanURL struct {
	scanner ports.ResourceScanner
}

func NewScanURL(scanner ports.ResourceScanner) *ScanURL {
	return &ScanURL{scanner: scanner}
}

func (uc *ScanURL) Execute(ctx context.Context, target string) (classify.View, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return classify.Classify(nil), &domain.OpError{
			Op:   "usecase.scan",
			Kind: domain.KindValidation,
			Err:  domain.ErrEmptyDomain,
		}
	}

	records, err := uc.scanner.Scan(ctx, target)
	if err != nil {
		return classify.Classify(nil), &domain.OpError{
			Op:   "usecase.scan",
			Kind: domain.KindFetch,
			Path: target,
			Err:  err,
		}
	}
	return classify.Classify(records), nil
}
