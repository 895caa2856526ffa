package ports

import "github.com/aalvaropc/domscan/internal/domain"

// ReportStore persists sync reports for later inspection.
type ReportStore interface {
	SaveReport(report domain.SyncReport) (id string, err error)
}
