package tui

import (
	"github.com/aalvaropc/domscan/internal/classify"
	"github.com/aalvaropc/domscan/internal/domain"
)

type domainsLoadedMsg struct {
	err error
}

type submitDoneMsg struct {
	entry   domain.DomainEntry
	created bool
	err     error
}

type removeDoneMsg struct {
	target  domain.DomainEntry
	removed bool
	err     error
}

// confirmRequestMsg asks the model to show the delete dialog.
type confirmRequestMsg confirmRequest

type syncDoneMsg struct {
	name   string
	report domain.SyncReport
	err    error
}

type scanDoneMsg struct {
	target string
	view   classify.View
	err    error
}
