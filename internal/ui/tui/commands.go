package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/domscan/internal/registry"
	"github.com/aalvaropc/domscan/internal/usecase"
)

// Remote calls are bounded here; the executor applies its own per-request
// timeout underneath.
const remoteTimeout = 2 * time.Minute

// Confirmation waits on a human, so removals get a longer budget.
const removeTimeout = 30 * time.Minute

func cmdLoad(reg *registry.Controller) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()
		return domainsLoadedMsg{err: reg.Load(ctx)}
	}
}

func cmdSubmit(reg *registry.Controller, draft string, creating bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()
		e, err := reg.Submit(ctx, draft)
		return submitDoneMsg{entry: e, created: creating, err: err}
	}
}

func cmdRemove(reg *registry.Controller, index int) tea.Cmd {
	return func() tea.Msg {
		domains := reg.Domains()
		var msg removeDoneMsg
		if index >= 0 && index < len(domains) {
			msg.target = domains[index]
		}

		ctx, cancel := context.WithTimeout(context.Background(), removeTimeout)
		defer cancel()
		msg.removed, msg.err = reg.Remove(ctx, index)
		return msg
	}
}

func cmdSync(uc *usecase.SyncDomain, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()
		report, err := uc.Execute(ctx, name)
		return syncDoneMsg{name: name, report: report, err: err}
	}
}

func cmdScan(uc *usecase.ScanURL, target string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()
		view, err := uc.Execute(ctx, target)
		return scanDoneMsg{target: target, view: view, err: err}
	}
}
