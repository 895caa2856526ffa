package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/domscan/internal/ports"
)

type confirmRequest struct {
	prompt string
	reply  chan<- bool
}

// chanConfirmer hands confirmation prompts to the bubbletea loop and waits for
// the dialog's answer. The loop receives them through listenConfirm.
type chanConfirmer struct {
	requests chan confirmRequest
}

func newChanConfirmer() *chanConfirmer {
	return &chanConfirmer{requests: make(chan confirmRequest)}
}

var _ ports.Confirmer = (*chanConfirmer)(nil)

func (c *chanConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	reply := make(chan bool, 1)

	select {
	case c.requests <- confirmRequest{prompt: prompt, reply: reply}:
	case <-ctx.Done():
		return false, ctx.Err()
	}

	select {
	case ok := <-reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func listenConfirm(ch <-chan confirmRequest) tea.Cmd {
	return func() tea.Msg {
		req, ok := <-ch
		if !ok {
			return errMsg{err: errors.New("confirm channel closed")}
		}
		return confirmRequestMsg(req)
	}
}

type errMsg struct {
	err error
}
