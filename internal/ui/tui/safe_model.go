package tui

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
)

type safeModel struct {
	m   model
	log *slog.Logger
}

func wrapSafe(m model, log *slog.Logger) safeModel {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return safeModel{m: m, log: log}
}

func (s safeModel) Init() tea.Cmd {
	return s.m.Init()
}

func (s safeModel) Update(msg tea.Msg) (tm tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic.recovered",
				"where", "tui.update",
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)

			// A pending delete must not stay blocked on a dialog that is gone.
			hadConfirm := s.m.confirm != nil
			s.m.answer(false)
			if s.m.mode == modeEdit {
				s.m.reg.CancelEdit()
			}
			s.m.leaveInput()
			s.m.scr = screenDomains
			s.m.busy = ""
			s.m.toast = ""
			s.m.errText = genericMessage
			tm = s
			cmd = nil
			if hadConfirm {
				cmd = listenConfirm(s.m.confirmCh)
			}
		}
	}()

	inner, c := s.m.Update(msg)

	if mm, ok := inner.(model); ok {
		s.m = mm
	} else if sm, ok := inner.(safeModel); ok {
		s = sm
	}

	return s, c
}

func (s safeModel) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic.recovered",
				"where", "tui.view",
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			out = genericMessage
		}
	}()
	return s.m.View()
}

var _ tea.Model = (*safeModel)(nil)
