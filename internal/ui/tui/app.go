package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/domscan/internal/classify"
	"github.com/aalvaropc/domscan/internal/domain"
	"github.com/aalvaropc/domscan/internal/registry"
	"github.com/aalvaropc/domscan/internal/usecase"
)

type screen int

const (
	screenDomains screen = iota
	screenResults
)

type mode int

const (
	modeBrowse mode = iota
	modeEdit
	modeCreate
	modeScan
	modeConfirm
)

type model struct {
	theme Theme
	deps  Deps
	log   *slog.Logger

	reg       *registry.Controller
	syncUC    *usecase.SyncDomain
	scanUC    *usecase.ScanURL
	confirmCh <-chan confirmRequest

	scr      screen
	mode     mode
	prevMode mode
	selected int

	input   textinput.Model
	results viewport.Model
	spin    spinner.Model

	busy    string
	confirm *confirmRequest

	resultTitle  string
	resultDomain string

	toast   string
	errText string
	width   int
	height  int
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, m.log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	conf := newChanConfirmer()

	in := textinput.New()
	in.CharLimit = 253
	in.Width = 48
	in.Prompt = "› "
	_ = in.Cursor.SetMode(cursor.CursorStatic)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return model{
		theme: DefaultTheme(),
		deps:  deps,
		log:   log,

		reg: registry.New(deps.Domains,
			registry.WithLogger(log),
			registry.WithConfirmer(conf),
		),
		syncUC:    usecase.NewSyncDomain(deps.Scanner, usecase.WithSyncLogger(log)),
		scanUC:    usecase.NewScanURL(deps.Scanner),
		confirmCh: conf.requests,

		scr:     screenDomains,
		mode:    modeBrowse,
		input:   in,
		results: viewport.New(80, 20),
		spin:    sp,
		busy:    "Loading domains",
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, cmdLoad(m.reg), listenConfirm(m.confirmCh))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.results.Width = max(msg.Width-8, 20)
		m.results.Height = max(msg.Height-12, 5)
		m.input.Width = max(msg.Width-24, 20)
		return m, nil

	case spinner.TickMsg:
		if m.busy == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case domainsLoadedMsg:
		m.busy = ""
		if msg.err != nil {
			m.fail("load", msg.err)
			return m, nil
		}
		m.errText = ""
		if m.mode == modeEdit {
			m.leaveInput()
		}
		m.clampSelection()
		return m, nil

	case submitDoneMsg:
		m.busy = ""
		if msg.err != nil {
			// The draft and, when renaming, the edit cursor are kept for a retry.
			m.fail("submit", msg.err)
			return m, nil
		}
		m.leaveInput()
		m.errText = ""
		if msg.created {
			m.toast = "Created " + msg.entry.Name
			m.selected = m.reg.Len() - 1
		} else {
			m.toast = "Renamed to " + msg.entry.Name
		}
		return m, nil

	case confirmRequestMsg:
		req := confirmRequest(msg)
		m.confirm = &req
		m.prevMode = m.mode
		m.mode = modeConfirm
		return m, nil

	case removeDoneMsg:
		m.busy = ""
		if msg.err != nil {
			m.fail("remove", msg.err)
			return m, nil
		}
		if !msg.removed {
			m.toast = "Delete cancelled"
			return m, nil
		}
		m.errText = ""
		m.toast = "Deleted " + msg.target.Name
		if _, editing := m.reg.EditCursor(); m.mode == modeEdit && !editing {
			m.leaveInput()
		}
		m.clampSelection()
		return m, nil

	case syncDoneMsg:
		m.busy = ""
		if msg.name != m.resultDomain {
			// The user left the results screen; the report stays available via Recent.
			return m, nil
		}
		if msg.err != nil {
			m.fail("sync", msg.err)
			return m, nil
		}
		m.errText = ""
		m.showSync(msg.report)
		return m, nil

	case scanDoneMsg:
		m.busy = ""
		if msg.err != nil {
			m.fail("scan", msg.err)
			return m, nil
		}
		m.errText = ""
		m.resultTitle = "Scan: " + msg.target
		m.results.SetContent(renderResults(m.theme, msg.view, nil))
		m.results.GotoTop()
		return m, nil

	case errMsg:
		m.fail("internal", msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.scr == screenResults {
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.answer(false)
		return m, tea.Quit
	}

	switch m.mode {
	case modeConfirm:
		return m.handleConfirmKey(msg)
	case modeEdit, modeCreate, modeScan:
		return m.handleInputKey(msg)
	}

	if m.scr == screenResults {
		return m.handleResultsKey(msg)
	}
	return m.handleDomainsKey(msg)
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.answer(true)
		m.busy = "Deleting"
		return m, tea.Batch(m.spin.Tick, listenConfirm(m.confirmCh))
	case "n", "N", "esc", "q":
		m.answer(false)
		return m, listenConfirm(m.confirmCh)
	}
	return m, nil
}

// answer replies to the pending confirmation, if any, and restores the mode
// that was active before the dialog opened.
func (m *model) answer(ok bool) {
	if m.confirm == nil {
		return
	}
	m.confirm.reply <- ok
	m.confirm = nil
	m.mode = m.prevMode
}

func (m model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.mode == modeEdit {
			m.reg.CancelEdit()
		}
		m.leaveInput()
		return m, nil

	case "enter":
		if m.busy != "" {
			return m, nil
		}
		value := m.input.Value()
		m.toast = ""
		switch m.mode {
		case modeScan:
			target := strings.TrimSpace(value)
			m.leaveInput()
			m.scr = screenResults
			m.resultDomain = ""
			m.resultTitle = "Scan: " + target
			m.results.SetContent("")
			m.busy = "Scanning " + target
			return m, tea.Batch(m.spin.Tick, cmdScan(m.scanUC, target))
		default:
			m.reg.SetDraft(value)
			m.busy = "Saving"
			return m, tea.Batch(m.spin.Tick, cmdSubmit(m.reg, value, m.mode == modeCreate))
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode != modeScan {
		m.reg.SetDraft(m.input.Value())
	}
	return m, cmd
}

func (m model) handleDomainsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.reg.Len()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "down", "j":
		if m.selected < n-1 {
			m.selected++
		}
		return m, nil

	case "r":
		if m.busy != "" {
			return m, nil
		}
		m.busy = "Loading domains"
		return m, tea.Batch(m.spin.Tick, cmdLoad(m.reg))

	case "n", "a":
		m.enterInput(modeCreate, "", "example.com")
		return m, nil

	case "e", "enter":
		if n == 0 || m.busy != "" || m.selected >= n {
			return m, nil
		}
		draft, err := m.reg.BeginEdit(m.selected)
		if err != nil {
			m.fail("edit", err)
			return m, nil
		}
		m.enterInput(modeEdit, draft, "")
		return m, nil

	case "d", "x", "delete":
		if n == 0 || m.busy != "" || m.selected >= n {
			return m, nil
		}
		m.toast = ""
		return m, cmdRemove(m.reg, m.selected)

	case "s":
		if m.busy != "" {
			return m, nil
		}
		name, ok := m.selectedName()
		if !ok {
			return m, nil
		}
		return m, m.startSync(name)

	case "o":
		if m.busy != "" {
			return m, nil
		}
		name, ok := m.selectedName()
		if !ok {
			return m, nil
		}
		report, ok := m.syncUC.Recent(name)
		if !ok {
			m.toast = "No recent sync for " + name + " (press s)"
			return m, nil
		}
		m.scr = screenResults
		m.resultDomain = name
		m.showSync(report)
		return m, nil

	case "/":
		m.enterInput(modeScan, "", "https://example.com/page")
		return m, nil
	}
	return m, nil
}

func (m model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b", "q":
		m.scr = screenDomains
		m.resultDomain = ""
		m.errText = ""
		return m, nil
	case "s":
		if m.resultDomain == "" || m.busy != "" {
			return m, nil
		}
		return m, m.startSync(m.resultDomain)
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

// startSync switches to the results screen; a cached report for the domain is
// shown while the new sync runs.
func (m *model) startSync(name string) tea.Cmd {
	m.scr = screenResults
	m.resultDomain = name
	m.toast = ""
	m.errText = ""
	if report, ok := m.syncUC.Recent(name); ok {
		m.showSync(report)
	} else {
		m.resultTitle = "Sync: " + name
		m.results.SetContent("")
	}
	m.busy = "Syncing " + name
	return tea.Batch(m.spin.Tick, cmdSync(m.syncUC, name))
}

func (m *model) showSync(report domain.SyncReport) {
	m.resultTitle = fmt.Sprintf("Sync: %s (%s)", report.Domain, report.CompletedAt.Local().Format("15:04:05"))
	links := report.InvalidLinks
	m.results.SetContent(renderResults(m.theme, classify.Classify(report.Records), &links))
	m.results.GotoTop()
}

func (m *model) enterInput(md mode, value, placeholder string) {
	m.mode = md
	m.toast = ""
	m.errText = ""
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *model) leaveInput() {
	m.mode = modeBrowse
	m.input.Reset()
	m.input.Blur()
}

// selectedName reads the highlighted entry from one snapshot; the list can
// shrink under a finished remove before removeDoneMsg clamps the selection.
func (m model) selectedName() (string, bool) {
	domains := m.reg.Domains()
	if m.selected < 0 || m.selected >= len(domains) {
		return "", false
	}
	return domains[m.selected].Name, true
}

func (m *model) clampSelection() {
	n := m.reg.Len()
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *model) fail(where string, err error) {
	m.log.Warn("tui.error", "where", where, "err", err)
	m.toast = ""
	m.errText = userMessage(err)
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("domscan") + "\n" +
		m.theme.Subtitle.Render("API: "+m.deps.BaseURL) + "\n"

	var body, help string
	switch m.scr {
	case screenResults:
		body = m.theme.Title.Render(m.resultTitle) + "\n\n" + m.theme.Card.Render(m.results.View())
		help = "↑/↓ scroll • s re-sync • esc back"
	default:
		body = m.theme.Card.Render(m.domainsView())
		help = m.domainsHelp()
	}

	if m.mode == modeConfirm && m.confirm != nil {
		body += "\n" + m.theme.Dialog.Render(m.confirm.prompt+"\n\n"+m.theme.Help.Render("y delete • n/esc cancel"))
		help = ""
	}

	return wrap.Render(header + "\n" + body + "\n" + m.statusLine() + "\n" + m.theme.Help.Render(help))
}

func (m model) domainsView() string {
	domains := m.reg.Domains()
	cur, editing := m.reg.EditCursor()

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(fmt.Sprintf("Domains (%d)", len(domains))))
	b.WriteString("\n\n")

	if len(domains) == 0 {
		b.WriteString(m.theme.Subtitle.Render("No domains registered. Press n to add one."))
		b.WriteString("\n")
	}
	for i, d := range domains {
		pointer := "  "
		if i == m.selected {
			pointer = "> "
		}
		if editing && i == cur && m.mode == modeEdit {
			b.WriteString(m.theme.Editing.Render("✎ ") + m.input.View() + "\n")
			continue
		}
		line := fmt.Sprintf("%s%d. %s", pointer, i+1, clampString(d.Name, 60))
		if i == m.selected {
			line = m.theme.Selected.Render(line)
		}
		b.WriteString(line + "\n")
	}

	switch m.mode {
	case modeCreate:
		b.WriteString("\nNew domain: " + m.input.View() + "\n")
	case modeScan:
		b.WriteString("\nScan URL: " + m.input.View() + "\n")
	}
	return b.String()
}

func (m model) domainsHelp() string {
	switch m.mode {
	case modeEdit, modeCreate:
		return "enter save • esc cancel"
	case modeScan:
		return "enter scan • esc cancel"
	}
	return "↑/↓ move • n new • e edit • d delete • s sync • o last sync • / scan url • r reload • q quit"
}

func (m model) statusLine() string {
	switch {
	case m.busy != "":
		return m.spin.View() + " " + m.busy + "…"
	case m.errText != "":
		return m.theme.Error.Render("✗ " + m.errText)
	case m.toast != "":
		return m.theme.Toast.Render(m.toast)
	}
	return ""
}
