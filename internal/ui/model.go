// Package ui owns the interactive session: the view state machine, the
// merged event queue, and rendering. Bubble Tea's update loop serializes
// timer ticks, decoded input, sampling results, and kill outcomes into a
// single ordered stream, so no two state transitions ever run
// concurrently and no locks are needed.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ptop/internal/config"
	"ptop/internal/dispatch"
	"ptop/internal/model"
	"ptop/internal/sampler"
	"ptop/internal/view"
)

type activeView int

const (
	viewTable activeView = iota
	viewSearch
	viewDetail
	viewKillConfirm
)

// statusDuration is how long status messages stay on screen.
const statusDuration = 3 * time.Second

// cpuHistoryMax bounds the sparkline buffer.
const cpuHistoryMax = 120

// Model is the single owner of all session state.
type Model struct {
	cfg      *config.Config
	provider sampler.Provider
	disp     *dispatch.Dispatcher
	store    *model.Store

	view       activeView
	returnView activeView // where Escape from KillConfirm leads back to
	manualKill bool       // KillConfirm opened via the kill-by-pid path

	searchInput textinput.Model
	pidInput    textinput.Model

	filtered    []model.ProcessRecord
	selectedPID int32 // 0 means no selection
	pendingSig  *dispatch.SignalKind

	cpuHistory []float64

	status     string
	statusTime time.Time
	statusErr  bool

	width    int
	height   int
	scroll   int
	tableTop int // screen row of the first table row, set by View
}

func New(cfg *config.Config, provider sampler.Provider, disp *dispatch.Dispatcher) *Model {
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "name, pid or cpu%"
	search.CharLimit = 64

	pid := textinput.New()
	pid.Prompt = "> "
	pid.Placeholder = "PID"
	pid.CharLimit = 10

	return &Model{
		cfg:         cfg,
		provider:    provider,
		disp:        disp,
		store:       model.NewStore(),
		searchInput: search,
		pidInput:    pid,
		width:       100,
		height:      35,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.sampleCmd(), m.tickCmd())
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.cfg.RefreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// sampleCmd runs one sample pass off the update loop and re-joins its
// result as a snapshotMsg.
func (m *Model) sampleCmd() tea.Cmd {
	p := m.provider
	return func() tea.Msg {
		snap, err := p.Sample(context.Background())
		return snapshotMsg{snap: snap, err: err}
	}
}

// killCmd dispatches a signal off the update loop. The dispatcher bounds
// the call with its own timeout.
func (m *Model) killCmd(pid int32, name string, sig dispatch.SignalKind) tea.Cmd {
	d := m.disp
	return func() tea.Msg {
		return killResultMsg{outcome: d.Kill(context.Background(), pid, name, sig)}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.sampleCmd(), m.tickCmd())

	case snapshotMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("sampling failed: %v", msg.err), true)
			return m, nil
		}
		m.store.Update(msg.snap.Taken, msg.snap.Processes, msg.snap.Summary)
		m.cpuHistory = append(m.cpuHistory, msg.snap.Summary.CPUTotal)
		if len(m.cpuHistory) > cpuHistoryMax {
			m.cpuHistory = m.cpuHistory[len(m.cpuHistory)-cpuHistoryMax:]
		}
		m.rederive()
		return m, nil

	case killResultMsg:
		m.setStatus(msg.outcome.Message(), msg.outcome.Failed())
		return m, m.sampleCmd()

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c quits from every state, even while typing.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.view {
	case viewSearch:
		return m.handleSearchKey(msg)
	case viewDetail:
		return m.handleDetailKey(msg)
	case viewKillConfirm:
		return m.handleConfirmKey(msg)
	default:
		return m.handleTableKey(msg)
	}
}

func (m *Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		m.moveSelection(-1)

	case key.Matches(msg, keys.Down):
		m.moveSelection(1)

	case key.Matches(msg, keys.Search):
		m.view = viewSearch
		return m, m.searchInput.Focus()

	case key.Matches(msg, keys.Detail):
		if m.selectedPID != 0 {
			m.view = viewDetail
		}

	case key.Matches(msg, keys.Kill):
		if m.selectedPID != 0 {
			m.openKillConfirm(viewTable, false)
		}

	case key.Matches(msg, keys.ManualKill):
		m.openKillConfirm(viewTable, true)
		return m, m.pidInput.Focus()

	case key.Matches(msg, keys.Refresh):
		m.setStatus("refreshing...", false)
		return m, m.sampleCmd()

	case key.Matches(msg, keys.Cancel):
		// Esc in the table clears a lingering search filter.
		if m.searchInput.Value() != "" {
			m.searchInput.Reset()
			m.rederive()
		}
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Cancel), key.Matches(msg, keys.Confirm):
		// The term is retained on close, not cleared.
		m.view = viewTable
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.rederive()
	return m, cmd
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Cancel):
		m.view = viewTable
	case key.Matches(msg, keys.Kill):
		if m.selectedPID != 0 {
			m.openKillConfirm(viewDetail, false)
		}
	}
	return m, nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Cancel) {
		m.closeKillConfirm()
		return m, nil
	}

	if m.manualKill {
		switch {
		case key.Matches(msg, keys.CycleSig):
			m.cycleSignal()
		case key.Matches(msg, keys.Confirm):
			return m.confirmManualKill()
		default:
			var cmd tea.Cmd
			m.pidInput, cmd = m.pidInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.SigTerm):
		sig := dispatch.SignalTerm
		m.pendingSig = &sig
	case key.Matches(msg, keys.SigKill):
		sig := dispatch.SignalKill
		m.pendingSig = &sig
	case key.Matches(msg, keys.Confirm):
		return m.confirmKill()
	}
	return m, nil
}

// confirmKill fires the pending signal at the selected process and drops
// the modal back to the table.
func (m *Model) confirmKill() (tea.Model, tea.Cmd) {
	if m.pendingSig == nil {
		m.setStatus("choose a signal first: 1 = SIGTERM, 2 = SIGKILL", true)
		return m, nil
	}
	pid := m.selectedPID
	sig := *m.pendingSig

	var name string
	if rec := m.store.Current().Find(pid); rec != nil {
		name = rec.Name
	}
	m.closeKillConfirm()
	m.view = viewTable
	return m, m.killCmd(pid, name, sig)
}

// confirmManualKill validates the typed identity before anything is
// dispatched. A bad value keeps the modal open for correction.
func (m *Model) confirmManualKill() (tea.Model, tea.Cmd) {
	pid, err := dispatch.ParsePID(m.pidInput.Value())
	if err != nil {
		m.setStatus(fmt.Sprintf("invalid PID: %v", err), true)
		return m, nil
	}
	if m.pendingSig == nil {
		m.setStatus("choose a signal first: ↑/↓ toggles SIGTERM/SIGKILL", true)
		return m, nil
	}
	sig := *m.pendingSig

	var name string
	if rec := m.store.Current().Find(pid); rec != nil {
		name = rec.Name
	}
	m.closeKillConfirm()
	m.view = viewTable
	return m, m.killCmd(pid, name, sig)
}

func (m *Model) openKillConfirm(from activeView, manual bool) {
	m.view = viewKillConfirm
	m.returnView = from
	m.manualKill = manual
	m.pendingSig = nil
	if manual {
		m.pidInput.Reset()
		// The manual path preselects the configured default; the
		// selection path stays unset until the operator chooses.
		if sig, ok := signalByName(m.cfg.DefaultSignal); ok {
			m.pendingSig = &sig
		}
	}
}

func signalByName(name string) (dispatch.SignalKind, bool) {
	switch name {
	case "term":
		return dispatch.SignalTerm, true
	case "kill":
		return dispatch.SignalKill, true
	}
	return 0, false
}

func (m *Model) closeKillConfirm() {
	m.view = m.returnView
	m.pendingSig = nil
	m.manualKill = false
	m.pidInput.Blur()
}

func (m *Model) cycleSignal() {
	var sig dispatch.SignalKind
	switch {
	case m.pendingSig == nil, *m.pendingSig == dispatch.SignalKill:
		sig = dispatch.SignalTerm
	default:
		sig = dispatch.SignalKill
	}
	m.pendingSig = &sig
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Modals own the keyboard; the pointer is ignored while one is open.
	if m.view != viewTable && m.view != viewSearch {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveSelection(-1)
	case tea.MouseButtonWheelDown:
		m.moveSelection(1)
	case tea.MouseButtonLeft:
		row := msg.Y - m.tableTop + m.scroll
		if row >= 0 && row < len(m.filtered) {
			m.selectedPID = m.filtered[row].PID
		}
	}
	return m, nil
}

// moveSelection shifts the selection by delta rows, clamped to the
// filtered list. With nothing selected it lands on the first or last row
// depending on direction. No-op when the list is empty.
func (m *Model) moveSelection(delta int) {
	if len(m.filtered) == 0 {
		return
	}
	idx, ok := view.Resolve(m.selectedPID, m.filtered)
	if !ok {
		if delta < 0 {
			idx = len(m.filtered) - 1
		} else {
			idx = 0
		}
	} else {
		idx += delta
		if idx < 0 {
			idx = 0
		}
		if idx >= len(m.filtered) {
			idx = len(m.filtered) - 1
		}
	}
	m.selectedPID = m.filtered[idx].PID
	m.ensureVisible(idx)
}

// rederive recomputes the visible list and re-resolves the selection
// against it. While KillConfirm is open the selected identity is pinned:
// the refresh still lands in the store, but the modal target must not
// shift underneath the operator — if the process is gone by confirm time
// the dispatcher reports it as such.
func (m *Model) rederive() {
	m.filtered = view.Derive(m.store.Current(), m.searchInput.Value(),
		view.SortCPUDesc, m.cfg.CPUMatchTolerance)

	if m.view == viewKillConfirm {
		m.clampScroll()
		return
	}

	if m.selectedPID != 0 {
		if _, ok := view.Resolve(m.selectedPID, m.filtered); !ok {
			gone := m.selectedPID
			m.selectedPID = 0
			if m.view == viewDetail {
				m.view = viewTable
				m.setStatus(fmt.Sprintf("process %d is gone", gone), false)
			}
		}
	}

	// First-row auto-select is deliberate UI policy, not tracker behavior.
	if m.selectedPID == 0 && len(m.filtered) > 0 {
		m.selectedPID = m.filtered[0].PID
	}
	m.clampScroll()
}

func (m *Model) ensureVisible(idx int) {
	rows := m.visibleRows()
	if idx < m.scroll {
		m.scroll = idx
	}
	if idx >= m.scroll+rows {
		m.scroll = idx - rows + 1
	}
}

func (m *Model) clampScroll() {
	max := len(m.filtered) - m.visibleRows()
	if max < 0 {
		max = 0
	}
	if m.scroll > max {
		m.scroll = max
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusTime = time.Now()
	m.statusErr = isErr
}

// Run starts the interactive session. Blocks until quit.
func Run(cfg *config.Config) error {
	disp := dispatch.New(dispatch.OSSignaller{}, cfg.Protected, cfg.DispatchTimeout)
	prog := tea.NewProgram(New(cfg, sampler.New(), disp),
		tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := prog.Run()
	return err
}
