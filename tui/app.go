package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life-board/controller"
	"github.com/sheikhrachel/go-life-board/model"
)

// Rows above the board: title and key hints
const boardTop = 2

type tickMsg struct {
	id int
}

// Model is the bubbletea model driving a single board
type Model struct {
	ctrl     *controller.Controller
	renderer *model.TerminalRenderer
	density  float64

	tickID  int
	editing bool
	editBuf string
	status  string
	err     error
}

// New builds the TUI model around ctrl
func New(ctrl *controller.Controller, density float64) Model {
	return Model{
		ctrl:     ctrl,
		renderer: &model.TerminalRenderer{},
		density:  density,
	}
}

// Run starts the interactive program and blocks until the user quits
func Run(ctrl *controller.Controller, density float64) error {
	p := tea.NewProgram(New(ctrl, density), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	if m.ctrl.AutoTick() {
		return m.scheduleTick()
	}
	return nil
}

func (m Model) scheduleTick() tea.Cmd {
	id := m.tickID
	return tea.Tick(m.ctrl.Interval(), func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.formKey(msg)
		}
		return m.boardKey(msg)
	case tea.MouseMsg:
		return m.mouse(msg)
	case tickMsg:
		// Ticks scheduled before a stop or an interval change are stale.
		if msg.id != m.tickID || !m.ctrl.AutoTick() {
			return m, nil
		}
		m.step()
		return m, m.scheduleTick()
	}
	return m, nil
}

func (m *Model) fail(err error) {
	m.err = err
	m.status = ""
}

func (m *Model) report(format string, args ...any) {
	m.err = nil
	m.status = fmt.Sprintf(format, args...)
}

func (m *Model) step() {
	snap, err := m.ctrl.Step()
	if err != nil {
		m.fail(err)
		return
	}
	if snap.Stagnant {
		m.report("stagnant at generation %d", snap.Generation)
	} else if m.err != nil || m.status != "" {
		m.err, m.status = nil, ""
	}
}

func (m Model) boardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "n", "enter":
		m.step()
	case "s", " ":
		on, err := m.ctrl.ToggleAutoTick()
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.tickID++
		if on {
			return m, m.scheduleTick()
		}
	case "+", "=":
		m.ctrl.SetInterval(m.ctrl.Interval() / 2)
		return m.restartTimer()
	case "-", "_":
		m.ctrl.SetInterval(m.ctrl.Interval() * 2)
		return m.restartTimer()
	case "r":
		if err := m.ctrl.Randomize(m.density); err != nil {
			m.fail(err)
		}
	case "g":
		if err := m.ctrl.Seed(model.Glider.Name, 1, 1); err != nil {
			m.fail(err)
		}
	case "c":
		if err := m.ctrl.Clear(); err != nil {
			m.fail(err)
		}
	case "b":
		m.editing, m.editBuf = true, ""
	}
	return m, nil
}

func (m Model) restartTimer() (tea.Model, tea.Cmd) {
	m.report("interval %s", m.ctrl.Interval())
	if !m.ctrl.AutoTick() {
		return m, nil
	}
	m.tickID++
	return m, m.scheduleTick()
}

func (m Model) formKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.editing, m.editBuf = false, ""
	case "enter":
		m.editing = false
		var width, height int
		if _, err := fmt.Sscanf(m.editBuf, "%dx%d", &width, &height); err != nil {
			m.report("expected WIDTHxHEIGHT, got %q", m.editBuf)
			return m, nil
		}
		if err := m.ctrl.CreateBoard(width, height); err != nil {
			m.fail(err)
			return m, nil
		}
		m.report("new %dx%d board", width, height)
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if s := msg.String(); len(s) == 1 && (s[0] >= '0' && s[0] <= '9' || s[0] == 'x') {
			m.editBuf += s
		}
	}
	return m, nil
}

func (m Model) mouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.editing || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	x, y := msg.X/model.CellWidth, msg.Y-boardTop
	if msg.X < 0 || y < 0 {
		return m, nil
	}
	if err := m.ctrl.Toggle(x, y); err != nil && !isOffBoard(err) {
		m.fail(err)
	}
	return m, nil
}

// Clicks outside the board are ignored rather than reported
func isOffBoard(err error) bool {
	return errors.Is(err, model.ErrOutOfBounds)
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("game of life"))
	sb.WriteByte('\n')
	sb.WriteString(hintStyle.Render("click toggle · n step · s start/stop · +/- speed · r random · g glider · c clear · b new board · q quit"))
	sb.WriteByte('\n')

	snap, err := m.ctrl.Snapshot()
	if err != nil {
		sb.WriteString(errStyle.Render("No board has been set up! Press b to create one."))
		sb.WriteByte('\n')
	} else {
		_ = m.ctrl.View(func(g *model.Grid) {
			sb.WriteString(m.renderer.Render(g))
		})
		sb.WriteByte('\n')
		sb.WriteString(m.statusLine(snap))
		sb.WriteByte('\n')
	}

	switch {
	case m.editing:
		sb.WriteString(promptStyle.Render("new board (WxH): " + m.editBuf + "█"))
	case m.err != nil:
		sb.WriteString(errStyle.Render(m.err.Error()))
	case m.status != "":
		sb.WriteString(hintStyle.Render(m.status))
	}
	return sb.String()
}

func (m Model) statusLine(snap controller.Snapshot) string {
	state := pauseStyle.Render("paused")
	if m.ctrl.AutoTick() {
		state = runStyle.Render("running")
	}
	field := func(label string, value any) string {
		return labelStyle.Render(label+" ") + valueStyle.Render(fmt.Sprint(value))
	}
	return strings.Join([]string{
		state,
		field("gen", snap.Generation),
		field("alive", snap.Population),
		field("density", fmt.Sprintf("%.1f%%", snap.Density)),
		field("size", fmt.Sprintf("%dx%d", snap.Width, snap.Height)),
		field("interval", m.ctrl.Interval()),
	}, "  ")
}
