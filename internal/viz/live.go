// Package viz renders a live terminal view of a running simulation.
package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/longsim/internal/sim"
	"github.com/san-kum/longsim/internal/vehicle"
)

const historyCapacity = 600

// stepsPerTick keeps the live view close to wall-clock time at the
// default 10 ms sample time and ~30 fps tick rate.
const stepsPerTick = 3

type TickMsg time.Time

// Model holds the vehicle, the input schedule, and the UI state for
// the live view.
type Model struct {
	car *vehicle.Vehicle
	drv sim.Driver

	t       float64
	cmd     sim.Command
	running bool

	speedHistory []float64

	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int
}

func NewModel(car *vehicle.Vehicle, drv sim.Driver) Model {
	params := make(map[string]float64)
	initialParams := make(map[string]float64)
	for k, v := range car.GetParams() {
		params[k] = v
		if v == 0 {
			v = 1e-6
		}
		initialParams[k] = v
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return Model{
		car:           car,
		drv:           drv,
		running:       true,
		speedHistory:  make([]float64, 0, historyCapacity),
		params:        params,
		initialParams: initialParams,
		paramKeys:     keys,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		}
	case TickMsg:
		if m.running {
			for i := 0; i < stepsPerTick; i++ {
				m.step()
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	snap := m.car.Snapshot()
	m.cmd = m.drv.Command(m.t, snap.X)
	m.car.Step(m.cmd.Throttle, m.cmd.Incline)
	m.t += m.car.SampleTime()

	m.speedHistory = append(m.speedHistory, m.car.V)
	if len(m.speedHistory) > historyCapacity {
		m.speedHistory = m.speedHistory[1:]
	}
}

func (m *Model) reset() {
	m.car.Reset()
	m.t = 0
	m.cmd = sim.Command{}
	m.speedHistory = m.speedHistory[:0]
	for k, v := range m.initialParams {
		m.params[k] = v
		m.car.SetParam(k, v)
	}
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	newVal := m.params[key] * factor
	m.params[key] = newVal
	m.car.SetParam(key, newVal)
}

func (m Model) View() string {
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("LONGITUDINAL VEHICLE") + "\n")
	s.WriteString(status + "\n\n")

	if len(m.speedHistory) > 1 {
		chart := asciigraph.Plot(m.speedHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Speed"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	forces := m.car.Forces(m.cmd.Throttle, m.cmd.Incline)

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Position") + valueStyle.Render(fmt.Sprintf("%.2f m", m.car.X)) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%.2f m/s", m.car.V)) + "\n")
	s.WriteString(labelStyle.Render("Accel") + valueStyle.Render(fmt.Sprintf("%.2f m/s²", m.car.Accel)) + "\n")
	s.WriteString(labelStyle.Render("Engine") + valueStyle.Render(fmt.Sprintf("%.1f rad/s", m.car.EngineSpeed)) + "\n")
	s.WriteString(labelStyle.Render("Slip") + valueStyle.Render(fmt.Sprintf("%.4f", forces.SlipRatio)) + "\n")
	s.WriteString(labelStyle.Render("Throttle") + valueStyle.Render(fmt.Sprintf("%.2f", m.cmd.Throttle)) + "\n")
	s.WriteString(labelStyle.Render("Incline") + valueStyle.Render(fmt.Sprintf("%.4f rad", m.cmd.Incline)) + "\n")

	s.WriteString("\nPARAMETERS\n")
	for i, k := range m.paramKeys {
		val, initial := m.params[k], m.initialParams[k]
		barWidth, ratio := 10, val/(2.0*initial)
		if ratio > 1 {
			ratio = 1
		} else if ratio < 0 {
			ratio = 0
		}
		filled := int(ratio * float64(barWidth))
		bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
		line := fmt.Sprintf("%-14s %s %.4f", k, bar, val)
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nTab:Select ↑↓:Tune"))

	return statsStyle.Render(s.String())
}
