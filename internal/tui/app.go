// Package tui provides the interactive terminal front end: a parameter
// form for the two-point flow scenario and a tabbed result view with
// the iteration history, convergence chart, and flow sketch.
package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/bernoulli/internal/config"
	"github.com/san-kum/bernoulli/internal/fluid"
	"github.com/san-kum/bernoulli/internal/solver"
	"github.com/san-kum/bernoulli/internal/viz"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

var paramInfo = map[string]string{
	"p1":       "pressure at point 1 [Pa]",
	"p2":       "pressure at point 2 [Pa]",
	"rho":      "fluid density [kg/m³]",
	"g":        "gravity [m/s²]",
	"h1":       "height at point 1 [m]",
	"h2":       "height at point 2 [m]",
	"v1":       "inlet velocity [m/s]",
	"x0":       "first initial guess [m/s]",
	"x1":       "second initial guess [m/s]",
	"tol":      "residual tolerance",
	"max_iter": "iteration budget",
}

type state int

const (
	stateForm state = iota
	stateResult
)

type tab int

const (
	tabSummary tab = iota
	tabIterations
	tabConvergence
	tabFlow
	numTabs
)

type result struct {
	params        fluid.Params
	x0, x1        float64
	analytical    float64
	hasAnalytical bool
	outcome       solver.Outcome
	inputErr      error
}

type model struct {
	state  state
	cursor int
	names  []string
	params map[string]float64

	editing bool
	editBuf string

	presets   []string
	presetIdx int

	res      *result
	tab      tab
	showHelp bool

	width  int
	height int
}

func NewApp() *model {
	cfg := config.DefaultConfig()
	x0, x1 := cfg.InitialGuesses()
	return &model{
		state: stateForm,
		names: []string{"p1", "p2", "rho", "g", "h1", "h2", "v1", "x0", "x1", "tol", "max_iter"},
		params: map[string]float64{
			"p1": cfg.Scenario.P1, "p2": cfg.Scenario.P2,
			"rho": cfg.Scenario.Rho, "g": cfg.Scenario.G,
			"h1": cfg.Scenario.H1, "h2": cfg.Scenario.H2,
			"v1": cfg.Scenario.V1,
			"x0": x0, "x1": x1,
			"tol":      cfg.Solver.Tolerance,
			"max_iter": float64(cfg.Solver.MaxIterations),
		},
		presets:   config.ListPresets(),
		presetIdx: -1,
		width:     80,
		height:    24,
	}
}

// Run starts the interactive app and blocks until it exits.
func Run() error {
	_, err := tea.NewProgram(NewApp(), tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateForm:
		return m.formKey(msg)
	case stateResult:
		return m.resultKey(msg)
	}
	return m, nil
}

func (m model) formKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			// Keep the previous value when the buffer does not parse.
			if val, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				m.params[m.names[m.cursor]] = val
			}
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = strings.TrimSpace(fmt.Sprintf("%g", m.params[m.names[m.cursor]]))
	case "p":
		m.cyclePreset()
	case "g":
		x0, x1 := fluid.SuggestGuesses(m.fluidParams())
		m.params["x0"] = x0
		m.params["x1"] = x1
	case "s":
		m.solve()
		m.state = stateResult
		m.tab = tabSummary
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m model) resultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "b":
		m.state = stateForm
		return m, tea.ClearScreen
	case "tab", "right", "l":
		m.tab = (m.tab + 1) % numTabs
	case "shift+tab", "left", "h":
		m.tab = (m.tab + numTabs - 1) % numTabs
	case "1":
		m.tab = tabSummary
	case "2":
		m.tab = tabIterations
	case "3":
		m.tab = tabConvergence
	case "4":
		m.tab = tabFlow
	}
	return m, nil
}

func (m *model) cyclePreset() {
	if len(m.presets) == 0 {
		return
	}
	m.presetIdx = (m.presetIdx + 1) % len(m.presets)
	cfg := config.GetPreset(m.presets[m.presetIdx])
	if cfg == nil {
		return
	}
	m.params["p1"] = cfg.Scenario.P1
	m.params["p2"] = cfg.Scenario.P2
	m.params["rho"] = cfg.Scenario.Rho
	m.params["g"] = cfg.Scenario.G
	m.params["h1"] = cfg.Scenario.H1
	m.params["h2"] = cfg.Scenario.H2
	m.params["v1"] = cfg.Scenario.V1
	x0, x1 := cfg.InitialGuesses()
	m.params["x0"] = x0
	m.params["x1"] = x1
}

func (m model) fluidParams() fluid.Params {
	return fluid.Params{
		P1: m.params["p1"], P2: m.params["p2"],
		Rho: m.params["rho"], G: m.params["g"],
		H1: m.params["h1"], H2: m.params["h2"],
		V1: m.params["v1"],
	}
}

func (m *model) solve() {
	p := m.fluidParams()
	res := &result{params: p, x0: m.params["x0"], x1: m.params["x1"]}

	if err := fluid.Validate(p); err != nil {
		res.inputErr = err
		m.res = res
		return
	}

	if a, err := fluid.Analytical(p); err == nil {
		res.analytical = a
		res.hasAnalytical = true
	}

	opts := solver.DefaultOptions()
	if tol := m.params["tol"]; tol > 0 {
		opts.Tolerance = tol
	}
	if n := int(m.params["max_iter"]); n > 0 {
		opts.MaxIterations = n
	}

	f := func(v2 float64) float64 { return fluid.Residual(v2, p) }
	out, err := solver.Secant(f, res.x0, res.x1, opts)
	if err != nil {
		res.inputErr = err
		m.res = res
		return
	}
	res.outcome = out
	m.res = res
}

func (m model) View() string {
	switch m.state {
	case stateForm:
		return m.viewForm()
	case stateResult:
		return m.viewResult()
	}
	return ""
}

func (m model) viewForm() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("         " + cyan.Render("b e r n o u l l i") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.names {
		val := fmt.Sprintf("%12.4f", m.params[name])
		if m.editing && i == m.cursor {
			val = fmt.Sprintf("%12s", m.editBuf+"▋")
		}
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-10s", name)) + magenta.Render(val) + "  " + dim.Render(paramInfo[name]) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-10s", name)) + dim.Render(val) + "  " + dimmer.Render(paramInfo[name]) + "\n")
		}
	}

	if m.presetIdx >= 0 && m.presetIdx < len(m.presets) {
		b.WriteString("\n      " + dim.Render("preset: ") + white.Render(m.presets[m.presetIdx]) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  enter edit  p preset  g suggest guesses  s solve  ? help  q quit") + "\n")

	if m.showHelp {
		b.WriteString("\n" + m.viewHelp())
	}

	return b.String()
}

func (m model) viewHelp() string {
	help := []string{
		"Solves Bernoulli's equation for the exit velocity v2, both",
		"analytically and with a guarded secant root-finder.",
		"",
		"Assumptions: steady, incompressible, inviscid flow along a",
		"streamline. All inputs in SI units.",
		"",
		"Tips: start guesses around v1, keep them apart, and use the",
		"suggested bracket when the search does not converge.",
	}
	var b strings.Builder
	for _, line := range help {
		b.WriteString("      " + dimmer.Render(line) + "\n")
	}
	return b.String()
}

func (m model) viewResult() string {
	var b strings.Builder
	b.WriteString("\n")

	tabs := []string{"summary", "iterations", "convergence", "flow"}
	var tb []string
	for i, name := range tabs {
		if tab(i) == m.tab {
			tb = append(tb, cyan.Render("["+name+"]"))
		} else {
			tb = append(tb, dim.Render(" "+name+" "))
		}
	}
	b.WriteString("   " + strings.Join(tb, " ") + "\n\n")

	if m.res == nil {
		b.WriteString("   " + dim.Render("nothing solved yet") + "\n")
	} else if m.res.inputErr != nil {
		b.WriteString("   " + viz.FailedStyle.Render("✗ "+m.res.inputErr.Error()) + "\n")
	} else {
		switch m.tab {
		case tabSummary:
			b.WriteString(m.viewSummary())
		case tabIterations:
			b.WriteString(indent(viz.IterationTable(m.res.outcome.Trace), 3))
		case tabConvergence:
			b.WriteString(indent(viz.ConvergencePlot(m.res.outcome.Trace, m.width-12, 12), 3))
		case tabFlow:
			root, ok := m.res.outcome.Solution()
			if !ok && m.res.hasAnalytical {
				root = m.res.analytical
				ok = true
			}
			if ok {
				b.WriteString(indent(viz.FlowSketch(m.res.params, root, m.width-12, 12), 3))
			} else {
				b.WriteString("   " + dim.Render("no solution to sketch") + "\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("   ←→ switch tab  1-4 jump  esc back  q quit") + "\n")
	return b.String()
}

func (m model) viewSummary() string {
	var b strings.Builder
	res := m.res
	out := res.outcome

	if out.Converged {
		b.WriteString("   " + viz.ConvergedStyle.Render("● converged") + dim.Render(fmt.Sprintf("  (%d iterations)", len(out.Trace))) + "\n\n")
	} else {
		b.WriteString("   " + viz.FailedStyle.Render("○ "+out.Status.String()) + dim.Render(fmt.Sprintf("  (%d iterations)", len(out.Trace))) + "\n\n")
	}

	if root, ok := out.Solution(); ok {
		b.WriteString("   " + dim.Render(fmt.Sprintf("%-14s", "numerical")) + white.Render(fmt.Sprintf("v2 = %.4f m/s", root)) + "\n")
	}
	if res.hasAnalytical {
		b.WriteString("   " + dim.Render(fmt.Sprintf("%-14s", "analytical")) + white.Render(fmt.Sprintf("v2 = %.4f m/s", res.analytical)) + "\n")
		if root, ok := out.Solution(); ok && res.analytical != 0 {
			diff := math.Abs(res.analytical-root) / res.analytical * 100
			b.WriteString("   " + dim.Render(fmt.Sprintf("%-14s", "difference")) + white.Render(fmt.Sprintf("%.6f%%", diff)) + "\n")
		}
	}

	if !out.Converged {
		b.WriteString("\n")
		for _, line := range []string{
			"the search did not converge; try the suggested bracket,",
			"check that the inputs are physically reasonable, or seed",
			"the guesses near the expected answer.",
		} {
			b.WriteString("   " + dimmer.Render(line) + "\n")
		}
	}

	return b.String()
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n") + "\n"
}
