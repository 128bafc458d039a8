package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/mcsim/internal/config"
	"github.com/san-kum/mcsim/internal/experiment"
	"github.com/san-kum/mcsim/internal/mc"
	"github.com/san-kum/mcsim/internal/stats"
)

const chunkSize = 2000

type TickMsg time.Time

// Model streams a pricing run chunk by chunk and plots the running mean as
// it converges on the closed form.
type Model struct {
	cfg *config.Config

	prd   mc.Product[mc.Plain]
	mdl   mc.Model[mc.Plain]
	rng   mc.RNG
	gauss []float64
	path  mc.Path[mc.Plain]
	anti  bool

	payoffs   []float64
	means     []float64
	reference float64
	hasRef    bool
	running   bool
	done      bool
	started   time.Time
	elapsed   time.Duration
}

func NewModel(cfg *config.Config) (*Model, error) {
	prd, err := experiment.BuildProduct[mc.Plain](cfg)
	if err != nil {
		return nil, err
	}
	mdl, err := experiment.BuildModel[mc.Plain](cfg)
	if err != nil {
		return nil, err
	}
	r, err := experiment.BuildRNG(cfg)
	if err != nil {
		return nil, err
	}

	m := &Model{cfg: cfg, prd: prd, running: true, started: time.Now()}
	m.mdl = mdl.Clone()
	m.mdl.Init(prd.Timeline())
	m.rng = r.Clone()
	m.rng.Init(m.mdl.SimDim())
	m.gauss = make([]float64, m.mdl.SimDim())
	m.path = make(mc.Path[mc.Plain], len(prd.Timeline()))
	m.payoffs = make([]float64, 0, cfg.Paths)
	m.reference, m.hasRef = experiment.Reference(cfg)
	return m, nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.done {
				m.running = !m.running
			}
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running && !m.done {
			m.step()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) reset() {
	m.payoffs = m.payoffs[:0]
	m.means = m.means[:0]
	m.anti = false
	m.rng.Init(m.mdl.SimDim())
	m.running = true
	m.done = false
	m.started = time.Now()
}

// step simulates one chunk of paths and records the running mean.
func (m *Model) step() {
	n := chunkSize
	if remaining := m.cfg.Paths - len(m.payoffs); n > remaining {
		n = remaining
	}
	for i := 0; i < n; i++ {
		mc.NextGauss(m.rng, m.gauss, m.cfg.Antithetic, &m.anti)
		m.mdl.GeneratePath(m.gauss, m.path)
		m.payoffs = append(m.payoffs, m.prd.Payoff(m.path).Value())
	}

	sum := 0.0
	for _, p := range m.payoffs {
		sum += p
	}
	m.means = append(m.means, sum/float64(len(m.payoffs)))
	if len(m.means) > 120 {
		m.means = m.means[1:]
	}

	if len(m.payoffs) >= m.cfg.Paths {
		m.done = true
		m.running = false
		m.elapsed = time.Since(m.started)
	}
}

func (m *Model) View() string {
	var s strings.Builder

	title := fmt.Sprintf("%s / %s", strings.ToUpper(m.cfg.Product), m.cfg.Model)
	s.WriteString(HeaderStyle.Render(title) + "\n\n")

	status := StatusRunning.Render("RUNNING")
	if m.done {
		status = StatusDone.Render(fmt.Sprintf("DONE in %s", m.elapsed.Round(time.Millisecond)))
	} else if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	if len(m.means) > 1 {
		series := m.means
		caption := "running mean"
		if m.hasRef {
			caption = fmt.Sprintf("running mean (closed form %.4f)", m.reference)
		}
		chart := asciigraph.Plot(series,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption(caption))
		s.WriteString(GraphStyle.Render(chart) + "\n\n")
	}

	summary := stats.Describe(m.payoffs)
	s.WriteString(MetricLabel.Render("Paths   ") + MetricValue.Render(fmt.Sprintf("%d / %d", summary.N, m.cfg.Paths)) + "\n")
	s.WriteString(MetricLabel.Render("Price   ") + MetricValue.Render(fmt.Sprintf("%.6f", summary.Mean)) + "\n")
	s.WriteString(MetricLabel.Render("StdErr  ") + MetricValue.Render(fmt.Sprintf("%.6f", summary.StdErr)) + "\n")
	if m.hasRef && summary.N > 0 {
		err := summary.Mean - m.reference
		inUnits := "n/a"
		if summary.StdErr > 0 {
			inUnits = fmt.Sprintf("%.2f se", math.Abs(err)/summary.StdErr)
		}
		s.WriteString(MetricLabel.Render("Error   ") + MetricValue.Render(fmt.Sprintf("%+.6f (%s)", err, inUnits)) + "\n")
	}

	frac := 0.0
	if m.cfg.Paths > 0 {
		frac = float64(len(m.payoffs)) / float64(m.cfg.Paths)
	}
	s.WriteString("\n" + ProgressBar(frac, 40) + "\n")

	s.WriteString(KeyHint.Render("\nSP:Pause  R:Restart  Q:Quit"))
	return s.String()
}
