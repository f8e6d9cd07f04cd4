package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/graphlens/pkg/api"
	"github.com/dd0wney/graphlens/pkg/config"
	"github.com/dd0wney/graphlens/pkg/export"
	"github.com/dd0wney/graphlens/pkg/graph"
	"github.com/dd0wney/graphlens/pkg/logging"
	"github.com/dd0wney/graphlens/pkg/metrics"
	"github.com/dd0wney/graphlens/pkg/render"
	"github.com/dd0wney/graphlens/pkg/simulation"
	"github.com/dd0wney/graphlens/pkg/source"
	"github.com/dd0wney/graphlens/pkg/view"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#bd93f9")).
			MarginLeft(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#50fa7b"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff5555")).
			Bold(true)

	hoverStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8be9fd"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginLeft(1)
)

type keyMap struct {
	ExportHTML key.Binding
	ExportJSON key.Binding
	SaveLayout key.Binding
	Reload     key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	ExportHTML: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export html"),
	),
	ExportJSON: key.NewBinding(
		key.WithKeys("j"),
		key.WithHelp("j", "export json"),
	),
	SaveLayout: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save layout"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ExportHTML, k.SaveLayout, k.Reload, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ExportHTML, k.ExportJSON, k.SaveLayout},
		{k.Reload, k.Quit},
	}
}

const (
	headerRows = 2
	footerRows = 2
	frameRate  = 30
)

type tickMsg time.Time

type snapshotMsg struct {
	snap *graph.Snapshot
}

type loadErrMsg struct {
	err error
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type model struct {
	cfg    config.Config
	src    source.Source
	v      *view.View
	ticks  *simulation.ManualSource
	canvas *render.BrailleCanvas
	snaps  chan *graph.Snapshot

	help   help.Model
	keys   keyMap
	width  int
	height int

	hovered    string
	message    string
	messageErr bool
}

func initialModel(cfg config.Config, src source.Source, snaps chan *graph.Snapshot) *model {
	ticks := &simulation.ManualSource{}
	canvas := render.NewBrailleCanvas(80, 24-headerRows-footerRows)
	v := view.New(ticks, canvas.Width(), canvas.Height(),
		view.WithConfig(cfg.EngineConfig()),
		view.WithMetrics(metrics.DefaultRegistry()))

	m := &model{
		cfg:    cfg,
		src:    src,
		v:      v,
		ticks:  ticks,
		canvas: canvas,
		snaps:  snaps,
		help:   help.New(),
		keys:   keys,
	}
	v.OnNodeHovered(func(n *graph.Node) {
		if n == nil {
			m.hovered = ""
			return
		}
		m.hovered = fmt.Sprintf("%s (%s)", n.Label, n.Type)
	})
	v.OnNodeActivated(func(id string) {
		m.message = "Selected node " + id
		m.messageErr = false
	})
	return m
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.loadCmd(), m.waitForSnapshot())
}

// loadCmd fetches the initial snapshot off the event loop.
func (m *model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		snap, err := m.src.Load(ctx)
		if err != nil {
			return loadErrMsg{err}
		}
		return snapshotMsg{snap}
	}
}

// waitForSnapshot delivers live feed snapshots into the event loop.
func (m *model) waitForSnapshot() tea.Cmd {
	if m.snaps == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-m.snaps
		if !ok {
			return nil
		}
		return snapshotMsg{snap}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		rows := msg.Height - headerRows - footerRows
		if rows < 1 {
			rows = 1
		}
		m.canvas.Resize(msg.Width, rows)
		m.v.Resize(m.canvas.Width(), m.canvas.Height())

	case tickMsg:
		// Run exactly one generation of scheduled work: one simulation
		// step plus at most one centering animation frame.
		pending := m.ticks.Pending()
		for i := 0; i < pending; i++ {
			m.ticks.RunNext()
		}
		return m, tickCmd()

	case snapshotMsg:
		if err := m.v.SetSnapshot(msg.snap); err != nil {
			m.message = err.Error()
			m.messageErr = true
		} else {
			m.message = fmt.Sprintf("Loaded %d nodes, %d edges",
				msg.snap.NodeCount(), msg.snap.EdgeCount())
			m.messageErr = false
		}
		return m, m.waitForSnapshot()

	case loadErrMsg:
		m.message = msg.err.Error()
		m.messageErr = true

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	// Cell coordinates to canvas pixels; the header occupies the top rows.
	px := float64(msg.X * 2)
	py := float64((msg.Y - headerRows) * 4)
	if py < 0 {
		return
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.v.Wheel(px, py, 1)
		return
	case tea.MouseButtonWheelDown:
		m.v.Wheel(px, py, -1)
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.v.PointerDown(px, py)
		}
	case tea.MouseActionMotion:
		m.v.PointerMove(px, py)
	case tea.MouseActionRelease:
		m.v.PointerUp(px, py)
	}
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.v.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.ExportHTML):
		m.exportFile("graph.html", func(snap *graph.Snapshot, pos map[string]simulation.Position) error {
			return export.WriteHTML("graph.html", "Graph Layout", snap, pos)
		})

	case key.Matches(msg, m.keys.ExportJSON):
		m.exportFile("graph.json", func(snap *graph.Snapshot, pos map[string]simulation.Position) error {
			return export.WriteJSON("graph.json", snap, pos)
		})

	case key.Matches(msg, m.keys.SaveLayout):
		m.exportFile("graph.layout", func(snap *graph.Snapshot, pos map[string]simulation.Position) error {
			return export.SaveLayout("graph.layout", snap, pos)
		})

	case key.Matches(msg, m.keys.Reload):
		return m, m.loadCmd()
	}
	return m, nil
}

func (m *model) exportFile(path string, write func(*graph.Snapshot, map[string]simulation.Position) error) {
	snap, eng := m.v.Snapshot(), m.v.Engine()
	if snap == nil || eng == nil {
		m.message = "Nothing to export yet"
		m.messageErr = true
		return
	}
	if err := write(snap, eng.Positions()); err != nil {
		m.message = err.Error()
		m.messageErr = true
		return
	}
	m.message = "Wrote " + path
	m.messageErr = false
}

func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	title := titleStyle.Render("graphlens")
	stats := ""
	if snap := m.v.Snapshot(); snap != nil {
		stats = fmt.Sprintf("  %d nodes / %d edges", snap.NodeCount(), snap.EdgeCount())
		if eng := m.v.Engine(); eng != nil && !eng.Settled() {
			stats += fmt.Sprintf("  (alpha %.3f)", eng.Alpha())
		}
	}
	s.WriteString(title + helpStyle.Render(stats) + "\n\n")

	m.v.Draw(m.canvas)
	s.WriteString(m.canvas.Render())
	s.WriteString("\n")

	footer := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.hovered != "" {
		footer += "  " + hoverStyle.Render(m.hovered)
	}
	if m.message != "" {
		if m.messageErr {
			footer += "  " + errorStyle.Render(m.message)
		} else {
			footer += "  " + statusStyle.Render(m.message)
		}
	}
	s.WriteString(helpStyle.Render(footer))

	return s.String()
}

func buildSource(cfg config.Config, logger logging.Logger) (source.Source, error) {
	switch cfg.Source.Kind {
	case "file":
		return source.NewFileSource(cfg.Source.Path), nil
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return source.NewPGSource(ctx, cfg.Source.PostgresURL)
	case "feed":
		return source.NewFeedSource(cfg.Source.FeedURL, logger)
	default:
		return source.NewDemoSource(), nil
	}
}

func main() {
	configPath := flag.String("config", "graphlens.yaml", "config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The terminal owns stdout; structured logs go to stderr.
	logger := logging.NewJSONLogger(os.Stderr, logging.WarnLevel)

	src, err := buildSource(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open source: %v", err)
	}
	defer src.Close()

	var snaps chan *graph.Snapshot
	if feed, ok := src.(*source.FeedSource); ok {
		snaps = make(chan *graph.Snapshot, 1)
		go func() {
			defer close(snaps)
			_ = feed.Watch(context.Background(), func(snap *graph.Snapshot) {
				snaps <- snap
			})
		}()
	}

	m := initialModel(cfg, src, snaps)

	if cfg.Server.Enabled {
		server, err := api.NewServer(m.v, cfg.Server.Addr, logger, metrics.DefaultRegistry())
		if err != nil {
			log.Fatalf("Failed to build API server: %v", err)
		}
		go func() {
			if err := server.Start(); err != nil {
				logger.Error("API server failed", logging.String("error", err.Error()))
			}
		}()
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
