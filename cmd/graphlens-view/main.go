package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

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

var backgroundColor = color.RGBA{R: 0x20, G: 0x21, B: 0x24, A: 0xff}

// ebitenCanvas adapts an ebiten frame to the render.Canvas interface.
type ebitenCanvas struct {
	screen *ebiten.Image
}

func (c *ebitenCanvas) Clear() {
	c.screen.Fill(backgroundColor)
}

func (c *ebitenCanvas) Line(x1, y1, x2, y2 float64, s render.Style) {
	width := float32(s.StrokeWidth)
	if width == 0 {
		width = 1
	}
	vector.StrokeLine(c.screen,
		float32(x1), float32(y1), float32(x2), float32(y2),
		width, parseHex(s.Stroke), true)
}

func (c *ebitenCanvas) Circle(cx, cy, r float64, s render.Style) {
	if s.Fill != "" {
		vector.DrawFilledCircle(c.screen,
			float32(cx), float32(cy), float32(r), parseHex(s.Fill), true)
	}
	if s.Stroke != "" {
		vector.StrokeCircle(c.screen,
			float32(cx), float32(cy), float32(r),
			float32(s.StrokeWidth), parseHex(s.Stroke), true)
	}
}

func (c *ebitenCanvas) Text(cx, y float64, text string, s render.Style) {
	// Debug text is 6px per glyph; offset to center it under cx.
	ebitenutil.DebugPrintAt(c.screen, text, int(cx)-len(text)*3, int(y)-6)
}

// parseHex converts "#rrggbb" to an opaque RGBA color.
func parseHex(hex string) color.RGBA {
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}
}

// Game hosts the viewer in an ebiten window.
type Game struct {
	v      *view.View
	ticks  *simulation.ManualSource
	canvas *ebitenCanvas
	snaps  chan *graph.Snapshot
	src    source.Source
	log    logging.Logger

	width, height int
	dragging      bool
	status        string
}

func NewGame(cfg config.Config, src source.Source, snaps chan *graph.Snapshot, logger logging.Logger) *Game {
	ticks := &simulation.ManualSource{}
	g := &Game{
		v: view.New(ticks, float64(cfg.Viewport.Width), float64(cfg.Viewport.Height),
			view.WithConfig(cfg.EngineConfig()),
			view.WithMetrics(metrics.DefaultRegistry())),
		ticks:  ticks,
		canvas: &ebitenCanvas{},
		snaps:  snaps,
		src:    src,
		log:    logger,
		width:  cfg.Viewport.Width,
		height: cfg.Viewport.Height,
	}
	g.v.OnNodeActivated(func(id string) {
		g.status = "Selected node " + id
	})
	return g
}

func (g *Game) Update() error {
	// Apply a pending feed snapshot before stepping.
	select {
	case snap, ok := <-g.snaps:
		if ok {
			if err := g.v.SetSnapshot(snap); err != nil {
				g.status = err.Error()
			}
		}
	default:
	}

	if err := g.handleInput(); err != nil {
		return err
	}

	// One generation of scheduled work per frame.
	pending := g.ticks.Pending()
	for i := 0; i < pending; i++ {
		g.ticks.RunNext()
	}
	return nil
}

func (g *Game) handleInput() error {
	mx, my := ebiten.CursorPosition()
	px, py := float64(mx), float64(my)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dragging = true
		g.v.PointerDown(px, py)
	} else if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragging = false
		g.v.PointerUp(px, py)
	} else {
		g.v.PointerMove(px, py)
	}

	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		g.v.Wheel(px, py, wheelY)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.export("graph.html", func(snap *graph.Snapshot, pos map[string]simulation.Position) error {
			return export.WriteHTML("graph.html", "Graph Layout", snap, pos)
		})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.export("graph.layout", func(snap *graph.Snapshot, pos map[string]simulation.Position) error {
			return export.SaveLayout("graph.layout", snap, pos)
		})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		go g.reload()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.v.Close()
		return ebiten.Termination
	}
	return nil
}

func (g *Game) export(path string, write func(*graph.Snapshot, map[string]simulation.Position) error) {
	snap, eng := g.v.Snapshot(), g.v.Engine()
	if snap == nil || eng == nil {
		g.status = "Nothing to export yet"
		return
	}
	if err := write(snap, eng.Positions()); err != nil {
		g.status = err.Error()
		return
	}
	g.status = "Wrote " + path
}

func (g *Game) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	snap, err := g.src.Load(ctx)
	if err != nil {
		g.log.Error("Reload failed", logging.String("error", err.Error()))
		return
	}
	// Deliver through the snapshot channel so the swap happens on the
	// game loop, never concurrently with Update.
	g.snaps <- snap
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.screen = screen
	g.v.Draw(g.canvas)

	if g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, 8, g.height-20)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.v.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return g.width, g.height
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
	logger := logging.NewJSONLogger(os.Stderr, logging.InfoLevel)

	src, err := buildSource(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open source: %v", err)
	}
	defer src.Close()

	snaps := make(chan *graph.Snapshot, 1)
	if feed, ok := src.(*source.FeedSource); ok {
		go func() {
			_ = feed.Watch(context.Background(), func(snap *graph.Snapshot) {
				snaps <- snap
			})
		}()
	}

	game := NewGame(cfg, src, snaps, logger)

	// Initial snapshot load happens before the window opens.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	snap, err := src.Load(ctx)
	cancel()
	if err != nil {
		if cfg.Source.Kind == "feed" {
			logger.Warn("No snapshot from feed yet", logging.String("error", err.Error()))
		} else {
			log.Fatalf("Failed to load graph: %v", err)
		}
	} else if err := game.v.SetSnapshot(snap); err != nil {
		log.Fatalf("Failed to display graph: %v", err)
	}

	if cfg.Server.Enabled {
		server, err := api.NewServer(game.v, cfg.Server.Addr, logger, metrics.DefaultRegistry())
		if err != nil {
			log.Fatalf("Failed to build API server: %v", err)
		}
		go func() {
			if err := server.Start(); err != nil {
				logger.Error("API server failed", logging.String("error", err.Error()))
			}
		}()
	}

	ebiten.SetWindowSize(cfg.Viewport.Width, cfg.Viewport.Height)
	ebiten.SetWindowTitle(fmt.Sprintf("graphlens - %s", cfg.Source.Kind))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Error running viewer: %v", err)
	}
}
