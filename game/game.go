package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"swarmfield/engine"
	"swarmfield/internal/assets"
	"swarmfield/internal/config"
	"swarmfield/scene"
)

// Game hosts the page scenes in an ebiten window
type Game struct {
	config   config.Config
	logger   *zap.Logger
	stage    *scene.Stage
	renderer *Renderer
	input    *ScrollInput
	debug    DebugState

	sprites map[string]*ebiten.Image
	loader  *assets.Loader
	cancel  context.CancelFunc

	width, height int

	// Delta time tracking
	lastUpdateTime time.Time

	// FPS tracking
	fps              float64
	fpsUpdateCounter int
	fpsUpdateTimer   float64

	// Profiling
	profiler        *Profiler
	lastFPSDropTime time.Time
	fpsDropCooldown time.Duration
	startTime       time.Time
}

// NewGame builds and mounts the configured scenes and starts the sprite loads
func NewGame(cfg config.Config, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	viewport := engine.Bounds{W: float64(cfg.ScreenWidth), H: float64(cfg.ScreenHeight)}
	stage, err := scene.NewStage(cfg.Page, viewport, logger.Named("scene"))
	if err != nil {
		return nil, fmt.Errorf("build page: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	now := time.Now()
	g := &Game{
		config:          cfg,
		logger:          logger,
		stage:           stage,
		input:           NewScrollInput(cfg),
		debug:           DebugState{ShowOverlay: cfg.Debug},
		sprites:         make(map[string]*ebiten.Image),
		loader:          assets.NewLoader(logger),
		cancel:          cancel,
		lastUpdateTime:  now,
		startTime:       now,
		fps:             60.0,
		fpsDropCooldown: 10 * time.Second,
	}
	if cfg.Profile.Enabled {
		g.profiler = NewProfiler(cfg.Profile.Dir, logger)
	}
	g.renderer = NewRenderer(stage, g.sprites)
	g.renderer.Resize(cfg.ScreenWidth, cfg.ScreenHeight)
	g.width, g.height = cfg.ScreenWidth, cfg.ScreenHeight

	if stage.Ants() != nil {
		g.loader.Load(ctx, scene.AntSprite, cfg.Page.Ants.SpriteURL)
	}
	return g, nil
}

// Stage exposes the running page
func (g *Game) Stage() *scene.Stage {
	return g.stage
}

// Update advances input, scroll, scenes and sprite loads by one frame
func (g *Game) Update() error {
	now := time.Now()
	deltaTime := now.Sub(g.lastUpdateTime).Seconds()
	g.lastUpdateTime = now

	// Cap delta time so a stalled window does not fast-forward the timelines
	if deltaTime > 0.1 {
		deltaTime = 0.1
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug.ShowOverlay = !g.debug.ShowOverlay
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.pollSprites()

	for _, cue := range JustPressedCues() {
		if err := g.stage.Trigger(cue, swarmBatch); err != nil {
			g.logger.Debug("cue ignored", zap.String("cue", string(cue)), zap.Error(err))
		}
	}

	host := g.stage.Host()
	page := g.stage.Page()
	scroll := g.input.Delta(deltaTime, page.Viewport.H*0.9, host.Position(), page.MaxScroll())
	g.stage.Step(deltaTime, scroll)

	g.trackFPS(deltaTime)
	return nil
}

// pollSprites installs finished loads without blocking the frame
func (g *Game) pollSprites() {
	for {
		select {
		case r := <-g.loader.Results():
			if r.Err != nil {
				// the layer keeps drawing without the sprite
				continue
			}
			g.sprites[r.Name] = ebiten.NewImageFromImage(r.Image)
		default:
			return
		}
	}
}

func (g *Game) trackFPS(deltaTime float64) {
	g.fpsUpdateTimer += deltaTime
	g.fpsUpdateCounter++
	if g.fpsUpdateTimer < 0.5 {
		return
	}
	if g.fpsUpdateCounter > 0 {
		g.fps = float64(g.fpsUpdateCounter) / g.fpsUpdateTimer
	}
	g.fpsUpdateCounter = 0
	g.fpsUpdateTimer = 0.0

	if g.profiler == nil || g.fps >= g.config.Profile.MinFPS {
		return
	}
	if time.Since(g.startTime) < 3*time.Second || time.Since(g.lastFPSDropTime) < g.fpsDropCooldown {
		return
	}
	g.lastFPSDropTime = time.Now()

	reason := fmt.Sprintf("fps%.0f-scroll%.0f", g.fps, g.stage.Host().Position())
	err := g.profiler.Capture(reason)
	switch {
	case errors.Is(err, ErrProfilerBusy):
	case err != nil:
		g.logger.Warn("profile capture failed", zap.Error(err))
	default:
		g.logger.Info("fps drop, capturing profile", zap.Float64("fps", g.fps))
	}
}

// Draw renders the page
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Render(screen, g.stage)
	if g.debug.ShowOverlay {
		drawDebug(screen, g.stage, g.fps)
	}
}

// Layout follows the window size and resizes the scenes when it changes
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.renderer.Resize(outsideWidth, outsideHeight)
		viewport := engine.Bounds{W: float64(outsideWidth), H: float64(outsideHeight)}
		if err := g.stage.Resize(viewport); err != nil {
			g.logger.Warn("resize", zap.Error(err))
		}
	}
	return outsideWidth, outsideHeight
}

// Close stops the loads and tears the scenes down
func (g *Game) Close() {
	g.cancel()
	g.loader.Wait()
	g.stage.Close()
}
