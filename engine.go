package sapling

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// State is the lifecycle state of an Engine.
type State uint8

const (
	StateIdle         State = iota // created, frame loop not started
	StateRunning                   // frames are being stepped
	StateShuttingDown              // close requested, releasing the window and music
	StateStopped                   // terminal
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateShuttingDown:
		return "shutting-down"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Window is the platform window as seen by the frame loop.
type Window interface {
	// CloseRequested reports whether the user asked to close the window.
	CloseRequested() bool
	// Configure applies the title and size.
	Configure(title string, width, height int)
	// Close releases the window. The loop calls it once, during shutdown.
	Close() error
}

type ebitenWindow struct{}

func (ebitenWindow) CloseRequested() bool { return ebiten.IsWindowBeingClosed() }

func (ebitenWindow) Configure(title string, width, height int) {
	ebiten.SetWindowTitle(title)
	if width > 0 && height > 0 {
		ebiten.SetWindowSize(width, height)
	}
	ebiten.SetWindowClosingHandled(true)
}

// Close is a no-op: returning ebiten.Termination from Update closes the
// window.
func (ebitenWindow) Close() error { return nil }

// Options supplies the engine's platform collaborators. Zero fields select
// the ebiten implementations.
type Options struct {
	Loader Loader
	Keys   KeyPoller
	Window Window
	Sink   EventSink
}

// Engine drives the frame loop: it polls input, updates and draws the active
// scene, and services the music slot. All methods must be called from the
// game goroutine.
type Engine struct {
	cfg   Config
	state State

	director *Director
	input    *Input
	keys     KeyPoller
	scripted *ScriptedKeys
	assets   *Assets
	jukebox  *Jukebox
	camera   *Camera
	debug    *DebugOverlay
	tickers  *Tickers
	window   Window
	sink     EventSink

	exitKey    ebiten.Key
	hasExitKey bool

	frame  uint64
	cmds   commandBuffer
	script *ScriptRunner

	screenshotQueue []string
	stats           debugStats
}

// New creates an engine in the Idle state. Input actions come from
// cfg.Inputs; their key names are resolved every frame.
func New(cfg Config, opts Options) (*Engine, error) {
	e := &Engine{
		cfg:      cfg,
		director: NewDirector(),
		input:    NewInput(),
		jukebox:  NewJukebox(),
		camera:   NewCamera(),
		debug:    NewDebugOverlay(),
		tickers:  NewTickers(),
		sink:     opts.Sink,
	}

	if cfg.ExitKey != "" {
		k, err := KeyCode(cfg.ExitKey)
		if err != nil {
			return nil, err
		}
		e.exitKey, e.hasExitKey = k, true
	}
	if cfg.Zoom > 0 {
		e.camera.Zoom = cfg.Zoom
	}
	for action, keys := range cfg.Inputs {
		e.input.Define(action, keys...)
	}
	e.debug.WorldSpace = cfg.Debug.WorldSpace

	loader := opts.Loader
	if loader == nil {
		loader = NewEbitenLoader()
	}
	e.assets = NewAssets(loader)

	e.keys = opts.Keys
	if e.keys == nil {
		e.keys = EbitenKeys()
	}
	if sk, ok := e.keys.(*ScriptedKeys); ok {
		e.scripted = sk
	}

	e.window = opts.Window
	if e.window == nil {
		e.window = ebitenWindow{}
	}

	e.SetDebugMode(cfg.Debug.Enabled)
	return e, nil
}

// Config returns the configuration the engine was created with.
func (e *Engine) Config() Config { return e.cfg }

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// Frame returns the number of completed frames.
func (e *Engine) Frame() uint64 { return e.frame }

// Director returns the scene director.
func (e *Engine) Director() *Director { return e.director }

// Scene returns the active scene, or nil.
func (e *Engine) Scene() *Scene { return e.director.Current() }

// Input returns the action table.
func (e *Engine) Input() *Input { return e.input }

// Assets returns the resource cache.
func (e *Engine) Assets() *Assets { return e.assets }

// Audio returns the music slot.
func (e *Engine) Audio() *Jukebox { return e.jukebox }

// Camera returns the world camera.
func (e *Engine) Camera() *Camera { return e.camera }

// Debug returns the debug overlay.
func (e *Engine) Debug() *DebugOverlay { return e.debug }

// Tickers returns the frame tickers.
func (e *Engine) Tickers() *Tickers { return e.tickers }

// Commands returns the draw commands recorded by the last Step. The
// returned slice MUST NOT be mutated.
func (e *Engine) Commands() []DrawCommand { return e.cmds.list }

// WindowRect returns the window as a rectangle at the origin.
func (e *Engine) WindowRect() Rect {
	return Rect{0, 0, float64(e.cfg.WindowWidth()), float64(e.cfg.WindowHeight())}
}

// SetDebugMode turns internal assertions and per-frame stats logging on or
// off.
func (e *Engine) SetDebugMode(on bool) {
	globalDebug = on
}

// SetScript attaches a script runner. If the engine does not already poll
// a ScriptedKeys, one replaces the current key source.
func (e *Engine) SetScript(r *ScriptRunner) {
	if e.scripted == nil {
		e.scripted = NewScriptedKeys()
		e.keys = e.scripted
	}
	e.script = r
}

// RegisterScene adds a scene definition to the director.
func (e *Engine) RegisterScene(def SceneDef) error {
	return e.director.Register(def)
}

// SwitchScene builds the registered scene name and makes it current. The
// scene's music setting is applied before its setup runs. The previous scene
// keeps running until the switch completes.
func (e *Engine) SwitchScene(name string) error {
	def, ok := e.director.Def(name)
	if !ok {
		return &ConfigError{Source: "director", Value: name, Err: ErrUnknownScene}
	}

	scene := NewScene(name)
	scene.sink = e.sink
	scene.frame = &e.frame

	if def.Music != nil {
		if *def.Music == "" {
			if err := e.jukebox.Stop(); err != nil {
				return fmt.Errorf("switch scene %q: %w", name, err)
			}
		} else {
			m, err := e.assets.LoadMusic(*def.Music)
			if err != nil {
				return fmt.Errorf("switch scene %q: %w", name, err)
			}
			e.jukebox.Play(m)
		}
	}

	if def.Setup != nil {
		if err := def.Setup(scene, e.context(scene)); err != nil {
			return fmt.Errorf("setup scene %q: %w", name, err)
		}
	}

	e.director.SetCurrent(scene)
	logger.Info("scene switched", "scene", name, "objects", scene.Len())
	e.emit(Event{Type: EventSceneSwitched, Scene: name})
	return nil
}

// UpdateWindow re-applies the configured title and size to the window.
func (e *Engine) UpdateWindow() {
	e.window.Configure(e.cfg.Title, e.cfg.WindowWidth(), e.cfg.WindowHeight())
}

// Step runs the logic half of one frame: close handling, input translation,
// music servicing, the update pass, and composition of the draw pass into
// commands for Render. It returns ebiten.Termination once the engine has
// stopped. Any other error is fatal to the frame.
func (e *Engine) Step() error {
	switch e.state {
	case StateStopped, StateShuttingDown:
		return ebiten.Termination
	case StateIdle:
		e.setState(StateRunning)
	}

	if e.scripted != nil {
		e.scripted.Advance()
	}
	if e.window.CloseRequested() || (e.hasExitKey && e.keys.IsKeyJustPressed(e.exitKey)) {
		return e.shutdown()
	}
	if e.script != nil {
		if err := e.script.step(e, e.scripted); err != nil {
			return err
		}
	}

	scene := e.director.Current()
	if scene == nil {
		return &ConfigError{Source: "director", Err: ErrNoActiveScene}
	}
	if err := e.input.Translate(e.keys); err != nil {
		return err
	}
	e.jukebox.Update()
	e.cmds.list = e.cmds.list[:0]

	ctx := e.context(scene)
	t0 := time.Now()
	err := scene.walk(func(obj Object) error {
		if err := obj.Update(ctx); err != nil {
			return fmt.Errorf("update %T: %w", obj, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	e.camera.update(float32(ctx.DT))
	e.tickers.UpdateAll()

	t1 := time.Now()
	dc := newDrawContext(&e.cmds)
	err = scene.walk(func(obj Object) error {
		switch o := obj.(type) {
		case Drawer:
			o.Draw(dc)
		case Sprite:
			cmd, err := composeSprite(obj, o)
			if err != nil {
				return err
			}
			e.cmds.list = append(e.cmds.list, cmd)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := e.debug.record(&e.cmds); err != nil {
		return err
	}

	if globalDebug {
		e.stats.updateTime = t1.Sub(t0)
		e.stats.drawTime = time.Since(t1)
		e.stats.objectCount = scene.Len()
		e.stats.commandCount = len(e.cmds.list)
	}
	e.frame++
	return nil
}

// Render clears screen to BackgroundColor and submits the commands recorded
// by the last Step, then captures any queued screenshots.
func (e *Engine) Render(screen *ebiten.Image) {
	screen.Fill(BackgroundColor)
	t0 := time.Now()
	submitCommands(screen, e.cmds.list, e.camera.GeoM())
	e.flushScreenshots(screen)
	if globalDebug {
		e.stats.submitTime = time.Since(t0)
		logDebugStats(e.frame, e.stats)
	}
}

// Run opens the window and runs the frame loop until the window is closed
// or a frame fails. If no scene is current, the configured start scene is
// switched to first.
func (e *Engine) Run() error {
	if e.state != StateIdle {
		return fmt.Errorf("sapling: run: engine is %s", e.state)
	}
	if e.director.Current() == nil && e.cfg.StartScene != "" {
		if err := e.SwitchScene(e.cfg.StartScene); err != nil {
			return err
		}
	}
	e.UpdateWindow()
	ebiten.SetTPS(TargetTPS)
	e.setState(StateRunning)
	return ebiten.RunGame(&game{e: e})
}

// Close releases every cached resource. It is separate from loop shutdown
// and may be called once the loop has returned.
func (e *Engine) Close() error {
	return e.assets.Close()
}

// shutdown stops the music and closes the window. Failures are logged; the
// engine always reaches Stopped.
func (e *Engine) shutdown() error {
	e.setState(StateShuttingDown)
	if err := e.jukebox.Stop(); err != nil {
		logger.Error("stop music", "err", err)
	}
	if err := e.window.Close(); err != nil {
		logger.Error("close window", "err", err)
	}
	e.setState(StateStopped)
	e.emit(Event{Type: EventEngineStopped})
	return ebiten.Termination
}

func (e *Engine) setState(s State) {
	if e.state == s {
		return
	}
	logger.Info("engine", "state", s, "frame", e.frame)
	e.state = s
}

func (e *Engine) context(scene *Scene) *Context {
	return &Context{
		Engine:  e,
		Scene:   scene,
		Input:   e.input,
		Assets:  e.assets,
		Audio:   e.jukebox,
		Camera:  e.camera,
		Debug:   e.debug,
		Tickers: e.tickers,
		Frame:   e.frame,
		DT:      1.0 / TargetTPS,
	}
}

func (e *Engine) emit(ev Event) {
	if e.sink == nil {
		return
	}
	if ev.Scene == "" {
		if s := e.director.Current(); s != nil {
			ev.Scene = s.Name()
		}
	}
	ev.Frame = e.frame
	e.sink.EmitEvent(ev)
}

// game adapts an Engine to ebiten.Game.
type game struct {
	e *Engine
}

func (g *game) Update() error { return g.e.Step() }

func (g *game) Draw(screen *ebiten.Image) { g.e.Render(screen) }

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.e.cfg.WindowWidth(), g.e.cfg.WindowHeight()
	if w <= 0 || h <= 0 {
		return outsideWidth, outsideHeight
	}
	return w, h
}
