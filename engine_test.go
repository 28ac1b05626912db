package sapling

import (
	"errors"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestEngineNew(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	if te.State() != StateIdle {
		t.Errorf("State = %v, want idle", te.State())
	}
	if te.Camera().Zoom != DefaultZoom {
		t.Errorf("Zoom = %v, want %v", te.Camera().Zoom, DefaultZoom)
	}
	if got := te.Input().Actions(); len(got) != 5 {
		t.Errorf("Actions = %v, want 5 default actions", got)
	}
}

func TestEngineNewBadExitKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExitKey = "tab"
	_, err := New(cfg, Options{Loader: newFakeLoader(), Keys: newFakeKeys(), Window: &fakeWindow{}})
	var ce *ConfigError
	if !errors.As(err, &ce) || !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("err = %v, want *ConfigError wrapping ErrUnknownKey", err)
	}
}

func TestStepNoActiveScene(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	err := te.Step()
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *ConfigError", err)
	}
	if ce.Source != "director" || !errors.Is(err, ErrNoActiveScene) {
		t.Errorf("err = %v, want director/ErrNoActiveScene", err)
	}
	if te.Frame() != 0 {
		t.Errorf("Frame = %d, want 0", te.Frame())
	}
}

func TestStepUpdatesInSceneOrder(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	var log []string
	te.withScene(t,
		&recorder{name: "a", log: &log},
		&recorder{name: "b", log: &log},
		&recorder{name: "c", log: &log},
	)
	for i := 0; i < 2; i++ {
		if err := te.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
	}
	if got := strings.Join(log, ""); got != "abcabc" {
		t.Errorf("update order = %q, want abcabc", got)
	}
	if te.Frame() != 2 {
		t.Errorf("Frame = %d, want 2", te.Frame())
	}
	if te.State() != StateRunning {
		t.Errorf("State = %v, want running", te.State())
	}
}

func TestStepDrawOrderBackToFront(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	back := newTestSprite(NewTexture("back", ebiten.NewImage(8, 8)))
	logic := &recorder{name: "logic", log: new([]string)}
	box := &boxDrawer{r: Rect{1, 2, 3, 4}}
	front := newTestSprite(NewTexture("front", ebiten.NewImage(8, 8)))
	te.withScene(t, back, logic, box, front)

	if err := te.Step(); err != nil {
		t.Fatal(err)
	}
	cmds := te.Commands()
	if len(cmds) != 3 {
		t.Fatalf("commands = %d, want 3", len(cmds))
	}
	if cmds[0].Texture != back.Texture() || cmds[2].Texture != front.Texture() {
		t.Errorf("sprite commands out of order: %+v", cmds)
	}
	if cmds[1].Type != CommandFillRect || cmds[1].Dst != box.r {
		t.Errorf("cmds[1] = %+v, want fill of %v", cmds[1], box.r)
	}
	for i, c := range cmds {
		if !c.World {
			t.Errorf("cmds[%d] not world-space", i)
		}
	}
}

func TestStepCommandsResetEachFrame(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	te.withScene(t, newTestSprite(NewTexture("s", ebiten.NewImage(4, 4))))
	for i := 0; i < 3; i++ {
		if err := te.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if n := len(te.Commands()); n != 1 {
		t.Errorf("commands = %d, want 1", n)
	}
}

func TestStepRemoveLaterObjectDuringUpdate(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	var log []string
	b := &recorder{name: "b", log: &log}
	c := &recorder{name: "c", log: &log}
	a := &recorder{name: "a", log: &log, fn: func(ctx *Context) error {
		ctx.Scene.Remove(b)
		return nil
	}}
	te.withScene(t, a, b, c)

	if err := te.Step(); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(log, ""); got != "ac" {
		t.Errorf("updates = %q, want ac", got)
	}
	if te.Scene().Len() != 2 {
		t.Errorf("Len = %d, want 2", te.Scene().Len())
	}
}

func TestStepSelfRemovalDuringUpdate(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	var log []string
	a := &recorder{name: "a", log: &log}
	c := &recorder{name: "c", log: &log}
	var b *recorder
	b = &recorder{name: "b", log: &log, fn: func(ctx *Context) error {
		ctx.Scene.Remove(b)
		return nil
	}}
	te.withScene(t, a, b, c)

	if err := te.Step(); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(log, ""); got != "abc" {
		t.Errorf("updates = %q, want abc (c exactly once)", got)
	}
	log = log[:0]
	if err := te.Step(); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(log, ""); got != "ac" {
		t.Errorf("second frame = %q, want ac", got)
	}
}

func TestStepRemovedSpriteNotDrawn(t *testing.T) {
	texA := NewTexture("a", ebiten.NewImage(4, 4))
	texB := NewTexture("b", ebiten.NewImage(8, 8))

	tests := []struct {
		name string
		// remove picks the sprite that a removes from its own update
		remove  func(a, b *testSprite) *testSprite
		updates string
		drawn   []*Texture
	}{
		{"a removes b", func(_, b *testSprite) *testSprite { return b }, "a", []*Texture{texA}},
		{"a removes itself", func(a, _ *testSprite) *testSprite { return a }, "ab", []*Texture{texB}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := newTestEngine(t, DefaultConfig())
			var log []string
			a := newTestSprite(texA)
			b := newTestSprite(texB)
			a.fn = func(ctx *Context) error {
				log = append(log, "a")
				ctx.Scene.Remove(tt.remove(a, b))
				return nil
			}
			b.fn = func(*Context) error {
				log = append(log, "b")
				return nil
			}
			te.withScene(t, a, b)

			if err := te.Step(); err != nil {
				t.Fatal(err)
			}
			if got := strings.Join(log, ""); got != tt.updates {
				t.Errorf("updates = %q, want %q", got, tt.updates)
			}
			cmds := te.Commands()
			if len(cmds) != len(tt.drawn) {
				t.Fatalf("commands = %d, want %d", len(cmds), len(tt.drawn))
			}
			for i, cmd := range cmds {
				if cmd.Type != CommandTexture || cmd.Texture != tt.drawn[i] {
					t.Errorf("command %d = %v %p, want texture %p", i, cmd.Type, cmd.Texture, tt.drawn[i])
				}
			}
		})
	}
}

func TestStepAddDuringUpdate(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	var log []string
	added := false
	a := &recorder{name: "a", log: &log, fn: func(ctx *Context) error {
		if !added {
			added = true
			return ctx.Scene.Add(&recorder{name: "n", log: &log})
		}
		return nil
	}}
	te.withScene(t, a, &recorder{name: "b", log: &log})

	if err := te.Step(); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(log, ""); got != "abn" {
		t.Errorf("updates = %q, want abn", got)
	}
}

func TestStepUpdateErrorAbortsFrame(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	var log []string
	boom := errors.New("boom")
	sprite := newTestSprite(NewTexture("s", ebiten.NewImage(4, 4)))
	te.withScene(t,
		&recorder{name: "a", log: &log, fn: func(*Context) error { return boom }},
		&recorder{name: "b", log: &log},
		sprite,
	)

	err := te.Step()
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if !strings.Contains(err.Error(), "*sapling.recorder") {
		t.Errorf("err = %q, want the object kind", err)
	}
	if got := strings.Join(log, ""); got != "a" {
		t.Errorf("updates = %q, want a", got)
	}
	if sprite.updates != 0 {
		t.Errorf("sprite updated %d times after abort", sprite.updates)
	}
	if len(te.Commands()) != 0 {
		t.Errorf("commands recorded after abort: %d", len(te.Commands()))
	}
	if te.Frame() != 0 {
		t.Errorf("Frame = %d, want 0", te.Frame())
	}
}

func TestStepSpriteWithoutTexture(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	te.withScene(t, newTestSprite(nil))

	err := te.Step()
	var typeErr *TypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("err = %v, want *TypeError", err)
	}
	if typeErr.Op != "draw" || typeErr.Got != "*sapling.testSprite" {
		t.Errorf("TypeError = %+v", typeErr)
	}
}

func TestStepSpriteWithoutProps(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	te.withScene(t, &nilPropsSprite{tex: NewTexture("t", ebiten.NewImage(2, 2))})

	err := te.Step()
	var typeErr *TypeError
	if !errors.As(err, &typeErr) || typeErr.Got != "*sapling.nilPropsSprite" {
		t.Fatalf("err = %v, want *TypeError naming *sapling.nilPropsSprite", err)
	}
}

func TestStepCloseRequested(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	var log []string
	te.withScene(t, &recorder{name: "a", log: &log})
	music := "theme.ogg"
	m, err := te.Assets().LoadMusic(music)
	if err != nil {
		t.Fatal(err)
	}
	te.Audio().Play(m)

	te.window.closeRequested = true
	if err := te.Step(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("err = %v, want ebiten.Termination", err)
	}
	if te.State() != StateStopped {
		t.Errorf("State = %v, want stopped", te.State())
	}
	if te.window.closes != 1 {
		t.Errorf("window closes = %d, want 1", te.window.closes)
	}
	if te.Audio().Active() != nil {
		t.Error("music still active after shutdown")
	}
	if s := te.loader.streams[music]; s.playing || s.rewinds != 1 {
		t.Errorf("music stream = %+v, want stopped and rewound", s)
	}
	if len(log) != 0 {
		t.Errorf("objects updated during shutdown frame: %v", log)
	}

	// Stopped is terminal.
	if err := te.Step(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("second Step err = %v, want ebiten.Termination", err)
	}
	if te.window.closes != 1 {
		t.Errorf("window closed again: %d", te.window.closes)
	}
	last := te.sink.events[len(te.sink.events)-1]
	if last.Type != EventEngineStopped {
		t.Errorf("last event = %v, want engine-stopped", last.Type)
	}
}

func TestStepExitKey(t *testing.T) {
	tests := []struct {
		name    string
		exitKey string
		press   ebiten.Key
		stop    bool
	}{
		{"escape default", "escape", ebiten.KeyEscape, true},
		{"custom q", "q", ebiten.KeyQ, true},
		{"other key", "escape", ebiten.KeyQ, false},
		{"disabled", "", ebiten.KeyEscape, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ExitKey = tt.exitKey
			te := newTestEngine(t, cfg)
			te.withScene(t)
			te.keys.pressed[tt.press] = true
			err := te.Step()
			if stopped := errors.Is(err, ebiten.Termination); stopped != tt.stop {
				t.Errorf("stopped = %v (err %v), want %v", stopped, err, tt.stop)
			}
		})
	}
}

func TestStepTranslatesInputBeforeUpdate(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	var down, pressed bool
	te.withScene(t, &recorder{name: "a", log: new([]string), fn: func(ctx *Context) error {
		down = ctx.Input.Down("left")
		pressed = ctx.Input.Pressed("space")
		return nil
	}})
	te.keys.down[ebiten.KeyArrowLeft] = true
	te.keys.pressed[ebiten.KeySpace] = true

	if err := te.Step(); err != nil {
		t.Fatal(err)
	}
	if !down || !pressed {
		t.Errorf("down = %v, pressed = %v, want both true", down, pressed)
	}
}

func TestStepUnknownBindingIsFatal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Inputs["menu"] = []string{"tab"}
	te := newTestEngine(t, cfg)
	var log []string
	te.withScene(t, &recorder{name: "a", log: &log})

	err := te.Step()
	var ce *ConfigError
	if !errors.As(err, &ce) || ce.Value != "tab" {
		t.Fatalf("err = %v, want *ConfigError for tab", err)
	}
	if !strings.Contains(err.Error(), "tab") {
		t.Errorf("err = %q, want it to name tab", err)
	}
	if len(log) != 0 {
		t.Errorf("objects updated after input failure: %v", log)
	}
}

func TestStepServicesMusicOncePerFrame(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	track := "theme.ogg"
	err := te.RegisterScene(SceneDef{Name: "music", Music: &track})
	if err != nil {
		t.Fatal(err)
	}
	if err := te.SwitchScene("music"); err != nil {
		t.Fatal(err)
	}
	s := te.loader.streams[track]
	for i := 0; i < 3; i++ {
		if err := te.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if s.updates != 3 {
		t.Errorf("stream updates = %d, want 3", s.updates)
	}
}

func TestSwitchSceneMusic(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	theme, boss, silence := "theme.ogg", "boss.ogg", ""
	defs := []SceneDef{
		{Name: "title", Music: &theme},
		{Name: "menu"},
		{Name: "fight", Music: &boss},
		{Name: "quiet", Music: &silence},
	}
	for _, d := range defs {
		if err := te.RegisterScene(d); err != nil {
			t.Fatal(err)
		}
	}

	steps := []struct {
		scene  string
		active string
	}{
		{"title", theme},
		{"menu", theme}, // absent keeps playing
		{"fight", boss},
		{"quiet", ""},
		{"menu", ""},
	}
	for _, st := range steps {
		if err := te.SwitchScene(st.scene); err != nil {
			t.Fatalf("SwitchScene(%s): %v", st.scene, err)
		}
		got := ""
		if m := te.Audio().Active(); m != nil {
			got = m.Path()
		}
		if got != st.active {
			t.Errorf("after %s active = %q, want %q", st.scene, got, st.active)
		}
	}
	if s := te.loader.streams[theme]; s.playing {
		t.Error("theme still playing after switch to boss")
	}
}

func TestSwitchSceneUnknown(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	err := te.SwitchScene("nowhere")
	if !errors.Is(err, ErrUnknownScene) {
		t.Fatalf("err = %v, want ErrUnknownScene", err)
	}
}

func TestSwitchSceneSetupError(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	old := te.withScene(t)
	boom := errors.New("boom")
	if err := te.RegisterScene(SceneDef{Name: "bad", Setup: func(*Scene, *Context) error { return boom }}); err != nil {
		t.Fatal(err)
	}
	if err := te.SwitchScene("bad"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if te.Scene() != old {
		t.Error("failed switch replaced the current scene")
	}
}

func TestSwitchSceneEvents(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	obj := &recorder{name: "a", log: new([]string)}
	te.withScene(t, obj)

	want := []EventType{EventObjectAdded, EventSceneSwitched}
	if len(te.sink.events) != len(want) {
		t.Fatalf("events = %+v", te.sink.events)
	}
	for i, w := range want {
		if te.sink.events[i].Type != w {
			t.Errorf("event %d = %v, want %v", i, te.sink.events[i].Type, w)
		}
	}
	if te.sink.events[0].Object != obj || te.sink.events[0].Scene != "test" {
		t.Errorf("added event = %+v", te.sink.events[0])
	}
}

func TestStepDebugOverlay(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	te.withScene(t, newTestSprite(NewTexture("s", ebiten.NewImage(4, 4))))
	r := Rect{10, 20, 30, 40}
	te.Debug().AddRect(r)

	if err := te.Step(); err != nil {
		t.Fatal(err)
	}
	cmds := te.Commands()
	if len(cmds) != 2 {
		t.Fatalf("commands = %d, want 2", len(cmds))
	}
	last := cmds[1]
	if last.Type != CommandStrokeRect || last.Dst != r {
		t.Errorf("overlay command = %+v", last)
	}
	if last.World {
		t.Error("overlay drawn in world space, want screen space by default")
	}
}

func TestStepDebugOverlayWorldSpace(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Debug.WorldSpace = true
	te := newTestEngine(t, cfg)
	te.withScene(t)
	te.Debug().AddRect(Rect{0, 0, 1, 1})
	if err := te.Step(); err != nil {
		t.Fatal(err)
	}
	if cmds := te.Commands(); len(cmds) != 1 || !cmds[0].World {
		t.Errorf("commands = %+v, want one world-space outline", cmds)
	}
}

func TestStepTickersAdvance(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	te.withScene(t)
	te.Tickers().Define("walk", 1, 3)
	if err := te.Tickers().Start("walk"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		if err := te.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if v, _ := te.Tickers().Value("walk"); v != 2 {
		t.Errorf("walk = %d, want 2", v)
	}
}

func TestEngineRunRequiresIdle(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	te.withScene(t)
	if err := te.Step(); err != nil {
		t.Fatal(err)
	}
	if err := te.Run(); err == nil {
		t.Error("Run on a running engine succeeded")
	}
}

func TestEngineUpdateWindow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Title = "Demo"
	cfg.WindowSize = []int{320, 240}
	te := newTestEngine(t, cfg)
	te.UpdateWindow()
	if te.window.title != "Demo" || te.window.width != 320 || te.window.height != 240 {
		t.Errorf("window = %+v", te.window)
	}
	if got := te.WindowRect(); got != (Rect{0, 0, 320, 240}) {
		t.Errorf("WindowRect = %v", got)
	}
}

func TestEngineCloseReleasesAssets(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	tex, err := te.Assets().LoadTexture("hero.png")
	if err != nil {
		t.Fatal(err)
	}
	if err := te.Close(); err != nil {
		t.Fatal(err)
	}
	if !tex.Released() {
		t.Error("texture not released by Close")
	}
}

func TestStepDebugModeAssertsNoReentrantWalk(t *testing.T) {
	te := newTestEngine(t, DefaultConfig())
	te.SetDebugMode(true)
	te.withScene(t, &recorder{name: "a", log: new([]string), fn: func(ctx *Context) error {
		return ctx.Scene.walk(func(Object) error { return nil })
	}})

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if msg, ok := r.(string); !ok || !strings.HasPrefix(msg, "sapling debug:") {
			t.Errorf("panic = %v", r)
		}
	}()
	_ = te.Step()
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateIdle, "idle"},
		{StateRunning, "running"},
		{StateShuttingDown, "shutting-down"},
		{StateStopped, "stopped"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
