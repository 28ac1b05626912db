package sapling

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestAssetsTextureIdentity(t *testing.T) {
	l := newFakeLoader()
	a := NewAssets(l)

	t1, err := a.LoadTexture("img/player.png")
	if err != nil {
		t.Fatal(err)
	}
	t2, err := a.LoadTexture("img/../img/player.png")
	if err != nil {
		t.Fatal(err)
	}
	if t1 != t2 {
		t.Error("equivalent paths returned different handles")
	}
	if l.loads["img/player.png"] != 1 {
		t.Errorf("native loads = %d, want 1", l.loads["img/player.png"])
	}
	if t1.Path() != "img/player.png" || t1.Width() != 64 || t1.Height() != 32 {
		t.Errorf("texture = %s %dx%d", t1.Path(), t1.Width(), t1.Height())
	}
	if a.Len() != 1 {
		t.Errorf("Len = %d, want 1", a.Len())
	}
}

func TestAssetsKindsAreSeparate(t *testing.T) {
	l := newFakeLoader()
	a := NewAssets(l)

	s1, err := a.LoadSound("jump.wav")
	if err != nil {
		t.Fatal(err)
	}
	s2, _ := a.LoadSound("jump.wav")
	m, err := a.LoadMusic("jump.wav")
	if err != nil {
		t.Fatal(err)
	}
	if s1 != s2 {
		t.Error("sound handles differ")
	}
	if m.Path() != "jump.wav" {
		t.Errorf("music path = %q", m.Path())
	}
	if l.loads["jump.wav"] != 2 {
		t.Errorf("native loads = %d, want one per kind", l.loads["jump.wav"])
	}
}

func TestAssetsFailureNotCached(t *testing.T) {
	l := newFakeLoader()
	l.missing["gone.png"] = true
	a := NewAssets(l)

	_, err := a.LoadTexture("gone.png")
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("err = %v, want *LoadError", err)
	}
	if loadErr.Kind != "texture" || loadErr.Path != "gone.png" || !errors.Is(err, errMissing) {
		t.Errorf("LoadError = %+v", loadErr)
	}
	if a.Len() != 0 {
		t.Errorf("Len = %d after failure, want 0", a.Len())
	}

	delete(l.missing, "gone.png")
	if _, err := a.LoadTexture("gone.png"); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if l.loads["gone.png"] != 2 {
		t.Errorf("native loads = %d, want 2", l.loads["gone.png"])
	}
}

func TestAssetsCloseReleasesOnce(t *testing.T) {
	l := newFakeLoader()
	a := NewAssets(l)
	tex, _ := a.LoadTexture("a.png")
	snd, _ := a.LoadSound("a.wav")
	mus, _ := a.LoadMusic("a.ogg")

	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	if !tex.Released() || !snd.Released() || !mus.Released() {
		t.Error("handles not released")
	}
	if c := l.streams["a.wav"].closes; c != 1 {
		t.Errorf("sound closes = %d, want 1", c)
	}
	if c := l.streams["a.ogg"].closes; c != 1 {
		t.Errorf("music closes = %d, want 1", c)
	}

	for name, load := range map[string]func() error{
		"texture": func() error { _, err := a.LoadTexture("b.png"); return err },
		"sound":   func() error { _, err := a.LoadSound("b.wav"); return err },
		"music":   func() error { _, err := a.LoadMusic("b.ogg"); return err },
	} {
		if err := load(); !errors.Is(err, ErrAssetsClosed) {
			t.Errorf("%s load after Close: err = %v, want ErrAssetsClosed", name, err)
		}
	}
}

func TestAssetsCloseJoinsErrors(t *testing.T) {
	l := newFakeLoader()
	a := NewAssets(l)
	_, _ = a.LoadSound("a.wav")
	_, _ = a.LoadMusic("b.ogg")
	boom := errors.New("device busy")
	l.streams["a.wav"].closeErr = boom

	err := a.Close()
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want device busy", err)
	}
	if c := l.streams["b.ogg"].closes; c != 1 {
		t.Errorf("music closes = %d, want 1 despite sound failure", c)
	}
}

func TestSoundPlayStop(t *testing.T) {
	l := newFakeLoader()
	a := NewAssets(l)
	s, _ := a.LoadSound("hit.wav")
	stream := l.streams["hit.wav"]

	if err := s.Play(); err != nil {
		t.Fatal(err)
	}
	if !s.IsPlaying() || stream.rewinds != 1 {
		t.Errorf("after Play: playing=%v rewinds=%d", s.IsPlaying(), stream.rewinds)
	}
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	if s.IsPlaying() || stream.rewinds != 2 {
		t.Errorf("after Stop: playing=%v rewinds=%d", s.IsPlaying(), stream.rewinds)
	}

	_ = a.Close()
	if err := s.Play(); err != nil || stream.plays != 1 {
		t.Errorf("Play after release: err=%v plays=%d", err, stream.plays)
	}
}

func TestTextureSplit(t *testing.T) {
	tex := NewTexture("sheet", ebiten.NewImage(40, 20))
	tests := []struct {
		w, h float64
		want []Rect
	}{
		{16, 16, []Rect{{0, 0, 16, 16}, {16, 0, 16, 16}}},
		{20, 10, []Rect{{0, 0, 20, 10}, {20, 0, 20, 10}, {0, 10, 20, 10}, {20, 10, 20, 10}}},
		{50, 10, []Rect{}},
		{0, 10, nil},
	}
	for _, tt := range tests {
		got := tex.Split(tt.w, tt.h)
		if len(got) != len(tt.want) {
			t.Errorf("Split(%g, %g) = %v, want %v", tt.w, tt.h, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Split(%g, %g)[%d] = %v, want %v", tt.w, tt.h, i, got[i], tt.want[i])
			}
		}
	}
}
