package sapling

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

// Loader performs native resource loads. Assets calls it once per path, on
// the first cache miss.
type Loader interface {
	LoadImage(path string) (*ebiten.Image, error)
	LoadSound(path string) (Stream, error)
	LoadMusic(path string) (MusicStream, error)
}

// Stream is a native audio stream. *audio.Player satisfies it.
type Stream interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	Close() error
}

// MusicStream is a long-running audio stream that is serviced once per frame.
type MusicStream interface {
	Stream
	Update()
}

// Texture is a handle to a GPU image owned by Assets.
type Texture struct {
	path     string
	image    *ebiten.Image
	width    int
	height   int
	released bool
}

// NewTexture wraps an existing image in a handle that is not owned by any
// cache. Useful for procedurally generated images.
func NewTexture(path string, img *ebiten.Image) *Texture {
	t := &Texture{path: path, image: img}
	if img != nil {
		b := img.Bounds()
		t.width, t.height = b.Dx(), b.Dy()
	}
	return t
}

// Path returns the cache key the texture was loaded under.
func (t *Texture) Path() string { return t.path }

// Image returns the native image.
func (t *Texture) Image() *ebiten.Image { return t.image }

// Width returns the native width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the native height in pixels.
func (t *Texture) Height() int { return t.height }

// Size returns the native size.
func (t *Texture) Size() Vec2 { return Vec2{float64(t.width), float64(t.height)} }

// Rect returns the full bounds of the texture.
func (t *Texture) Rect() Rect {
	return Rect{0, 0, float64(t.width), float64(t.height)}
}

// Released reports whether the native image has been deallocated.
func (t *Texture) Released() bool { return t.released }

// Split cuts the texture into a row-major grid of frames of the given size.
// Partial cells at the right and bottom edges are dropped.
func (t *Texture) Split(width, height float64) []Rect {
	if width <= 0 || height <= 0 {
		return nil
	}
	cols := int(float64(t.width) / width)
	rows := int(float64(t.height) / height)
	frames := make([]Rect, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			frames = append(frames, Rect{float64(col) * width, float64(row) * height, width, height})
		}
	}
	return frames
}

func (t *Texture) release() {
	if t.released {
		return
	}
	t.released = true
	if t.image != nil {
		t.image.Deallocate()
	}
}

// Sound is a handle to a short, fully decoded sound effect.
type Sound struct {
	path     string
	stream   Stream
	released bool
}

// Path returns the cache key the sound was loaded under.
func (s *Sound) Path() string { return s.path }

// Play restarts the sound from the beginning.
func (s *Sound) Play() error {
	if s.released {
		return nil
	}
	if err := s.stream.Rewind(); err != nil {
		return err
	}
	s.stream.Play()
	return nil
}

// Stop pauses the sound and rewinds it.
func (s *Sound) Stop() error {
	if s.released {
		return nil
	}
	s.stream.Pause()
	return s.stream.Rewind()
}

// IsPlaying reports whether the sound is audible.
func (s *Sound) IsPlaying() bool {
	return !s.released && s.stream.IsPlaying()
}

// Released reports whether the native stream has been closed.
func (s *Sound) Released() bool { return s.released }

func (s *Sound) release() error {
	if s.released {
		return nil
	}
	s.released = true
	return s.stream.Close()
}

// Music is a handle to a streamed music track. Playback is controlled
// through a Jukebox, which holds at most one active track.
type Music struct {
	path     string
	stream   MusicStream
	released bool
}

// Path returns the cache key the track was loaded under.
func (m *Music) Path() string { return m.path }

// Released reports whether the native stream has been closed.
func (m *Music) Released() bool { return m.released }

func (m *Music) release() error {
	if m.released {
		return nil
	}
	m.released = true
	return m.stream.Close()
}

// Assets is the native resource cache. It is the sole owner of every handle
// it returns and releases each of them exactly once, on Close.
type Assets struct {
	loader   Loader
	textures map[string]*Texture
	sounds   map[string]*Sound
	music    map[string]*Music
	closed   bool
}

// NewAssets creates an empty cache backed by loader.
func NewAssets(loader Loader) *Assets {
	return &Assets{
		loader:   loader,
		textures: make(map[string]*Texture),
		sounds:   make(map[string]*Sound),
		music:    make(map[string]*Music),
	}
}

// LoadTexture returns the texture cached under path, loading it on first use.
// A failed load is not cached; the next call retries.
func (a *Assets) LoadTexture(path string) (*Texture, error) {
	if a.closed {
		return nil, &LoadError{Kind: "texture", Path: path, Err: ErrAssetsClosed}
	}
	key := filepath.Clean(path)
	if t, ok := a.textures[key]; ok {
		return t, nil
	}
	img, err := a.loader.LoadImage(key)
	if err == nil && img == nil {
		err = errors.New("loader returned no image")
	}
	if err != nil {
		return nil, &LoadError{Kind: "texture", Path: key, Err: err}
	}
	t := NewTexture(key, img)
	a.textures[key] = t
	logger.Debug("texture loaded", "path", key, "width", t.width, "height", t.height)
	return t, nil
}

// LoadSound returns the sound cached under path, loading it on first use.
func (a *Assets) LoadSound(path string) (*Sound, error) {
	if a.closed {
		return nil, &LoadError{Kind: "sound", Path: path, Err: ErrAssetsClosed}
	}
	key := filepath.Clean(path)
	if s, ok := a.sounds[key]; ok {
		return s, nil
	}
	stream, err := a.loader.LoadSound(key)
	if err == nil && stream == nil {
		err = errors.New("loader returned no stream")
	}
	if err != nil {
		return nil, &LoadError{Kind: "sound", Path: key, Err: err}
	}
	s := &Sound{path: key, stream: stream}
	a.sounds[key] = s
	logger.Debug("sound loaded", "path", key)
	return s, nil
}

// LoadMusic returns the track cached under path, loading it on first use.
// Loading does not start playback.
func (a *Assets) LoadMusic(path string) (*Music, error) {
	if a.closed {
		return nil, &LoadError{Kind: "music", Path: path, Err: ErrAssetsClosed}
	}
	key := filepath.Clean(path)
	if m, ok := a.music[key]; ok {
		return m, nil
	}
	stream, err := a.loader.LoadMusic(key)
	if err == nil && stream == nil {
		err = errors.New("loader returned no stream")
	}
	if err != nil {
		return nil, &LoadError{Kind: "music", Path: key, Err: err}
	}
	m := &Music{path: key, stream: stream}
	a.music[key] = m
	logger.Debug("music loaded", "path", key)
	return m, nil
}

// Len returns the number of cached handles of all kinds.
func (a *Assets) Len() int {
	return len(a.textures) + len(a.sounds) + len(a.music)
}

// Close releases every cached handle. Further loads fail with
// ErrAssetsClosed. Calling Close again is a no-op.
func (a *Assets) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	var errs []error
	for _, t := range a.textures {
		t.release()
	}
	for _, s := range a.sounds {
		if err := s.release(); err != nil {
			errs = append(errs, fmt.Errorf("release sound %q: %w", s.path, err))
		}
	}
	for _, m := range a.music {
		if err := m.release(); err != nil {
			errs = append(errs, fmt.Errorf("release music %q: %w", m.path, err))
		}
	}
	logger.Debug("assets released", "textures", len(a.textures), "sounds", len(a.sounds), "music", len(a.music))
	return errors.Join(errs...)
}
