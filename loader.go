package sapling

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// DefaultSampleRate is the sample rate of the shared audio context.
const DefaultSampleRate = 44100

// EbitenLoader loads images and audio from the file system using ebiten.
// The audio context is created on the first audio load.
type EbitenLoader struct {
	SampleRate int
}

// NewEbitenLoader returns a loader using DefaultSampleRate.
func NewEbitenLoader() *EbitenLoader {
	return &EbitenLoader{SampleRate: DefaultSampleRate}
}

func (l *EbitenLoader) context() *audio.Context {
	if c := audio.CurrentContext(); c != nil {
		return c
	}
	rate := l.SampleRate
	if rate == 0 {
		rate = DefaultSampleRate
	}
	return audio.NewContext(rate)
}

// LoadImage decodes a png, jpeg or gif file into a GPU image.
func (l *EbitenLoader) LoadImage(path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// LoadSound decodes the whole file into memory.
func (l *EbitenLoader) LoadSound(path string) (Stream, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ctx := l.context()
	stream, err := decodeAudio(path, bytes.NewReader(data), ctx.SampleRate())
	if err != nil {
		return nil, err
	}
	player, err := ctx.NewPlayer(stream)
	if err != nil {
		return nil, err
	}
	return player, nil
}

// LoadMusic opens the file and streams it while it plays. The file stays
// open until the stream is closed.
func (l *EbitenLoader) LoadMusic(path string) (MusicStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	ctx := l.context()
	stream, err := decodeAudio(path, f, ctx.SampleRate())
	if err != nil {
		f.Close()
		return nil, err
	}
	player, err := ctx.NewPlayer(stream)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &musicStream{Player: player, file: f}, nil
}

// decodeAudio picks a decoder by file extension.
func decodeAudio(path string, src io.ReadSeeker, sampleRate int) (io.ReadSeeker, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return wav.DecodeWithSampleRate(sampleRate, src)
	case ".ogg":
		return vorbis.DecodeWithSampleRate(sampleRate, src)
	case ".mp3":
		return mp3.DecodeWithSampleRate(sampleRate, src)
	default:
		return nil, fmt.Errorf("unsupported audio format %q", ext)
	}
}

// musicStream loops its player: once playback reaches the end while the
// track is wanted, Update rewinds and restarts it.
type musicStream struct {
	*audio.Player
	file   *os.File
	wanted bool
}

func (m *musicStream) Play() {
	m.wanted = true
	m.Player.Play()
}

func (m *musicStream) Pause() {
	m.wanted = false
	m.Player.Pause()
}

func (m *musicStream) Update() {
	if !m.wanted || m.Player.IsPlaying() {
		return
	}
	if err := m.Player.Rewind(); err != nil {
		logger.Warn("music rewind failed", "error", err)
		m.wanted = false
		return
	}
	m.Player.Play()
}

func (m *musicStream) Close() error {
	m.wanted = false
	err := m.Player.Close()
	if cerr := m.file.Close(); err == nil {
		err = cerr
	}
	return err
}
