package sapling

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// namedKeys holds the bindings that are not single letters.
var namedKeys = map[string]ebiten.Key{
	"space":  ebiten.KeySpace,
	"enter":  ebiten.KeyEnter,
	"escape": ebiten.KeyEscape,
	"left":   ebiten.KeyArrowLeft,
	"right":  ebiten.KeyArrowRight,
	"up":     ebiten.KeyArrowUp,
	"down":   ebiten.KeyArrowDown,
}

// KeyCode resolves a binding name to a key. Accepted names are space, enter,
// escape, left, right, up, down and the single letters a to z.
func KeyCode(name string) (ebiten.Key, error) {
	if k, ok := namedKeys[name]; ok {
		return k, nil
	}
	if len(name) == 1 && name[0] >= 'a' && name[0] <= 'z' {
		return ebiten.KeyA + ebiten.Key(name[0]-'a'), nil
	}
	return 0, &ConfigError{Source: "input", Value: name, Err: ErrUnknownKey}
}

// KeyNames returns every accepted binding name, sorted.
func KeyNames() []string {
	names := make([]string, 0, len(namedKeys)+26)
	for name := range namedKeys {
		names = append(names, name)
	}
	for c := 'a'; c <= 'z'; c++ {
		names = append(names, string(c))
	}
	sort.Strings(names)
	return names
}

// KeyPoller reports the hardware state of a key for the current frame.
type KeyPoller interface {
	IsKeyDown(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
	IsKeyJustReleased(key ebiten.Key) bool
}

type ebitenKeys struct{}

// EbitenKeys returns a KeyPoller reading ebiten's keyboard state.
func EbitenKeys() KeyPoller { return ebitenKeys{} }

func (ebitenKeys) IsKeyDown(key ebiten.Key) bool         { return ebiten.IsKeyPressed(key) }
func (ebitenKeys) IsKeyJustPressed(key ebiten.Key) bool  { return inpututil.IsKeyJustPressed(key) }
func (ebitenKeys) IsKeyJustReleased(key ebiten.Key) bool { return inpututil.IsKeyJustReleased(key) }
