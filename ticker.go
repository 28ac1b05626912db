package sapling

import (
	"fmt"
	"sort"
)

// Ticker is a frame-driven counter. Every update increments an internal
// count; once the count exceeds Rate the value advances by one, wrapping to
// zero at Limit, and the count restarts.
type Ticker struct {
	Rate  int
	Limit int

	count   int
	value   int
	running bool
}

// Value returns the current value.
func (t *Ticker) Value() int { return t.value }

// Running reports whether the ticker advances on update.
func (t *Ticker) Running() bool { return t.running }

func (t *Ticker) update() {
	if !t.running {
		return
	}
	t.count++
	if t.count > t.Rate {
		t.count = 0
		t.value++
		if t.Limit > 0 && t.value >= t.Limit {
			t.value = 0
		}
	}
}

// Tickers is a named set of tickers, advanced once per frame by the engine.
// Animations use them to step through sprite-sheet frames.
type Tickers struct {
	tickers map[string]*Ticker
}

// NewTickers returns an empty set.
func NewTickers() *Tickers {
	return &Tickers{tickers: make(map[string]*Ticker)}
}

// Define adds or replaces a ticker. New tickers are stopped; call Start.
func (ts *Tickers) Define(name string, rate, limit int) *Ticker {
	t := &Ticker{Rate: rate, Limit: limit}
	ts.tickers[name] = t
	return t
}

// Undefine removes a ticker.
func (ts *Tickers) Undefine(name string) {
	delete(ts.tickers, name)
}

// Get returns the named ticker.
func (ts *Tickers) Get(name string) (*Ticker, error) {
	t, ok := ts.tickers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTicker, name)
	}
	return t, nil
}

// Start resumes a ticker.
func (ts *Tickers) Start(name string) error {
	t, err := ts.Get(name)
	if err != nil {
		return err
	}
	t.running = true
	return nil
}

// Stop pauses a ticker. With reset, the value and count go back to zero.
func (ts *Tickers) Stop(name string, reset bool) error {
	t, err := ts.Get(name)
	if err != nil {
		return err
	}
	t.running = false
	if reset {
		t.count = 0
		t.value = 0
	}
	return nil
}

// Running reports whether the named ticker is running.
func (ts *Tickers) Running(name string) (bool, error) {
	t, err := ts.Get(name)
	if err != nil {
		return false, err
	}
	return t.running, nil
}

// Value returns the named ticker's value.
func (ts *Tickers) Value(name string) (int, error) {
	t, err := ts.Get(name)
	if err != nil {
		return 0, err
	}
	return t.value, nil
}

// Update advances one ticker.
func (ts *Tickers) Update(name string) error {
	t, err := ts.Get(name)
	if err != nil {
		return err
	}
	t.update()
	return nil
}

// UpdateAll advances every ticker once.
func (ts *Tickers) UpdateAll() {
	for _, t := range ts.tickers {
		t.update()
	}
}

// Names returns the defined ticker names, sorted.
func (ts *Tickers) Names() []string {
	names := make([]string, 0, len(ts.tickers))
	for name := range ts.tickers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
