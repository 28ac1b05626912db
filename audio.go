package sapling

// Jukebox owns the music slot. At most one track is active at a time and only
// the active track is serviced by Update.
type Jukebox struct {
	active *Music
	paused bool
}

// NewJukebox returns a jukebox with an empty slot.
func NewJukebox() *Jukebox {
	return &Jukebox{}
}

// Active returns the active track, or nil.
func (j *Jukebox) Active() *Music {
	return j.active
}

// Play makes m the active track and starts it. A different track that was
// active is paused where it is, not rewound. Playing the active track again
// resumes it.
//
// Only one stream is audible at a time. An ebiten player keeps sounding
// whether or not its Music is updated, so the old track has to be paused
// here rather than left to go quiet on its own.
func (j *Jukebox) Play(m *Music) {
	if m == nil || m.released {
		return
	}
	if j.active != nil && j.active != m {
		j.active.stream.Pause()
	}
	j.active = m
	j.paused = false
	m.stream.Play()
}

// Pause pauses the active track and keeps it in the slot.
func (j *Jukebox) Pause() {
	if j.active == nil {
		return
	}
	j.active.stream.Pause()
	j.paused = true
}

// Resume continues a paused active track.
func (j *Jukebox) Resume() {
	if j.active == nil || !j.paused {
		return
	}
	j.paused = false
	j.active.stream.Play()
}

// Stop halts and rewinds the active track and clears the slot.
func (j *Jukebox) Stop() error {
	m := j.active
	if m == nil {
		return nil
	}
	j.active = nil
	j.paused = false
	if m.released {
		return nil
	}
	m.stream.Pause()
	return m.stream.Rewind()
}

// Update advances the active track's buffer. The frame loop calls it exactly
// once per frame.
func (j *Jukebox) Update() {
	if j.active == nil || j.active.released || j.paused {
		return
	}
	j.active.stream.Update()
}
