package sound

import (
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Music plays a clip on repeat and can be paused and rewound. Music without
// a clip is silent.
type Music struct {
	buf *beep.Buffer

	mu     sync.Mutex
	stream beep.StreamSeeker
	ctrl   *beep.Ctrl
	loop   bool
}

// NewMusic loads the ambient sound called name.
func NewMusic(name string) (*Music, error) {
	buf, err := prepare(name)
	if err != nil {
		return &Music{}, err
	}

	return &Music{buf: buf}, nil
}

// Play starts the clip, or resumes it if it was paused.
func (m *Music) Play(loop bool) error {
	if m.buf == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctrl != nil && m.loop == loop {
		speaker.Lock()
		m.ctrl.Paused = false
		speaker.Unlock()

		return nil
	}

	m.detach()

	m.stream = m.buf.Streamer(0, m.buf.Len())
	m.loop = loop

	var s beep.Streamer = m.stream
	if loop {
		s = beep.Loop(-1, m.stream)
	}

	m.ctrl = &beep.Ctrl{Streamer: resample(m.buf, s)}

	speaker.Play(m.ctrl)

	return nil
}

// PauseAndRewind pauses the clip and moves it back to the beginning.
func (m *Music) PauseAndRewind() error {
	if m.buf == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctrl == nil {
		return nil
	}

	speaker.Lock()
	defer speaker.Unlock()

	m.ctrl.Paused = true

	return m.stream.Seek(0)
}

// Close removes the clip from the speaker.
func (m *Music) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.detach()
}

// detach drops the current stream from the mixer. A Ctrl without a
// streamer reports that it is drained.
func (m *Music) detach() {
	if m.ctrl == nil {
		return
	}

	speaker.Lock()
	m.ctrl.Streamer = nil
	speaker.Unlock()

	m.ctrl = nil
	m.stream = nil
}

// Chime plays a clip once each time it is triggered. Overlapping plays mix.
type Chime struct {
	buf *beep.Buffer
}

// NewChime loads the notification sound called name.
func NewChime(name string) (*Chime, error) {
	buf, err := prepare(name)
	if err != nil {
		return &Chime{}, err
	}

	return &Chime{buf: buf}, nil
}

// PlayOnce plays the clip from the start without waiting for it to finish.
func (c *Chime) PlayOnce() error {
	if c.buf == nil {
		return nil
	}

	speaker.Play(resample(c.buf, c.buf.Streamer(0, c.buf.Len())))

	return nil
}

func prepare(name string) (*beep.Buffer, error) {
	if Disabled(name) {
		return nil, nil
	}

	if err := Init(); err != nil {
		return nil, err
	}

	return Load(name)
}
