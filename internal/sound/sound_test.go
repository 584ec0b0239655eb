package sound

import (
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/pomo/internal/testutil"
)

func TestLoadBundledSound(t *testing.T) {
	for _, name := range []string{"bell", "lofi"} {
		buf, err := Load(name)
		require.NoError(t, err, name)

		assert.Positive(t, buf.Len(), name)
		assert.Equal(t, beep.SampleRate(11025), buf.Format().SampleRate, name)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("thunder")
	assert.Error(t, err, "unknown bundled sound")

	_, err = Load(filepath.Join(t.TempDir(), "missing.mp3"))
	assert.Error(t, err, "missing file")

	path := testutil.TempFile(t, "chime.aiff", "FORM")

	_, err = Load(path)
	assert.ErrorIs(t, err, errInvalidSoundFormat)
}

func TestDisabledPlayersAreSilent(t *testing.T) {
	for _, name := range []string{"", "off"} {
		m, err := NewMusic(name)
		require.NoError(t, err)

		c, err := NewChime(name)
		require.NoError(t, err)

		assert.NoError(t, m.Play(true))
		assert.NoError(t, m.PauseAndRewind())
		assert.NoError(t, c.PlayOnce())
	}
}

func TestMusicPauseAndRewind(t *testing.T) {
	buf, err := Load("lofi")
	require.NoError(t, err)

	m := &Music{buf: buf}
	t.Cleanup(m.Close)

	require.NoError(t, m.Play(true))

	ctrl := m.ctrl

	// consume part of the clip as the speaker would
	samples := make([][2]float64, 512)
	m.ctrl.Stream(samples)
	assert.Positive(t, m.stream.Position())

	require.NoError(t, m.PauseAndRewind())
	assert.True(t, m.ctrl.Paused)
	assert.Zero(t, m.stream.Position())

	require.NoError(t, m.Play(true))
	assert.Same(t, ctrl, m.ctrl, "resuming must reuse the playing stream")
	assert.False(t, m.ctrl.Paused)
}
