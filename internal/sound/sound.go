// Package sound plays the background music and the completion chime
package sound

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/ayoisaiah/pomo/internal/apperr"
	"github.com/ayoisaiah/pomo/internal/static"
)

// sampleRate is the rate of the shared speaker. Clips are resampled to it.
const sampleRate = beep.SampleRate(44100)

const resampleQuality = 4

var (
	errInvalidSoundFormat = &apperr.Error{
		Message: "sound file must be in mp3, ogg, flac, or wav format",
	}

	errSpeakerInit = &apperr.Error{
		Message: "unable to initialise audio output",
	}

	errLoadSound = &apperr.Error{
		Message: "unable to load sound %q",
	}
)

var (
	initOnce sync.Once
	initErr  error
)

// Init prepares the speaker. It is safe to call more than once.
func Init() error {
	initOnce.Do(func() {
		err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
		if err != nil {
			initErr = errSpeakerInit.Wrap(err)
		}
	})

	return initErr
}

// Disabled reports whether name turns a sound off.
func Disabled(name string) bool {
	return name == "" || name == "off"
}

// Load decodes the sound called name into memory. A name without an
// extension refers to a bundled sound; anything else is a file path.
func Load(name string) (*beep.Buffer, error) {
	data, ext, err := read(name)
	if err != nil {
		return nil, errLoadSound.Fmt(name).Wrap(err)
	}

	stream, format, err := decode(ext, data)
	if err != nil {
		return nil, errLoadSound.Fmt(name).Wrap(err)
	}

	defer stream.Close()

	buf := beep.NewBuffer(format)
	buf.Append(stream)

	return buf, nil
}

func read(name string) ([]byte, string, error) {
	ext := strings.ToLower(filepath.Ext(name))

	if ext == "" {
		data, err := static.ReadSound(name)
		return data, ".wav", err
	}

	data, err := os.ReadFile(name)

	return data, ext, err
}

func decode(ext string, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	r := bytes.NewReader(data)

	switch ext {
	case ".ogg":
		return vorbis.Decode(io.NopCloser(r))
	case ".mp3":
		return mp3.Decode(io.NopCloser(r))
	case ".flac":
		return flac.Decode(r)
	case ".wav":
		return wav.Decode(r)
	}

	return nil, beep.Format{}, errInvalidSoundFormat
}

func resample(buf *beep.Buffer, s beep.Streamer) beep.Streamer {
	return beep.Resample(resampleQuality, buf.Format().SampleRate, sampleRate, s)
}
