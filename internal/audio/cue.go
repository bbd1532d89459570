// Package audio plays the short sound that marks the end of an interval.
// The cue file is decoded once into memory; playback only queues the buffer
// on the speaker mixer and returns.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
	"github.com/sirupsen/logrus"
)

// SpeakerRate is the sample rate the speaker is initialized with.
const SpeakerRate = beep.SampleRate(44100)

// ErrUnsupportedFormat is returned for cue files that are neither ogg nor wav.
var ErrUnsupportedFormat = errors.New("unsupported cue format")

var (
	speakerOnce sync.Once
	speakerErr  error

	initSpeaker = func() error {
		speakerOnce.Do(func() {
			speakerErr = speaker.Init(SpeakerRate, SpeakerRate.N(time.Second/10))
		})
		return speakerErr
	}
	playOnSpeaker = func(streamer beep.Streamer) {
		speaker.Play(streamer)
	}
)

// Player plays a preloaded completion cue. A Player that failed to load
// keeps the error and reports it on every play attempt.
type Player struct {
	mu     sync.Mutex
	path   string
	buffer *beep.Buffer
	err    error
}

// Load initializes the speaker and decodes the cue at path.
func Load(path string, logger logrus.FieldLogger) *Player {
	player := &Player{path: path}
	if err := initSpeaker(); err != nil {
		player.err = fmt.Errorf("init speaker: %w", err)
	} else {
		player.buffer, player.err = decodeCue(path, SpeakerRate)
	}

	if logger != nil {
		fields := logrus.Fields{"component": "audio", "file": path}
		if player.err != nil {
			logger.WithFields(fields).WithError(player.err).Warn("Audio disabled: completion cue not loaded")
		} else {
			logger.WithFields(fields).Info("completion cue loaded")
		}
	}
	return player
}

// Err returns the load error, if any.
func (player *Player) Err() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.err
}

// PlayCompletionCue queues the cue on the speaker and returns immediately.
func (player *Player) PlayCompletionCue() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.err != nil {
		return player.err
	}
	if player.buffer == nil {
		return fmt.Errorf("play %s: no audio loaded", player.path)
	}
	playOnSpeaker(player.buffer.Streamer(0, player.buffer.Len()))
	return nil
}

func decodeCue(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cue: %w", err)
	}
	defer file.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		streamer, format, err = vorbis.Decode(file)
	case ".wav":
		streamer, format, err = wav.Decode(file)
	default:
		return nil, fmt.Errorf("decode %s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	var source beep.Streamer = streamer
	if format.SampleRate != rate {
		source = beep.Resample(4, format.SampleRate, rate, streamer)
		format.SampleRate = rate
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(source)
	return buffer, nil
}
