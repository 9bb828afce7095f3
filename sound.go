package sprig

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// DefaultSampleRate is the speaker rate used by [Engine.EnableAudio] when
// none is given.
const DefaultSampleRate = beep.SampleRate(48000)

// speakerOnce guards speaker.Init, which is process-wide.
var (
	speakerOnce sync.Once
	speakerErr  error
)

// sound is one registered clip. The ctrl wraps the clip so it can be paused
// without leaving the mixer; queued reports whether the mixer still holds it.
type sound struct {
	stream beep.StreamSeeker
	ctrl   *beep.Ctrl
	queued bool
}

// soundBoard is the engine's named sound registry. Without audio enabled the
// play state is tracked but nothing reaches a speaker.
type soundBoard struct {
	mu      sync.Mutex
	sounds  map[string]*sound
	mixer   *beep.Mixer
	enabled bool
}

func newSoundBoard() *soundBoard {
	return &soundBoard{
		sounds: make(map[string]*sound),
		mixer:  &beep.Mixer{},
	}
}

// EnableAudio initializes the speaker at rate and starts the engine mixer.
// Registered streams are expected to share that rate. Calling it again is a
// no-op. Headless engines keep audio disabled.
func (e *Engine) EnableAudio(rate beep.SampleRate) error {
	if e.cfg.Headless {
		return nil
	}
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	b := e.sounds
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.enabled {
		return nil
	}
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(rate, rate.N(100*time.Millisecond))
	})
	if speakerErr != nil {
		return fmt.Errorf("sprig: init speaker: %w", speakerErr)
	}
	speaker.Play(b.mixer)
	b.enabled = true
	Logger().Info("audio enabled", "sampleRate", int(rate))
	return nil
}

// RegisterSound stores stream under name, replacing any earlier sound with
// that name. The stream starts paused at its beginning.
func (e *Engine) RegisterSound(name string, stream beep.StreamSeeker) {
	if stream == nil {
		panic("sprig: RegisterSound with nil stream")
	}
	b := e.sounds
	b.lock()
	defer b.unlock()
	if old, ok := b.sounds[name]; ok {
		old.ctrl.Streamer = nil
	}
	b.sounds[name] = &sound{
		stream: stream,
		ctrl:   &beep.Ctrl{Streamer: stream, Paused: true},
	}
}

// PlaySound starts or resumes the named sound. A sound that already played
// to its end starts over.
func (e *Engine) PlaySound(name string) error {
	b := e.sounds
	b.lock()
	defer b.unlock()
	s, ok := b.sounds[name]
	if !ok {
		Logger().Warn("play of unknown sound", "name", name)
		return fmt.Errorf("%w: %q", ErrUnknownSound, name)
	}
	if s.stream.Position() >= s.stream.Len() {
		if err := s.stream.Seek(0); err != nil {
			return fmt.Errorf("sprig: rewind sound %q: %w", name, err)
		}
	}
	s.ctrl.Paused = false
	if !s.queued {
		s.queued = true
		b.mixer.Add(beep.Seq(s.ctrl, beep.Callback(func() { s.queued = false })))
	}
	return nil
}

// StopSound pauses the named sound and rewinds it.
func (e *Engine) StopSound(name string) error {
	b := e.sounds
	b.lock()
	defer b.unlock()
	s, ok := b.sounds[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSound, name)
	}
	s.ctrl.Paused = true
	if err := s.stream.Seek(0); err != nil {
		return fmt.Errorf("sprig: rewind sound %q: %w", name, err)
	}
	return nil
}

// StopAllSounds stops and rewinds every registered sound.
func (e *Engine) StopAllSounds() {
	b := e.sounds
	b.lock()
	defer b.unlock()
	for name, s := range b.sounds {
		s.ctrl.Paused = true
		if err := s.stream.Seek(0); err != nil {
			Logger().Warn("rewind failed", "name", name, "error", err)
		}
	}
}

// SoundPlaying reports whether the named sound is currently unpaused and
// has not reached its end.
func (e *Engine) SoundPlaying(name string) bool {
	b := e.sounds
	b.lock()
	defer b.unlock()
	s, ok := b.sounds[name]
	return ok && !s.ctrl.Paused && s.queued && s.stream.Position() < s.stream.Len()
}

// lock takes the board mutex and, once audio runs, the speaker lock so the
// mixer goroutine never sees a half-updated sound.
func (b *soundBoard) lock() {
	b.mu.Lock()
	if b.enabled {
		speaker.Lock()
	}
}

func (b *soundBoard) unlock() {
	if b.enabled {
		speaker.Unlock()
	}
	b.mu.Unlock()
}
