package sprig

import (
	"errors"
	"testing"
)

// clip is a StreamSeeker producing n samples of a constant level.
type clip struct {
	pos, n int
}

func (c *clip) Stream(samples [][2]float64) (int, bool) {
	if c.pos >= c.n {
		return 0, false
	}
	k := min(len(samples), c.n-c.pos)
	for i := 0; i < k; i++ {
		samples[i] = [2]float64{0.5, 0.5}
	}
	c.pos += k
	return k, true
}

func (c *clip) Err() error    { return nil }
func (c *clip) Len() int      { return c.n }
func (c *clip) Position() int { return c.pos }

func (c *clip) Seek(p int) error {
	if p < 0 || p > c.n {
		return errors.New("seek out of range")
	}
	c.pos = p
	return nil
}

// pump pulls n samples through the engine mixer, as the speaker would.
func pump(e *Engine, n int) {
	buf := make([][2]float64, n)
	e.sounds.mixer.Stream(buf)
}

func TestUnknownSound(t *testing.T) {
	e, _ := newTestEngine(t)
	if err := e.PlaySound("missing"); !errors.Is(err, ErrUnknownSound) {
		t.Errorf("PlaySound = %v, want ErrUnknownSound", err)
	}
	if err := e.StopSound("missing"); !errors.Is(err, ErrUnknownSound) {
		t.Errorf("StopSound = %v, want ErrUnknownSound", err)
	}
	if e.SoundPlaying("missing") {
		t.Error("unknown sound reported playing")
	}
}

func TestSoundLifecycle(t *testing.T) {
	e, _ := newTestEngine(t)
	c := &clip{n: 100}
	e.RegisterSound("pop", c)

	if e.SoundPlaying("pop") {
		t.Fatal("registered sound starts playing")
	}
	if err := e.PlaySound("pop"); err != nil {
		t.Fatal(err)
	}
	if !e.SoundPlaying("pop") {
		t.Fatal("sound not playing after PlaySound")
	}

	pump(e, 40)
	if c.pos != 40 {
		t.Errorf("position = %d after 40 samples", c.pos)
	}

	if err := e.StopSound("pop"); err != nil {
		t.Fatal(err)
	}
	if e.SoundPlaying("pop") || c.pos != 0 {
		t.Errorf("after stop: playing = %v, pos = %d", e.SoundPlaying("pop"), c.pos)
	}
	pump(e, 40)
	if c.pos != 0 {
		t.Errorf("stopped sound advanced to %d", c.pos)
	}

	// Play through to the end; the mixer drops the finished clip.
	if err := e.PlaySound("pop"); err != nil {
		t.Fatal(err)
	}
	pump(e, 256)
	if e.SoundPlaying("pop") {
		t.Error("finished sound still playing")
	}
	if e.sounds.sounds["pop"].queued {
		t.Error("finished sound still queued")
	}

	// Playing again starts over.
	if err := e.PlaySound("pop"); err != nil {
		t.Fatal(err)
	}
	if c.pos != 0 || !e.SoundPlaying("pop") {
		t.Errorf("replay: pos = %d, playing = %v", c.pos, e.SoundPlaying("pop"))
	}
}

func TestStopAllSounds(t *testing.T) {
	e, _ := newTestEngine(t)
	a, b := &clip{n: 1000}, &clip{n: 1000}
	e.RegisterSound("a", a)
	e.RegisterSound("b", b)
	_ = e.PlaySound("a")
	_ = e.PlaySound("b")
	pump(e, 10)

	e.StopAllSounds()
	if e.SoundPlaying("a") || e.SoundPlaying("b") {
		t.Error("sounds still playing after StopAllSounds")
	}
	if a.pos != 0 || b.pos != 0 {
		t.Errorf("positions = %d, %d, want rewound", a.pos, b.pos)
	}
}

func TestRegisterSoundReplaces(t *testing.T) {
	e, _ := newTestEngine(t)
	old := &clip{n: 1000}
	e.RegisterSound("music", old)
	_ = e.PlaySound("music")
	oldCtrl := e.sounds.sounds["music"].ctrl

	e.RegisterSound("music", &clip{n: 10})
	if oldCtrl.Streamer != nil {
		t.Error("replaced sound still feeds the mixer")
	}
	pump(e, 10)
	if old.pos != 0 {
		t.Errorf("replaced clip advanced to %d", old.pos)
	}
}

func TestRegisterNilSoundPanics(t *testing.T) {
	e, _ := newTestEngine(t)
	defer func() {
		if recover() == nil {
			t.Error("no panic for nil stream")
		}
	}()
	e.RegisterSound("x", nil)
}

func TestEnableAudioHeadless(t *testing.T) {
	e, _ := newTestEngine(t)
	if err := e.EnableAudio(0); err != nil {
		t.Fatal(err)
	}
	if e.sounds.enabled {
		t.Error("headless engine enabled audio")
	}
}
