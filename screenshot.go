package sprig

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
)

// screenshotStamp names capture files by engine clock time.
const screenshotStamp = "20060102_150405"

// Screenshot queues a capture of the stage. Captures are taken after the
// frame is drawn and saved as Config.ScreenshotDir/<time>_<label>.png.
func (e *Engine) Screenshot(label string) {
	e.screenshotQueue = append(e.screenshotQueue, label)
}

// flushScreenshots saves every queued capture of stage. One frame is read
// back no matter how many labels are waiting.
func (e *Engine) flushScreenshots(stage *ebiten.Image) {
	labels := e.screenshotQueue
	if len(labels) == 0 {
		return
	}
	e.screenshotQueue = nil

	frame := snapshot(stage)
	stamp := e.clock.Now().Format(screenshotStamp)
	for _, label := range labels {
		name := stamp + "_" + sanitizeLabel(label) + ".png"
		path, err := saveScreenshot(e.cfg.ScreenshotDir, name, frame)
		if err != nil {
			Logger().Warn("screenshot failed", "label", label, "error", err)
			continue
		}
		Logger().Info("screenshot written", "path", path)
	}
}

// snapshot reads stage back from the GPU as straight-alpha pixels.
func snapshot(stage *ebiten.Image) *image.NRGBA {
	size := stage.Bounds().Size()
	pix := make([]byte, 4*size.X*size.Y)
	stage.ReadPixels(pix)
	return unpremultiply(pix, size.X, size.Y)
}

// unpremultiply converts premultiplied RGBA bytes, as ebiten reads them
// back, into an NRGBA image.
func unpremultiply(pix []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pix) && i+3 < len(img.Pix); i += 4 {
		c := color.NRGBAModel.Convert(color.RGBA{R: pix[i], G: pix[i+1], B: pix[i+2], A: pix[i+3]}).(color.NRGBA)
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func saveScreenshot(dir, name string, img image.Image) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("sprig: screenshot dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := writePNG(path, img); err != nil {
		return "", err
	}
	return path, nil
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sprig: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("sprig: close %s: %w", path, cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("sprig: encode %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel makes label safe as part of a file name: ASCII letters,
// digits, '-' and '.' are kept and every other rune becomes '_'. A blank
// label becomes "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= utf8.RuneSelf:
			return '_'
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
