package sapling

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the frame being rendered. Files are
// written by Render into Config.ScreenshotDir as
// <timestamp>_f<frame>_<label>.png.
func (e *Engine) Screenshot(label string) {
	e.screenshotQueue = append(e.screenshotQueue, label)
}

// flushScreenshots writes one PNG per queued label. Failures are logged and
// the queue is always emptied.
func (e *Engine) flushScreenshots(screen *ebiten.Image) {
	if len(e.screenshotQueue) == 0 {
		return
	}
	labels := e.screenshotQueue
	e.screenshotQueue = e.screenshotQueue[:0]

	dir := e.cfg.ScreenshotDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("screenshot skipped", "dir", dir, "err", err)
		return
	}

	img := screenNRGBA(screen)
	stamp := time.Now().Format("20060102_150405")
	for _, label := range labels {
		path := filepath.Join(dir, screenshotName(stamp, e.frame, label))
		if err := savePNG(path, img); err != nil {
			logger.Warn("screenshot failed", "err", err)
			continue
		}
		logger.Info("screenshot", "path", path, "frame", e.frame)
	}
}

// screenNRGBA reads the framebuffer, which ebiten keeps premultiplied.
func screenNRGBA(screen *ebiten.Image) *image.NRGBA {
	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	return straightAlpha(pixels, b.Dx(), b.Dy())
}

// straightAlpha converts premultiplied RGBA bytes into a straight-alpha
// image. The color model conversion of image/draw does the division.
func straightAlpha(pixels []byte, w, h int) *image.NRGBA {
	src := &image.RGBA{Pix: pixels, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}
	dst := image.NewNRGBA(src.Rect)
	draw.Draw(dst, dst.Rect, src, image.Point{}, draw.Src)
	return dst
}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("screenshot %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("screenshot %s: %w", path, err)
	}
	return nil
}

// screenshotName builds the file name for one capture. Anything but ASCII
// letters, digits, '-' and '.' in the label becomes '_'.
func screenshotName(stamp string, frame uint64, label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		label = "unlabeled"
	}
	label = strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) || r == '-' || r == '.' {
			return r
		}
		return '_'
	}, label)
	return fmt.Sprintf("%s_f%d_%s.png", stamp, frame, label)
}
