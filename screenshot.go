package lumen

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SetScreenshotSource sets the surface screenshots are taken from.
func (h *Host) SetScreenshotSource(src Snapshotter) {
	h.snapshotSource = src
}

// Screenshot queues a labeled screenshot, captured at the end of the current
// Update after every frame callback has drawn. The PNG is written to
// ScreenshotDir with a timestamped filename.
func (h *Host) Screenshot(label string) {
	h.screenshotQueue = append(h.screenshotQueue, label)
}

// flushScreenshots captures the snapshot source once for every queued label
// and writes each as a PNG file. Called at the end of Host.Update.
func (h *Host) flushScreenshots() {
	if len(h.screenshotQueue) == 0 {
		return
	}
	defer func() { h.screenshotQueue = h.screenshotQueue[:0] }()

	if h.snapshotSource == nil {
		h.logf("screenshot: no snapshot source; dropping %d", len(h.screenshotQueue))
		return
	}
	if err := os.MkdirAll(h.ScreenshotDir, 0o755); err != nil {
		h.logf("screenshot: mkdir %s: %v", h.ScreenshotDir, err)
		return
	}

	img := toNRGBA(h.snapshotSource.Snapshot())
	stamp := time.Now().Format("20060102_150405")

	for _, label := range h.screenshotQueue {
		path := filepath.Join(h.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			h.logf("screenshot: %v", err)
		}
	}
}

// toNRGBA converts to straight-alpha NRGBA, the form PNG stores.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Rect, src, b.Min, draw.Src)
	return out
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
