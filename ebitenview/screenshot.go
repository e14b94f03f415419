package ebitenview

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/zoomview"
)

// Screenshots captures labeled frames to PNG files. Queue a label during
// Update and call Flush at the end of Draw.
type Screenshots struct {
	// Dir is the output directory, created on first use.
	Dir   string
	queue []string
}

// NewScreenshots returns a recorder writing into dir.
func NewScreenshots(dir string) *Screenshots {
	return &Screenshots{Dir: dir}
}

// Queue requests a capture of the next flushed frame.
func (s *Screenshots) Queue(label string) {
	s.queue = append(s.queue, label)
}

// Pending reports the number of queued captures.
func (s *Screenshots) Pending() int {
	return len(s.queue)
}

// Flush writes screen once per queued label, named
// <timestamp>_<label>.png. Write failures are logged and dropped.
func (s *Screenshots) Flush(screen *ebiten.Image) {
	if len(s.queue) == 0 {
		return
	}
	defer func() { s.queue = s.queue[:0] }()

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		zoomview.Logger().Error("ebitenview: screenshot dir", "dir", s.Dir, "err", err)
		return
	}

	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, label := range s.queue {
		path := filepath.Join(s.Dir, stamp+"_"+sanitizeLabel(label)+".png")
		if err := writePNG(path, img); err != nil {
			zoomview.Logger().Error("ebitenview: screenshot", "err", err)
			continue
		}
		zoomview.Logger().Info("ebitenview: screenshot saved", "path", path)
	}
}

// unpremultiply converts premultiplied RGBA pixels into straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}
	return img
}

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

// sanitizeLabel keeps letters, digits, '-' and '.', replacing everything else
// with '_'. Empty labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
