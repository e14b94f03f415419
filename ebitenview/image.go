package ebitenview

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/phanxgames/zoomview"
)

// DecodeImage decodes a PNG, JPEG, GIF, WebP, BMP, or TIFF image.
func DecodeImage(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// LoadImage reads and decodes the image file at path into an ebiten.Image.
func LoadImage(path string) (*ebiten.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	defer f.Close()

	img, format, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	zoomview.Logger().Debug("ebitenview: image loaded", "path", path, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return ebiten.NewImageFromImage(img), nil
}
