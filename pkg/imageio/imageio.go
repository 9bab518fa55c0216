// Package imageio decodes carrier images into a mutable 8-bit RGB surface
// and encodes them back through lossless codecs. PNG, BMP and TIFF can be
// read and written; JPEG and WEBP can only be read, for conversion into a
// lossless carrier.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // Register JPEG decoder for carrier conversion
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // Register WEBP decoder

	"github.com/Beastly713/matryoshka/pkg/pixel"
)

// ErrUnsupportedPixelFormat indicates the decoded image does not expose
// three 8-bit colour channels.
var ErrUnsupportedPixelFormat = errors.New("carrier must have 8-bit RGB or RGBA pixels")

// ErrLossyOutput indicates the requested output format would recompress
// the pixel data and destroy the embedded payload.
var ErrLossyOutput = errors.New("output format must be lossless (png, bmp or tiff)")

// Pixmap adapts a decoded image to the engine's carrier interface. The
// pixels live in an NRGBA plane; the alpha channel is preserved across
// writes and never carries data.
type Pixmap struct {
	img  *image.NRGBA
	w, h int
}

// FromImage copies src into a fresh Pixmap. Grayscale, alpha-only and
// 16-bit-per-channel sources are rejected rather than silently widened or
// narrowed.
func FromImage(src image.Image) (*Pixmap, error) {
	switch src.(type) {
	case *image.Gray, *image.Gray16, *image.Alpha, *image.Alpha16, *image.RGBA64, *image.NRGBA64:
		return nil, fmt.Errorf("%T: %w", src, ErrUnsupportedPixelFormat)
	}

	bounds := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), src, bounds.Min, draw.Src)
	return &Pixmap{img: out, w: bounds.Dx(), h: bounds.Dy()}, nil
}

func (p *Pixmap) Width() int  { return p.w }
func (p *Pixmap) Height() int { return p.h }

func (p *Pixmap) At(x, y int) pixel.RGB {
	c := p.img.NRGBAAt(x, y)
	return pixel.RGB{R: c.R, G: c.G, B: c.B}
}

func (p *Pixmap) Set(x, y int, c pixel.RGB) {
	old := p.img.NRGBAAt(x, y)
	old.R, old.G, old.B = c.R, c.G, c.B
	p.img.SetNRGBA(x, y, old)
}

// Image exposes the backing NRGBA plane for encoding.
func (p *Pixmap) Image() *image.NRGBA { return p.img }

// Load decodes the image at path into a Pixmap. The decoder is chosen by
// file content, not extension.
func Load(path string) (*Pixmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open carrier: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return FromImage(src)
}

// Save encodes the pixmap to path using the lossless codec matching the
// file extension.
func Save(path string, p *Pixmap) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(f, p.img)
	case ".bmp":
		err = bmp.Encode(f, p.img)
	case ".tif", ".tiff":
		err = tiff.Encode(f, p.img, nil)
	default:
		return fmt.Errorf("%s: %w", filepath.Ext(path), ErrLossyOutput)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ConvertToPNG re-encodes any decodable image (typically a well-compressed
// JPEG) as a PNG so it can serve as a carrier. The destination keeps the
// source name with a .png extension when dst is empty.
func ConvertToPNG(src, dst string) (string, error) {
	if dst == "" {
		dst = strings.TrimSuffix(src, filepath.Ext(src)) + ".png"
	}

	p, err := Load(src)
	if err != nil {
		return "", err
	}
	if err := Save(dst, p); err != nil {
		os.Remove(dst)
		return "", err
	}
	return dst, nil
}
