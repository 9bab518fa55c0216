package imageio

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/Beastly713/matryoshka/pkg/pixel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 5), B: 128, A: 255})
		}
	}
	return img
}

func TestFromImageRejectsNonRGB(t *testing.T) {
	_, err := FromImage(image.NewGray(image.Rect(0, 0, 4, 4)))
	assert.ErrorIs(t, err, ErrUnsupportedPixelFormat)

	_, err = FromImage(image.NewRGBA64(image.Rect(0, 0, 4, 4)))
	assert.ErrorIs(t, err, ErrUnsupportedPixelFormat)
}

func TestPixmapPreservesAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 77})

	p, err := FromImage(src)
	require.NoError(t, err)

	p.Set(1, 1, pixel.RGB{R: 200, G: 201, B: 202})
	got := p.Image().NRGBAAt(1, 1)
	assert.Equal(t, color.NRGBA{R: 200, G: 201, B: 202, A: 77}, got)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		path := filepath.Join(dir, "carrier"+ext)

		p, err := FromImage(testImage(16, 12))
		require.NoError(t, err)
		p.Set(3, 4, pixel.RGB{R: 1, G: 2, B: 3})
		require.NoError(t, Save(path, p))

		back, err := Load(path)
		require.NoError(t, err, ext)
		require.Equal(t, 16, back.Width())
		require.Equal(t, 12, back.Height())
		assert.Equal(t, pixel.RGB{R: 1, G: 2, B: 3}, back.At(3, 4), "%s must be lossless", ext)
	}
}

func TestSaveRejectsLossyExtension(t *testing.T) {
	p, err := FromImage(testImage(4, 4))
	require.NoError(t, err)

	err = Save(filepath.Join(t.TempDir(), "out.jpg"), p)
	assert.ErrorIs(t, err, ErrLossyOutput)
}

func TestConvertToPNG(t *testing.T) {
	dir := t.TempDir()
	jpgPath := filepath.Join(dir, "photo.jpg")

	f, err := os.Create(jpgPath)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, testImage(20, 20), nil))
	require.NoError(t, f.Close())

	out, err := ConvertToPNG(jpgPath, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "photo.png"), out)

	p, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, 20, p.Width())
}
