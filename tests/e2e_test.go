package tests

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Beastly713/matryoshka/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeCarrier creates a w by h PNG filled with the given colour.
func writeCarrier(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

var offWhite = color.NRGBA{R: 250, G: 250, B: 250, A: 255}

// TestHideExtractRoundTrip simulates the full user journey on one seed.
func TestHideExtractRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	carrier := filepath.Join(tmpDir, "cover.png")
	stego := filepath.Join(tmpDir, "stego.png")
	payloadFile := filepath.Join(tmpDir, "payload.txt")
	recovered := filepath.Join(tmpDir, "recovered.txt")

	writeCarrier(t, carrier, 100, 100, offWhite)
	require.NoError(t, os.WriteFile(payloadFile, []byte("Secret!!!"), 0644))

	root := cmd.GetRootCmd()

	root.SetArgs([]string{"hide", carrier, "seed_0", "-p", payloadFile, "-o", stego})
	require.NoError(t, root.Execute(), "hide command failed")

	root.SetArgs([]string{"extract", stego, "seed_0", "-o", recovered})
	require.NoError(t, root.Execute(), "extract command failed")

	got, err := os.ReadFile(recovered)
	require.NoError(t, err)
	assert.Equal(t, "Secret!!!", string(got))
}

// TestChainedHideExtract nests two payloads and recovers each by its
// chain prefix.
func TestChainedHideExtract(t *testing.T) {
	tmpDir := t.TempDir()
	carrier := filepath.Join(tmpDir, "cover.png")
	level1 := filepath.Join(tmpDir, "level1.png")
	level2 := filepath.Join(tmpDir, "level2.png")

	writeCarrier(t, carrier, 100, 100, offWhite)

	p1 := filepath.Join(tmpDir, "p1.txt")
	p2 := filepath.Join(tmpDir, "p2.txt")
	require.NoError(t, os.WriteFile(p1, []byte("A"), 0644))
	require.NoError(t, os.WriteFile(p2, []byte("BB"), 0644))

	root := cmd.GetRootCmd()

	root.SetArgs([]string{"hide", carrier, "seed_0", "-p", p1, "-o", level1})
	require.NoError(t, root.Execute())

	root.SetArgs([]string{"hide", level1, "seed_0", "seed_1", "-p", p2, "-o", level2})
	require.NoError(t, root.Execute())

	out1 := filepath.Join(tmpDir, "out1.txt")
	root.SetArgs([]string{"extract", level2, "seed_0", "-o", out1})
	require.NoError(t, root.Execute())
	got, err := os.ReadFile(out1)
	require.NoError(t, err)
	assert.Equal(t, "A", string(got), "level-1 payload must survive deeper hides")

	out2 := filepath.Join(tmpDir, "out2.txt")
	root.SetArgs([]string{"extract", level2, "seed_0", "seed_1", "-o", out2})
	require.NoError(t, root.Execute())
	got, err = os.ReadFile(out2)
	require.NoError(t, err)
	assert.Equal(t, "BB", string(got))
}

func TestHideFailsOnTinyCarrier(t *testing.T) {
	tmpDir := t.TempDir()
	carrier := filepath.Join(tmpDir, "tiny.png")
	payloadFile := filepath.Join(tmpDir, "p.txt")

	writeCarrier(t, carrier, 1, 1, offWhite)
	require.NoError(t, os.WriteFile(payloadFile, []byte("A"), 0644))

	root := cmd.GetRootCmd()
	root.SetArgs([]string{"hide", carrier, "x", "-p", payloadFile, "-o", filepath.Join(tmpDir, "out.png")})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacity")
}

// TestCoverageCommand checks that the two levels mark disjoint pixel sets
// with their palette colours.
func TestCoverageCommand(t *testing.T) {
	tmpDir := t.TempDir()
	carrier := filepath.Join(tmpDir, "cover.png")
	mapPath := filepath.Join(tmpDir, "coverage.png")

	writeCarrier(t, carrier, 50, 50, offWhite)

	root := cmd.GetRootCmd()
	root.SetArgs([]string{"coverage", carrier, "a", "b", "-o", mapPath, "--bytes", "16"})
	require.NoError(t, root.Execute())

	f, err := os.Open(mapPath)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	red, green := 0, 0
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			switch {
			case c.R == 255 && c.G == 0 && c.B == 0:
				red++
			case c.R == 0 && c.G == 255 && c.B == 0:
				green++
			}
		}
	}
	// 16 bytes + sentinel, three pixels each; one marker per pixel, so
	// overlapping levels would come up short.
	assert.Equal(t, 3*17, red)
	assert.Equal(t, 3*17, green)
}

func TestConvertCommand(t *testing.T) {
	tmpDir := t.TempDir()
	jpgPath := filepath.Join(tmpDir, "photo.jpg")
	pngPath := filepath.Join(tmpDir, "photo.png")

	img := image.NewNRGBA(image.Rect(0, 0, 30, 30))
	draw.Draw(img, img.Bounds(), &image.Uniform{offWhite}, image.Point{}, draw.Src)
	f, err := os.Create(jpgPath)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, img, nil))
	require.NoError(t, f.Close())

	root := cmd.GetRootCmd()
	root.SetArgs([]string{"convert", jpgPath, "-o", pngPath})
	require.NoError(t, root.Execute())

	f, err = os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 30, decoded.Bounds().Dx())
}
