package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessPhotoKeepsSmallImage(t *testing.T) {
	out, err := ProcessPhoto(pngBytes(t, 800, 600))
	require.NoError(t, err)

	decoded, err := webp.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 800, decoded.Bounds().Dx())
	assert.Equal(t, 600, decoded.Bounds().Dy())
}

func TestProcessPhotoResizesWideImage(t *testing.T) {
	out, err := ProcessPhoto(pngBytes(t, 3200, 1600))
	require.NoError(t, err)

	decoded, err := webp.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1600, decoded.Bounds().Dx())
	assert.Equal(t, 800, decoded.Bounds().Dy())
}

func TestProcessPhotoRejectsGarbage(t *testing.T) {
	_, err := ProcessPhoto([]byte("not an image"))
	assert.Error(t, err)
}

func TestPhotoKey(t *testing.T) {
	key := PhotoKey(42)
	assert.True(t, strings.HasPrefix(key, "imoveis/42/"))
	assert.True(t, strings.HasSuffix(key, ".webp"))
}

func TestKeyFromURL(t *testing.T) {
	url := "https://bucket.s3.us-east-1.amazonaws.com/imoveis/42/abc.webp"
	assert.Equal(t, "imoveis/42/abc.webp", KeyFromURL(url))
}
