package images_test

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"techpartner-api-server/internal/images"
)

func pngImage(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func decodeDataURL(t *testing.T, dataURL string) image.Image {
	t.Helper()
	require.True(t, strings.HasPrefix(dataURL, "data:image/jpeg;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, "data:image/jpeg;base64,"))
	require.NoError(t, err)
	img, _, err := image.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestCompressToDataURL_ShrinksLargeImages(t *testing.T) {
	dataURL, err := images.CompressToDataURL(pngImage(t, 1600, 1200))
	require.NoError(t, err)

	img := decodeDataURL(t, dataURL)
	require.Equal(t, 800, img.Bounds().Dx())
	require.LessOrEqual(t, img.Bounds().Dy(), 800)
}

func TestCompressToDataURL_KeepsSmallImages(t *testing.T) {
	dataURL, err := images.CompressToDataURL(pngImage(t, 200, 100))
	require.NoError(t, err)

	img := decodeDataURL(t, dataURL)
	require.Equal(t, 200, img.Bounds().Dx())
	require.Equal(t, 100, img.Bounds().Dy())
}

func TestCompressToDataURL_RejectsGarbage(t *testing.T) {
	_, err := images.CompressToDataURL(strings.NewReader("not an image"))
	require.Error(t, err)
}
