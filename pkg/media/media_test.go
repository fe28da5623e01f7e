package media

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngReader(t *testing.T, width, height int) *bytes.Reader {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return bytes.NewReader(buf.Bytes())
}

func decodeDataURL(t *testing.T, dataURL, wantPrefix string) []byte {
	t.Helper()
	require.True(t, strings.HasPrefix(dataURL, wantPrefix), dataURL[:min(len(dataURL), 40)])
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, wantPrefix))
	require.NoError(t, err)
	return raw
}

func TestEncodePhotoProducesJPEGDataURL(t *testing.T) {
	dataURL, err := EncodePhoto(pngReader(t, 64, 48))
	require.NoError(t, err)

	raw := decodeDataURL(t, dataURL, "data:image/jpeg;base64,")
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	// Small photos keep their dimensions.
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 48, cfg.Height)
}

func TestEncodePhotoBoundsLargeImages(t *testing.T) {
	dataURL, err := EncodePhoto(pngReader(t, 2000, 1000))
	require.NoError(t, err)

	raw := decodeDataURL(t, dataURL, "data:image/jpeg;base64,")
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 640, cfg.Height)
}

func TestEncodePhotoRejectsNonImage(t *testing.T) {
	_, err := EncodePhoto(strings.NewReader("definitely not an image"))
	assert.Error(t, err)
}

func TestEncodeDocument(t *testing.T) {
	dataURL, err := EncodeDocument(strings.NewReader("%PDF-1.4 fake"), "application/pdf")
	require.NoError(t, err)
	raw := decodeDataURL(t, dataURL, "data:application/pdf;base64,")
	assert.Equal(t, "%PDF-1.4 fake", string(raw))

	// Missing MIME type falls back to the generic binary type.
	dataURL, err = EncodeDocument(strings.NewReader("blob"), "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURL, "data:application/octet-stream;base64,"))
}
