// Package media converts uploaded binary payloads into the storable
// data-URL form. Photos are downscaled and re-encoded so the bounded
// snapshot slot is not exhausted by a handful of camera shots.
package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

const (
	maxPhotoDimension = 1280
	jpegQuality       = 80
)

// EncodePhoto reads an uploaded image, bounds its dimensions and returns a
// JPEG data URL. A payload that does not decode as an image is reported to
// the caller and affects nothing else.
func EncodePhoto(r io.Reader) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed decoding photo: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxPhotoDimension || bounds.Dy() > maxPhotoDimension {
		img = imaging.Fit(img, maxPhotoDimension, maxPhotoDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("failed encoding photo: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// EncodeDocument returns the raw payload as a data URL with the declared MIME type.
func EncodeDocument(r io.Reader, mimeType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed reading document: %w", err)
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)), nil
}
