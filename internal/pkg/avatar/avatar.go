package avatar

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

const (
	// Size is the edge length of the stored square avatar
	Size = 256

	jpegQuality = 85

	// MaxUploadBytes caps the accepted avatar upload size
	MaxUploadBytes = 5 << 20
)

// Process decodes an uploaded image, crops it to a centered square and
// re-encodes it as JPEG suitable for object storage.
func Process(r io.Reader) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode avatar image: %w", err)
	}

	square := imaging.Fill(img, Size, Size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, square, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode avatar image: %w", err)
	}

	return buf.Bytes(), nil
}
