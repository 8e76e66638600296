// internal/images/compress.go
package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// maxDimension là cạnh dài nhất sau khi nén, khớp với compressor cũ
// chạy trên canvas của client.
const maxDimension = 800

// jpegQuality 70% — đủ cho ảnh minh chứng, giữ file database nhỏ.
const jpegQuality = 70

// CompressToDataURL đọc một ảnh (JPEG/PNG/GIF...), thu nhỏ về tối đa
// 800px và trả về data URL JPEG để nhúng thẳng vào Document.
func CompressToDataURL(r io.Reader) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
