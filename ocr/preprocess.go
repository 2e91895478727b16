package ocr

import (
	"bytes"

	"github.com/disintegration/imaging"
)

// minRecognitionWidth is the width below which an image is upscaled before
// recognition; small scans lose too much glyph detail at native size.
const minRecognitionWidth = 1000

// Preprocess prepares an image for recognition: grayscale conversion and a
// 2x upscale for narrow images. Undecodable input is returned untouched so
// the engine can report its own error.
func Preprocess(img []byte) []byte {
	decoded, err := imaging.Decode(bytes.NewReader(img))
	if err != nil {
		return img
	}

	out := imaging.Grayscale(decoded)
	if w := out.Bounds().Dx(); w > 0 && w < minRecognitionWidth {
		out = imaging.Resize(out, w*2, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return img
	}
	return buf.Bytes()
}
