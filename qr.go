package tuiocanvas

import (
	"fmt"
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultQRSize is the calibration QR code size in logical units.
const DefaultQRSize = 300

// qrPixels is the raster size the code is encoded at. The surface scales
// it to the logical size with nearest-neighbour sampling.
const qrPixels = 256

// qrCache encodes the calibration QR code once per distinct content. A
// failed encode is remembered so it is logged once, not every frame.
type qrCache struct {
	content string
	img     image.Image
	err     error
}

func (q *qrCache) image(content string) (image.Image, error) {
	if q.content == content && (q.img != nil || q.err != nil) {
		return q.img, q.err
	}
	q.content = content
	q.img, q.err = EncodeQR(content)
	if q.err != nil {
		Logger().Warn("qr code disabled", "content", content, "err", q.err)
	}
	return q.img, q.err
}

// EncodeQR renders content as a QR code image with medium error correction.
func EncodeQR(content string) (image.Image, error) {
	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("tuiocanvas: encode qr code: %w", err)
	}
	return code.Image(qrPixels), nil
}
