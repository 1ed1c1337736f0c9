package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
)

const (
	maxPhotoWidth = 1600
	webpQuality   = 85
)

// ProcessPhoto decodifica jpeg/png, reduz para a largura máxima e
// reencoda como WebP.
func ProcessPhoto(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxPhotoWidth {
		height := bounds.Dy() * maxPhotoWidth / bounds.Dx()
		dst := image.NewRGBA(image.Rect(0, 0, maxPhotoWidth, height))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func PhotoKey(imovelID uint) string {
	return fmt.Sprintf("imoveis/%d/%s.webp", imovelID, uuid.NewString())
}
