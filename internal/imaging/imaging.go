package imaging

import (
	"image"
	"image/png"
	"io"
	"os"

	// Register the JPEG decoder; PNG comes with the png import above.
	_ "image/jpeg"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Decode decodes a PNG or JPEG image from r.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	return img, err
}

// ToNRGBA converts any image to NRGBA for uniform pixel access.
func ToNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba
	}
	b := img.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)
	return dst
}

// ResizeWithinMax scales the image down so its longest side is at most
// maxSize, preserving aspect ratio. Images already within the bound are
// returned unchanged.
func ResizeWithinMax(img *image.NRGBA, maxSize int) *image.NRGBA {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	longest := max(w, h)

	if longest <= maxSize {
		return img
	}

	scale := float64(maxSize) / float64(longest)
	newW := max(1, int(float64(w)*scale))
	newH := max(1, int(float64(h)*scale))

	resized := resize.Resize(uint(newW), uint(newH), img, resize.Lanczos3)
	return ToNRGBA(resized)
}

// WritePNG encodes img as PNG into a new file at path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
