package render

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	xdraw "golang.org/x/image/draw"
)

// ThumbnailWidth is the pixel width of thumbnail images.
const ThumbnailWidth = 100

// WriteJPEG rasterizes a canvas and writes it as a JPEG.
func WriteJPEG(c *canvas.Canvas, filename string, dpmm float64) error {
	img := rasterizer.Draw(c, canvas.DPMM(dpmm), canvas.DefaultColorSpace)
	return writeJPEGImage(img, filename)
}

// WriteThumbnail rasterizes a canvas, scales it down to the standard
// thumbnail width, and writes it as a JPEG.
func WriteThumbnail(c *canvas.Canvas, filename string, dpmm float64) error {
	img := rasterizer.Draw(c, canvas.DPMM(dpmm), canvas.DefaultColorSpace)

	b := img.Bounds()
	h := b.Dy() * ThumbnailWidth / b.Dx()
	small := image.NewRGBA(image.Rect(0, 0, ThumbnailWidth, h))
	xdraw.CatmullRom.Scale(small, small.Bounds(), img, b, xdraw.Over, nil)

	return writeJPEGImage(small, filename)
}

func writeJPEGImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", filename, err)
	}
	return f.Close()
}
