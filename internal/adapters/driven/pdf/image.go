package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"os"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/custodia-labs/zip2pdf/internal/core/domain"
)

var errEmptyImage = errors.New("image has no pixels")

// addImagePage places the image at path on a new page, at the top-left
// margin, as wide as the printable area and shrunk to fit its height.
func addImagePage(pdf *gofpdf.Fpdf, name, path string, opts domain.PDFSettings) error {
	data, size, err := loadJPEG(path, opts.JPEGQuality, opts.MaxImagePx)
	if err != nil {
		return err
	}

	imgOpts := gofpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader(name, imgOpts, bytes.NewReader(data))
	if pdf.Err() {
		return pdf.Error()
	}

	pdf.AddPage()
	x, y, maxW, maxH := printableArea(pdf)
	w, h := fitWidth(float64(size.X), float64(size.Y), maxW, maxH)
	pdf.ImageOptions(name, x, y, w, h, false, imgOpts, 0, "")
	return nil
}

// fitWidth scales (imgW, imgH) to maxW keeping the aspect ratio, then
// shrinks it further if it is taller than maxH.
func fitWidth(imgW, imgH, maxW, maxH float64) (w, h float64) {
	w = maxW
	h = maxW * imgH / imgW
	if h > maxH {
		h = maxH
		w = maxH * imgW / imgH
	}
	return w, h
}

// loadJPEG decodes the image at path, flattens it onto white, optionally
// downscales it so its long edge is at most maxPx, and re-encodes it as JPEG.
func loadJPEG(path string, quality, maxPx int) ([]byte, image.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, image.Point{}, err
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, image.Point{}, fmt.Errorf("decode image: %w", err)
	}
	bounds := src.Bounds()
	if bounds.Empty() {
		return nil, image.Point{}, errEmptyImage
	}

	dstSize := scaledSize(bounds.Size(), maxPx)
	dst := image.NewRGBA(image.Rectangle{Max: dstSize})
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if dstSize == bounds.Size() {
		draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, image.Point{}, fmt.Errorf("encode %s as jpeg: %w", format, err)
	}
	return buf.Bytes(), dstSize, nil
}

// scaledSize caps the long edge of size at maxPx. Zero means no cap.
func scaledSize(size image.Point, maxPx int) image.Point {
	long := max(size.X, size.Y)
	if maxPx <= 0 || long <= maxPx {
		return size
	}
	scale := float64(maxPx) / float64(long)
	return image.Pt(
		max(1, int(float64(size.X)*scale+0.5)),
		max(1, int(float64(size.Y)*scale+0.5)),
	)
}
