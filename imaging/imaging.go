// Package imaging probes image dimensions and generates the tiny blurred
// placeholder variant stored alongside each uploaded photo.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoder

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// PlaceholderWidth is the pixel width of the low-resolution preview.
	// Small enough that the encoded JPEG is a few hundred bytes; the
	// frontend blurs it while the full image loads.
	PlaceholderWidth = 20

	// placeholderQuality is the JPEG quality for placeholder encoding.
	placeholderQuality = 25
)

// Dimensions returns the pixel width and height of an encoded image without
// decoding the full pixel data.
func Dimensions(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// Placeholder downscales the image to PlaceholderWidth and encodes it as a
// low-quality JPEG.
func Placeholder(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("image has zero dimensions")
	}
	w := PlaceholderWidth
	if b.Dx() < w {
		w = b.Dx()
	}
	h := b.Dy() * w / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: placeholderQuality}); err != nil {
		return nil, fmt.Errorf("encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}

// DominantColor averages the pixels of an encoded image and returns the
// result as a #rrggbb hex string. Intended for the placeholder variant,
// which is small enough to scan in full.
func DominantColor(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return "", fmt.Errorf("image has zero dimensions")
	}
	var r, g, bl, n uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pr, pg, pb, _ := img.At(x, y).RGBA()
			r += uint64(pr >> 8)
			g += uint64(pg >> 8)
			bl += uint64(pb >> 8)
			n++
		}
	}
	return fmt.Sprintf("#%02x%02x%02x", uint8(r/n), uint8(g/n), uint8(bl/n)), nil
}
