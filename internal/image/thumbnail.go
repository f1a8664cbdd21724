package imagepkg

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io/fs"

	"github.com/disintegration/imaging"
)

const (
	DefaultThumbWidth = 300
	MaxThumbWidth     = 1200
)

var placeholderColor = color.NRGBA{R: 0x2b, G: 0x1d, B: 0x4a, A: 0xff}

// Thumbnail loads the card image at path and scales it to width, keeping the
// aspect ratio. A missing image yields a plain 2:3 placeholder so clients
// always get a PNG back; placeholder reports which one was produced.
func Thumbnail(path string, width int) (png []byte, placeholder bool, err error) {
	if width <= 0 {
		width = DefaultThumbWidth
	}
	if width > MaxThumbWidth {
		width = MaxThumbWidth
	}

	var out image.Image
	src, err := imaging.Open(path)
	switch {
	case err == nil:
		out = imaging.Resize(src, width, 0, imaging.Lanczos)
	case errors.Is(err, fs.ErrNotExist):
		out = Placeholder(width)
		placeholder = true
	default:
		return nil, false, err
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, out, imaging.PNG); err != nil {
		return nil, false, err
	}
	return buf.Bytes(), placeholder, nil
}

// Placeholder is a blank card face with tarot card proportions.
func Placeholder(width int) image.Image {
	h := width * 3 / 2
	canvas := imaging.New(width, h, placeholderColor)
	border := width / 20
	if border > 0 {
		inner := imaging.New(width-2*border, h-2*border, color.NRGBA{R: 0xd4, G: 0xaf, B: 0x37, A: 0xff})
		inner = imaging.Paste(inner, imaging.New(width-4*border, h-4*border, placeholderColor), image.Pt(border, border))
		canvas = imaging.Paste(canvas, inner, image.Pt(border, border))
	}
	return canvas
}
