package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/sidsharmaji/PDF-Master-pro/model"
)

var errNoImageData = errors.New("no image data")

// drawImage paints one image element letterboxed into its box. A missing
// or undecodable payload paints the placeholder instead, so a broken
// image never takes the page down with it.
func drawImage(ctx *Context, im *model.Image) {
	x, y, w, h := ctx.Box(im.BBox)
	if w < 1 || h < 1 {
		return
	}
	restore := ctx.Surface.SetOpacity(styleOpacity(im.Style))
	defer restore()
	ctx.Surface.Layer(x, y, w, h, im.Style.Rotation, func(s Surface) {
		src, err := decodeImage(im)
		if err != nil {
			ctx.logger().Debug("drawing image placeholder",
				"ref", im.Ref, "error", err)
			placeholder(ctx, s, x, y, w, h, placeholderLabel(im.Ref))
			return
		}
		sb := src.Bounds()
		scale := math.Min(w/float64(sb.Dx()), h/float64(sb.Dy()))
		dw := float64(sb.Dx()) * scale
		dh := float64(sb.Dy()) * scale
		s.DrawImage(src, x+(w-dw)/2, y+(h-dh)/2, dw, dh)
		if border := colorOrNil(im.Style.BorderColor); border != nil {
			s.DrawRect(x, y, w, h, nil, border, math.Max(ctx.Length(im.Style.BorderWidth), 1), im.Style.BorderStyle)
		}
	})
}

func decodeImage(im *model.Image) (image.Image, error) {
	if len(im.Data) == 0 {
		return nil, errNoImageData
	}
	img, _, err := image.Decode(bytes.NewReader(im.Data))
	return img, err
}

// placeholder paints the shared broken-image marker: a light gray box
// with crossed diagonals and a short label.
func placeholder(ctx *Context, s Surface, x, y, w, h float64, label string) {
	fill := color.NRGBA{R: 235, G: 235, B: 235, A: 255}
	edge := color.NRGBA{R: 160, G: 160, B: 160, A: 255}
	s.DrawRect(x, y, w, h, fill, edge, 1, model.BorderSolid)
	s.DrawLine(x, y, x+w, y+h, edge, 1)
	s.DrawLine(x+w, y, x, y+h, edge, 1)
	if label == "" || h < 24 {
		return
	}
	fontPx := math.Min(12*ctx.deviceScale(), h/3)
	face := ctx.faces().Face(false, false, fontPx)
	fg := color.NRGBA{R: 90, G: 90, B: 90, A: 255}
	for i, ln := range wrapText(face, label, w-8) {
		by := y + h/2 + float64(i)*fontPx*lineHeightFactor
		if by > y+h-2 {
			break
		}
		s.DrawText(ln.text, face, x+(w-ln.width)/2, by, fg)
	}
}

// placeholderLabel keeps the source reference readable inside the box.
func placeholderLabel(ref string) string {
	if ref == "" {
		return "image unavailable"
	}
	if r := []rune(ref); len(r) > 48 {
		return string(r[:48])
	}
	return ref
}
