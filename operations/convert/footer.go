package convert

import (
	"fmt"
	"image"
	"image/color"

	"github.com/aaronland/go-image-tools/imaging"
	"github.com/fogleman/gg"
	"github.com/sfomuseum/go-geoimage/common"
	"github.com/sfomuseum/go-geoimage/geo"
)

// Footer text is sized relative to the smaller image dimension, with a fixed amount of
// vertical breathing room around it.
const footerScale = 0.03
const footerPadding = 20

// AppendFooter returns a copy of im extended with a white footer band containing the
// coordinate's formatted latitude and longitude, centered in black text.
func AppendFooter(im image.Image, c *geo.Coordinate) (image.Image, error) {

	bounds := im.Bounds()
	dims := bounds.Max

	size := footerScale * float64(min(dims.X, dims.Y))

	face, err := common.FontFace(size)

	if err != nil {
		return nil, fmt.Errorf("Failed to derive font face, %w", err)
	}

	text := c.String()

	measure := gg.NewContext(1, 1)
	measure.SetFontFace(face)

	_, text_h := measure.MeasureString(text)

	footer_h := int(text_h) + footerPadding

	canvas := imaging.New(dims.X, dims.Y+footer_h, color.White)
	canvas = imaging.Paste(canvas, im, image.Pt(0, 0))

	dc := gg.NewContextForImage(canvas)
	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(text, float64(dims.X)/2.0, float64(dims.Y)+float64(footer_h)/2.0, 0.5, 0.5)

	return dc.Image(), nil
}
