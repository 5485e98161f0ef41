package plot

import (
	sm "github.com/flopp/go-staticmaps"
	"github.com/fogleman/gg"
	"github.com/golang/geo/s2"
	"github.com/sfomuseum/go-geoimage/common"
	"golang.org/x/image/font"
)

const labelFontSize = 14.0
const labelPadding = 4.0

// locationLabel is a staticmaps MapObject that draws a text label, offset from a position,
// on a translucent white backing box.
type locationLabel struct {
	pos  s2.LatLng
	text string
	dx   float64
	dy   float64
	face font.Face
}

func newLocationLabel(pos s2.LatLng, text string, dx float64, dy float64) (*locationLabel, error) {

	face, err := common.FontFace(labelFontSize)

	if err != nil {
		return nil, err
	}

	l := &locationLabel{
		pos:  pos,
		text: text,
		dx:   dx,
		dy:   dy,
		face: face,
	}

	return l, nil
}

func (l *locationLabel) Bounds() s2.Rect {
	return s2.RectFromLatLng(l.pos)
}

func (l *locationLabel) ExtraMarginPixels() (float64, float64, float64, float64) {

	m := labelOffset(256, 256) + labelFontSize

	return m, m, m, m
}

func (l *locationLabel) Draw(gc *gg.Context, trans *sm.Transformer) {

	if l.text == "" {
		return
	}

	x, y := trans.LatLngToXY(l.pos)

	x = x + l.dx
	y = y + l.dy

	gc.SetFontFace(l.face)

	w, h := gc.MeasureString(l.text)

	gc.SetRGBA(1.0, 1.0, 1.0, 0.7)
	gc.DrawRoundedRectangle(x-w/2.0-labelPadding, y-h/2.0-labelPadding, w+2.0*labelPadding, h+2.0*labelPadding, 3.0)
	gc.Fill()

	gc.SetRGB(0.0, 0.0, 0.0)
	gc.DrawStringAnchored(l.text, x, y, 0.5, 0.5)
}
