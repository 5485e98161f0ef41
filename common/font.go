package common

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var parse_font sync.Once
var parsed_font *opentype.Font
var parse_font_err error

// FontFace returns a Go Regular font.Face instance at size points, for drawing footer
// and map label text. The underlying font is parsed once and cached.
func FontFace(size float64) (font.Face, error) {

	parse_font.Do(func() {
		parsed_font, parse_font_err = opentype.Parse(goregular.TTF)
	})

	if parse_font_err != nil {
		return nil, fmt.Errorf("Failed to parse font, %w", parse_font_err)
	}

	opts := &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}

	return opentype.NewFace(parsed_font, opts)
}
