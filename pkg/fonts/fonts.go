// Package fonts provides the font used to rasterize diagrams.
//
// The Go Regular font ships inside golang.org/x/image, so PNG export
// works without any system fonts installed.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the font-family name used in Graphviz output.
const FontFamily = "Go"

// FallbackFontFamily lists fonts Graphviz may substitute.
const FallbackFontFamily = "Go, Helvetica, Arial, sans-serif"

// Parsed font (computed once on first access).
var (
	regular     *truetype.Font
	regularErr  error
	regularOnce sync.Once
)

// GoRegularTTF returns the TTF font data.
func GoRegularTTF() []byte {
	return goregular.TTF
}

// GoRegular returns the parsed Go Regular font.
// The result is cached after first computation.
func GoRegular() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = truetype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// Face returns a Go Regular face at size points (72 DPI).
func Face(size float64) (font.Face, error) {
	f, err := GoRegular()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
