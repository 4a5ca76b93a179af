// Package fonts provides the bold font used to measure and draw chart labels.
//
// Every surface measures and draws with the same font and face options, so
// a width computed during layout is exactly the width later drawn. The font
// is Go Bold from golang.org/x/image, compiled into the binary, so results
// do not depend on fonts installed on the host.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS font-family name for the embedded bold font.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for SVG viewers that ignore @font-face.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// BoldTTF returns the TTF font data.
func BoldTTF() []byte {
	return gobold.TTF
}

// Cache for the base64-encoded font (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// BoldTTFBase64 returns the TTF font data as a base64 string.
// The result is cached after first computation.
func BoldTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(gobold.TTF)
	})
	return ttfBase64
}

var (
	parsed     *opentype.Font
	parsedErr  error
	parsedOnce sync.Once
)

// Bold returns the parsed bold font. The font is shared and safe for
// concurrent use.
func Bold() (*opentype.Font, error) {
	parsedOnce.Do(func() {
		parsed, parsedErr = opentype.Parse(gobold.TTF)
	})
	return parsed, parsedErr
}

// NewFace returns a new face of the bold font at size pixels (72 DPI, so
// points equal pixels). A face holds glyph buffers and is not safe for
// concurrent use: each surface creates its own.
func NewFace(size float64) (font.Face, error) {
	fnt, err := Bold()
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	f, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("bold face at %.1fpx: %w", size, err)
	}
	return f, nil
}

// MustNewFace is like NewFace but panics on error. The font is compiled in,
// so a failure here is a programming error.
func MustNewFace(size float64) font.Face {
	f, err := NewFace(size)
	if err != nil {
		panic(err)
	}
	return f
}

// Measure returns the advance width of s in the bold face at size pixels.
func Measure(s string, size float64) float64 {
	adv := font.MeasureString(MustNewFace(size), s)
	return float64(adv) / 64
}
