// Package fonts provides the font data used for text measurement and print
// rendering.
//
// The Go fonts ship inside golang.org/x/image, so labels render the same on
// every machine without system font lookup.
package fonts

import (
	"encoding/base64"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the family name registered with renderers.
const FontFamily = "Go"

// FallbackFontFamily is the CSS font stack for viewers that do not load the
// embedded fonts.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// RegularTTF returns the Go Regular TrueType data.
func RegularTTF() []byte {
	return goregular.TTF
}

// BoldTTF returns the Go Bold TrueType data.
func BoldTTF() []byte {
	return gobold.TTF
}

// Cache for base64-encoded fonts (computed once on first access).
var (
	regularBase64     string
	regularBase64Once sync.Once
)

// RegularTTFBase64 returns the regular font as a base64 string for inlining
// into @font-face rules. The result is cached after first computation.
func RegularTTFBase64() string {
	regularBase64Once.Do(func() {
		regularBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return regularBase64
}
