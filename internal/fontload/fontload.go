// Package fontload locates and reads font binaries.
package fontload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/gofont/goregular"
)

// tracer writes to trace with key 'font.glyph'
func tracer() tracing.Trace {
	return tracing.Select("font.glyph")
}

// FontBinary is a font binary with information about its origin.
type FontBinary struct {
	Name   string // file name or name of packaged font
	Path   string // empty for packaged fonts
	Binary []byte
}

// FallbackName is the name of the packaged fallback font.
const FallbackName = "goregular"

// LoadFile reads a font binary from a file.
func LoadFile(path string) (*FontBinary, error) {
	bytez, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("loaded font file %s (%d bytes)", path, len(bytez))
	return &FontBinary{Name: filepath.Base(path), Path: path, Binary: bytez}, nil
}

// Fallback returns the packaged fallback font, Go Regular.
func Fallback() *FontBinary {
	return &FontBinary{Name: FallbackName, Binary: goregular.TTF}
}

// Resolve finds a font by name. The name may be the name of the packaged
// fallback font, a path to a font file, or the name of a system font, e.g.
// "DejaVuSans" or "Arial.ttf". System fonts are located in the platform
// specific font directories.
func Resolve(name string) (*FontBinary, error) {
	if strings.EqualFold(name, FallbackName) || strings.EqualFold(name, "fallback") {
		tracer().Debugf("%s is the packaged fallback font", name)
		return Fallback(), nil
	}
	if _, err := os.Stat(name); err == nil {
		return LoadFile(name)
	}
	fpath, err := FindFont(name)
	if err != nil {
		return nil, err
	}
	return LoadFile(fpath)
}

// FindFont returns the path of a system font.
func FindFont(name string) (string, error) {
	fpath, err := findfont.Find(name) // try to find as system font
	if err != nil {
		return "", fmt.Errorf("font %q not found in system fonts: %w", name, err)
	}
	if fpath == "" {
		return "", fmt.Errorf("font %q not found in system fonts", name)
	}
	tracer().Debugf("%s is a system font: %s", name, fpath)
	return fpath, nil
}
