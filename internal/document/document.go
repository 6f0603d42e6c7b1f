// Package document abstracts the page backdrop under the annotation
// overlay. A Source yields page sizes in document units and rasters at a
// requested scale; the engine and renderer never care whether pages come
// from an image file or a PDF.
package document

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/pagemark/internal/geom"
)

// Source is a paged document. Page numbers are zero-based.
type Source interface {
	// PageCount returns the number of pages.
	PageCount() int
	// PageSize returns a page's size in document units.
	PageSize(page int) (geom.Size, error)
	// RenderPage rasters a page at the given scale. Implementations honor
	// ctx cancellation on slow paths.
	RenderPage(ctx context.Context, page int, scale float64) (image.Image, error)
	// Close releases the underlying file.
	Close() error
}

// Open picks a Source implementation from the file extension.
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return OpenPDF(path)
	case ".png", ".jpg", ".jpeg":
		return OpenImage(path)
	default:
		return nil, fmt.Errorf("unsupported document type %q", filepath.Ext(path))
	}
}

// ImageSource serves a single raster image as a one-page document. The
// decoded pixels are the document units, so annotations line up with the
// image at scale 1.
type ImageSource struct {
	img image.Image
}

// OpenImage decodes a PNG or JPEG file.
func OpenImage(path string) (*ImageSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &ImageSource{img: img}, nil
}

// NewImageSource wraps an already decoded image.
func NewImageSource(img image.Image) *ImageSource { return &ImageSource{img: img} }

// PageCount implements Source.
func (s *ImageSource) PageCount() int { return 1 }

// PageSize implements Source.
func (s *ImageSource) PageSize(page int) (geom.Size, error) {
	if page != 0 {
		return geom.Size{}, fmt.Errorf("page %d out of range", page)
	}
	b := s.img.Bounds()
	return geom.Size{W: float64(b.Dx()), H: float64(b.Dy())}, nil
}

// RenderPage implements Source. The raster is returned at its native
// resolution; the renderer scales it into the viewport.
func (s *ImageSource) RenderPage(_ context.Context, page int, _ float64) (image.Image, error) {
	if page != 0 {
		return nil, fmt.Errorf("page %d out of range", page)
	}
	return s.img, nil
}

// Close implements Source.
func (s *ImageSource) Close() error { return nil }
