package document

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"github.com/example/pagemark/internal/geom"
)

// letterSize is the fallback page size in PDF points when a page carries no
// MediaBox.
var letterSize = geom.Size{W: 612, H: 792}

// PDFSource serves the pages of a PDF file. Page sizes come from each
// page's MediaBox in PDF points; content rastering is out of scope, so
// RenderPage yields a blank white sheet at the page's size and annotations
// float over it.
type PDFSource struct {
	r     *pdf.Reader
	count int
	sizes []geom.Size // lazily filled, zero until first PageSize call
}

// OpenPDF opens a PDF file and reads its page count.
func OpenPDF(path string) (*PDFSource, error) {
	r, err := pdf.Open(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	n, err := pagetree.NumPages(r)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("page count of %s: %w", path, err)
	}
	return &PDFSource{r: r, count: n, sizes: make([]geom.Size, n)}, nil
}

// PageCount implements Source.
func (s *PDFSource) PageCount() int { return s.count }

// PageSize implements Source. Sizes are cached after the first lookup.
func (s *PDFSource) PageSize(page int) (geom.Size, error) {
	if page < 0 || page >= s.count {
		return geom.Size{}, fmt.Errorf("page %d out of range", page)
	}
	if s.sizes[page] != (geom.Size{}) {
		return s.sizes[page], nil
	}
	dict, err := pagetree.GetPage(s.r, page)
	if err != nil {
		return geom.Size{}, fmt.Errorf("page %d: %w", page, err)
	}
	size := letterSize
	box, err := pdf.GetRectangle(s.r, dict["MediaBox"])
	if err != nil {
		return geom.Size{}, fmt.Errorf("page %d media box: %w", page, err)
	}
	if box != nil {
		w := box.URx - box.LLx
		h := box.URy - box.LLy
		if w > 0 && h > 0 {
			size = geom.Size{W: w, H: h}
		}
	}
	s.sizes[page] = size
	return size, nil
}

// RenderPage implements Source.
func (s *PDFSource) RenderPage(ctx context.Context, page int, scale float64) (image.Image, error) {
	size, err := s.PageSize(page)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(size.W * scale))
	h := int(math.Ceil(size.H * scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img, nil
}

// Close implements Source.
func (s *PDFSource) Close() error { return s.r.Close() }
