// Package export flattens annotated pages to PNG and persists annotation
// models as JSON sidecar files next to the exported image.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"math"
	"os"

	"github.com/example/pagemark/internal/document"
	"github.com/example/pagemark/internal/render"
	"github.com/example/pagemark/internal/shape"
)

// SidecarSuffix is appended to the image path for the annotation sidecar.
const SidecarSuffix = ".marks.json"

// Flatten rasters one page with its annotations burned in.
func Flatten(ctx context.Context, src document.Source, m *shape.Model, page int, scale float64, rd *render.Renderer) (*image.RGBA, error) {
	if scale <= 0 {
		scale = 1
	}
	size, err := src.PageSize(page)
	if err != nil {
		return nil, err
	}
	raster, err := src.RenderPage(ctx, page, scale)
	if err != nil {
		return nil, err
	}
	w := int(math.Ceil(size.W * scale))
	h := int(math.Ceil(size.H * scale))
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	v := render.View{Scale: scale}
	rd.DrawPage(out, raster, v, size)
	if m != nil {
		rd.Draw(out, m, v)
	}
	return out, nil
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func(out *os.File) {
		if err := out.Close(); err != nil {
			log.Printf("error closing %q: %v", out.Name(), err)
		}
	}(out)
	return png.Encode(out, img)
}

// sidecar is the on-disk shape of an annotation sidecar: one model per
// page, keyed by zero-based page number.
type sidecar struct {
	Version int                  `json:"version"`
	Pages   map[int]*shape.Model `json:"pages"`
}

const sidecarVersion = 1

// SaveSidecar writes the per-page models to path.
func SaveSidecar(path string, pages map[int]*shape.Model) error {
	doc := sidecar{Version: sidecarVersion, Pages: pages}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadSidecar reads per-page models from path. A missing file yields an
// empty map, so a fresh document starts clean.
func LoadSidecar(path string) (map[int]*shape.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[int]*shape.Model{}, nil
		}
		return nil, err
	}
	var doc sidecar
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc.Version != sidecarVersion {
		return nil, fmt.Errorf("%s: unsupported sidecar version %d", path, doc.Version)
	}
	if doc.Pages == nil {
		doc.Pages = map[int]*shape.Model{}
	}
	return doc.Pages, nil
}
