package wrap

import (
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FaceMeasurer backs the Measurer interface with an OpenType font. Faces
// are created lazily per size and cached.
type FaceMeasurer struct {
	mu    sync.Mutex
	fnt   *opentype.Font
	faces map[float64]font.Face
}

// NewFaceMeasurer parses fontData (TTF/OTF bytes) into a measurer.
func NewFaceMeasurer(fontData []byte) (*FaceMeasurer, error) {
	f, err := opentype.Parse(fontData)
	if err != nil {
		return nil, err
	}
	return &FaceMeasurer{fnt: f, faces: make(map[float64]font.Face)}, nil
}

var (
	defaultMeasurerOnce sync.Once
	defaultMeasurer     *FaceMeasurer
)

// Default returns a measurer backed by the embedded Go Regular face.
func Default() *FaceMeasurer {
	defaultMeasurerOnce.Do(func() {
		m, err := NewFaceMeasurer(goregular.TTF)
		if err != nil {
			log.Fatalf("parse font: %v", err)
		}
		defaultMeasurer = m
	})
	return defaultMeasurer
}

// Face returns the cached font.Face for a size.
func (fm *FaceMeasurer) Face(size float64) font.Face {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	if face, ok := fm.faces[size]; ok {
		return face
	}
	face, err := opentype.NewFace(fm.fnt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Printf("font face %g: %v", size, err)
		return nil
	}
	fm.faces[size] = face
	return face
}

// Width implements Measurer.
func (fm *FaceMeasurer) Width(text string, size float64) float64 {
	face := fm.Face(size)
	if face == nil {
		return 0
	}
	d := &font.Drawer{Face: face}
	return float64(d.MeasureString(text).Ceil())
}

// LineHeight implements Measurer.
func (fm *FaceMeasurer) LineHeight(size float64) float64 {
	face := fm.Face(size)
	if face == nil {
		return size
	}
	m := face.Metrics()
	return float64((m.Ascent + m.Descent).Ceil())
}
