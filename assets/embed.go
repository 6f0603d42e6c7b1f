// Package assets embeds the stamp logo images shipped with the binary.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed logos/*.png
var embeddedLogos embed.FS

var (
	loadLogosOnce sync.Once
	loadLogosErr  error

	logoImages = map[string]image.Image{}
)

func loadLogos() {
	entries, err := fs.ReadDir(embeddedLogos, "logos")
	if err != nil {
		loadLogosErr = err
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".png") {
			continue
		}
		data, err := embeddedLogos.ReadFile(path.Join("logos", name))
		if err != nil {
			loadLogosErr = err
			return
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			loadLogosErr = err
			return
		}
		logoImages[strings.TrimSuffix(name, ".png")] = img
	}
}

func ensureLogos() error {
	loadLogosOnce.Do(loadLogos)
	return loadLogosErr
}

// LogoImage returns the decoded image for an embedded logo by name.
func LogoImage(name string) (image.Image, error) {
	if err := ensureLogos(); err != nil {
		return nil, err
	}
	img, ok := logoImages[name]
	if !ok {
		return nil, fmt.Errorf("logo %q not embedded", name)
	}
	return img, nil
}

// LogoNames lists the logos embedded in the binary.
func LogoNames() []string {
	if err := ensureLogos(); err != nil {
		return nil
	}
	names := make([]string, 0, len(logoImages))
	for name := range logoImages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Logos returns the full set of embedded logo images keyed by name.
func Logos() (map[string]image.Image, error) {
	if err := ensureLogos(); err != nil {
		return nil, err
	}
	out := make(map[string]image.Image, len(logoImages))
	for name, img := range logoImages {
		out[name] = img
	}
	return out, nil
}
