package document

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/example/pagemark/internal/geom"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	path := filepath.Join(t.TempDir(), "page.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenImageSource(t *testing.T) {
	path := writeTestPNG(t, 320, 240)
	src, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	if got := src.PageCount(); got != 1 {
		t.Errorf("PageCount = %d, want 1", got)
	}
	size, err := src.PageSize(0)
	if err != nil {
		t.Fatal(err)
	}
	if size != (geom.Size{W: 320, H: 240}) {
		t.Errorf("PageSize = %+v", size)
	}
	img, err := src.RenderPage(context.Background(), 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 320 {
		t.Errorf("raster width = %d", img.Bounds().Dx())
	}
	if _, err := src.PageSize(1); err == nil {
		t.Error("PageSize(1) on a single image should fail")
	}
}

func TestOpenRejectsUnknownExtension(t *testing.T) {
	if _, err := Open("notes.txt"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestOpenPDFMissingFile(t *testing.T) {
	if _, err := OpenPDF(filepath.Join(t.TempDir(), "absent.pdf")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

// stubSource fabricates pages with a configurable render delay so loader
// cancellation can be observed.
type stubSource struct {
	delay time.Duration
}

func (s *stubSource) PageCount() int { return 10 }

func (s *stubSource) PageSize(int) (geom.Size, error) {
	return geom.Size{W: 100, H: 100}, nil
}

func (s *stubSource) RenderPage(ctx context.Context, page int, _ float64) (image.Image, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	img.Set(0, 0, color.RGBA{uint8(page), 0, 0, 255})
	return img, nil
}

func (s *stubSource) Close() error { return nil }

func TestLoaderDeliversResult(t *testing.T) {
	done := make(chan PageResult, 1)
	l := NewLoader(&stubSource{}, func(r PageResult) { done <- r })
	defer l.Close()

	l.Request(3, 1)
	select {
	case r := <-done:
		if r.Err != nil {
			t.Fatal(r.Err)
		}
		if r.Page != 3 {
			t.Errorf("delivered page %d, want 3", r.Page)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}
}

func TestLoaderDropsSupersededRequest(t *testing.T) {
	var mu sync.Mutex
	var got []int
	l := NewLoader(&stubSource{delay: 50 * time.Millisecond}, func(r PageResult) {
		mu.Lock()
		got = append(got, r.Page)
		mu.Unlock()
	})
	defer l.Close()

	l.Request(1, 1)
	l.Request(2, 1)
	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	for _, p := range got {
		if p == 1 {
			t.Fatal("superseded page 1 was delivered")
		}
	}
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("delivered pages %v, want just page 2", got)
	}
}
