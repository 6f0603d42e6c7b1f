package document

import (
	"context"
	"image"
	"sync"

	"github.com/example/pagemark/internal/geom"
)

// PageResult is a finished page load.
type PageResult struct {
	Page  int
	Size  geom.Size
	Image image.Image
	Err   error
}

// Loader rasters pages off the event loop. Each Request cancels the
// in-flight load, so a user skipping through pages only ever pays for the
// page they land on; results from superseded requests are dropped.
type Loader struct {
	src     Source
	deliver func(PageResult)

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    int
}

// NewLoader wraps src. deliver is called from the loader goroutine; hosts
// forward it onto their event loop.
func NewLoader(src Source, deliver func(PageResult)) *Loader {
	return &Loader{src: src, deliver: deliver}
}

// Request starts loading a page at the given scale.
func (l *Loader) Request(page int, scale float64) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.gen++
	gen := l.gen
	l.mu.Unlock()

	go func() {
		res := PageResult{Page: page}
		res.Size, res.Err = l.src.PageSize(page)
		if res.Err == nil {
			res.Image, res.Err = l.src.RenderPage(ctx, page, scale)
		}
		l.mu.Lock()
		stale := gen != l.gen
		l.mu.Unlock()
		if stale || ctx.Err() != nil {
			return
		}
		l.deliver(res)
	}()
}

// Close cancels any in-flight load. The underlying Source is left open;
// its lifetime belongs to the caller.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
}
