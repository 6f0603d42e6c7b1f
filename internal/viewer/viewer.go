// Package viewer hosts the annotation engine in a shiny window: event
// loop, page navigation, zoom and pan, and the paint worker.
package viewer

import (
	"context"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/pagemark/assets"
	"github.com/example/pagemark/internal/clipboard"
	"github.com/example/pagemark/internal/config"
	"github.com/example/pagemark/internal/document"
	"github.com/example/pagemark/internal/engine"
	"github.com/example/pagemark/internal/export"
	"github.com/example/pagemark/internal/geom"
	"github.com/example/pagemark/internal/notify"
	"github.com/example/pagemark/internal/render"
	"github.com/example/pagemark/internal/shape"
	"github.com/example/pagemark/internal/theme"
	"github.com/example/pagemark/internal/wrap"
)

// pagePad is the margin around the page card, in pixels.
const pagePad = 16

// App holds the wiring for one annotation window.
type App struct {
	Path     string
	Output   string
	Source   document.Source
	Config   *config.Config
	Theme    *theme.Theme
	Notifier *notify.Notifier

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an App during creation.
type Option func(*App)

// WithSource sets the opened document.
func WithSource(src document.Source) Option { return func(a *App) { a.Source = src } }

// WithPath records the document path, used for titles and the sidecar.
func WithPath(p string) Option { return func(a *App) { a.Path = p } }

// WithOutput sets the flattened PNG output path.
func WithOutput(out string) Option { return func(a *App) { a.Output = out } }

// WithConfig seeds tool properties, the stamp template and notifications.
func WithConfig(cfg *config.Config) Option { return func(a *App) { a.Config = cfg } }

// WithTheme sets the chrome colors.
func WithTheme(t *theme.Theme) Option { return func(a *App) { a.Theme = t } }

// WithNotifier enables desktop notifications.
func WithNotifier(n *notify.Notifier) Option { return func(a *App) { a.Notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New creates an App with the provided options.
func New(opts ...Option) *App {
	a := &App{}
	for _, o := range opts {
		o(a)
	}
	if a.Config == nil {
		a.Config = config.New()
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	return a
}

// pageEvent carries an async page-load result into the event loop.
type pageEvent struct {
	res document.PageResult
}

func (a *App) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *App) Run() { driver.Main(a.Main) }

func (a *App) Main(s screen.Screen) {
	defer a.notifyClose()
	if a.Source == nil {
		log.Print("viewer: no document source")
		return
	}
	chrome = a.Theme

	fonts := wrap.Default()
	logos, err := assets.Logos()
	if err != nil {
		log.Printf("load logos: %v", err)
	}
	rd := render.New(render.WithFonts(fonts), render.WithLogos(logos))

	pageCount := a.Source.PageCount()
	pages := map[int]*shape.Model{}
	sidecar := a.Path + export.SidecarSuffix
	if loaded, err := export.LoadSidecar(sidecar); err != nil {
		log.Printf("load sidecar: %v", err)
	} else {
		pages = loaded
	}

	page := 0
	pageSize, err := a.Source.PageSize(page)
	if err != nil {
		log.Printf("page size: %v", err)
		return
	}

	labels := []string{
		"V:Select", "P:Pen", "X:Rect", "O:Circle", "A:Arrow",
		"T:Text", "L:Callout", "C:Cloud", "S:Stamp",
	}
	sizeToolbar(labels)

	width := int(pageSize.W) + toolbarWidth + 2*pagePad
	height := int(pageSize.H) + topHeight + statusHeight + 2*pagePad
	if width > 1400 {
		width = 1400
	}
	if height > 900 {
		height = 900
	}
	if width < 640 {
		width = 640
	}
	if height < 480 {
		height = 480
	}

	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Pagemark"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	eng := engine.New(
		engine.WithMeasurer(fonts),
		engine.WithProperties(a.Config.Tools),
		engine.WithStampTemplate(a.Config.Stamp),
		engine.WithChangeListener(func() { w.Send(paint.Event{}) }),
		engine.WithToolListener(func(engine.Tool) { w.Send(paint.Event{}) }),
	)
	if m, ok := pages[page]; ok && m != nil {
		eng.ReplaceModel(m)
	}

	loader := document.NewLoader(a.Source, func(res document.PageResult) {
		w.Send(pageEvent{res: res})
	})
	defer loader.Close()

	zoom := 1.0
	pan := image.Point{}
	var pageImg image.Image
	var message string
	var messageUntil time.Time
	mouseDown := false
	panDown := false
	var panStart image.Point
	var panBase image.Point
	keysDown := map[key.Code]bool{}

	scaleFor := func() float64 {
		avail := geom.Size{
			W: float64(width - toolbarWidth - 2*pagePad),
			H: float64(height - topHeight - statusHeight - 2*pagePad),
		}
		if avail.W < 1 {
			avail.W = 1
		}
		if avail.H < 1 {
			avail.H = 1
		}
		return geom.FitScale(pageSize, avail) * zoom
	}
	viewFor := func() render.View {
		return render.View{
			Scale:  scaleFor(),
			Origin: geom.Pt(float64(toolbarWidth+pagePad+pan.X), float64(topHeight+pagePad+pan.Y)),
		}
	}

	say := func(format string, args ...any) {
		message = fmt.Sprintf(format, args...)
		log.Print(message)
		messageUntil = time.Now().Add(2 * time.Second)
		w.Send(paint.Event{})
	}

	requestPage := func() {
		pageImg = nil
		eng.SetPageLoaded(false)
		eng.SetViewScale(scaleFor())
		loader.Request(page, scaleFor())
		w.Send(paint.Event{})
	}

	setPage := func(p int) {
		if p < 0 || p >= pageCount || p == page {
			return
		}
		pages[page] = eng.Model()
		page = p
		sz, err := a.Source.PageSize(page)
		if err != nil {
			log.Printf("page size: %v", err)
			return
		}
		pageSize = sz
		m := pages[page]
		if m == nil {
			m = shape.NewModel()
		}
		eng.ReplaceModel(m)
		pan = image.Point{}
		requestPage()
	}

	setZoom := func(z float64) {
		z = geom.ClampZoom(z)
		if z == zoom {
			return
		}
		zoom = z
		requestPage()
	}

	flatten := func() (*image.RGBA, error) {
		return export.Flatten(context.Background(), a.Source, eng.Model(), page, scaleFor(), rd)
	}

	saveSidecar := func() error {
		pages[page] = eng.Model()
		return export.SaveSidecar(sidecar, pages)
	}

	exportPNG := func() {
		img, err := flatten()
		if err != nil {
			log.Printf("export: %v", err)
			return
		}
		if err := export.SavePNG(a.Output, img); err != nil {
			log.Printf("export: %v", err)
			return
		}
		a.Notifier.Export(a.Output)
		say("exported %s", a.Output)
	}

	actions := map[string]func(){}
	actions["save"] = func() {
		if err := saveSidecar(); err != nil {
			log.Printf("save: %v", err)
			return
		}
		say("saved %s", sidecar)
	}
	actions["export"] = exportPNG
	actions["copyimage"] = func() {
		img, err := flatten()
		if err != nil {
			log.Printf("copy: %v", err)
			return
		}
		if err := clipboard.WriteImage(img); err != nil {
			log.Printf("copy: %v", err)
			return
		}
		a.Notifier.Copy(filepath.Base(a.Path))
		say("page copied to clipboard")
	}
	actions["undo"] = eng.Undo
	actions["redo"] = eng.Redo
	actions["nextpage"] = func() { setPage(page + 1) }
	actions["prevpage"] = func() { setPage(page - 1) }
	actions["zoomin"] = func() { setZoom(geom.ZoomIn(zoom)) }
	actions["zoomout"] = func() { setZoom(geom.ZoomOut(zoom)) }
	actions["zoomreset"] = func() { setZoom(1) }
	actions["editdone"] = func() {
		eng.Key(engine.KeyEvent{Code: engine.KeyEnter, Mods: engine.ModCtrl})
	}
	actions["editcancel"] = func() {
		eng.Key(engine.KeyEvent{Code: engine.KeyEscape})
	}
	quitting := false
	actions["quit"] = func() { quitting = true }

	trigger := func(name string) {
		if fn, ok := actions[name]; ok {
			fn()
		}
		w.Send(paint.Event{})
	}

	toolButtons = toolButtons[:0]
	for i, lbl := range labels {
		t := engine.Tool(i)
		toolButtons = append(toolButtons, &CacheButton{Button: &ToolButton{
			label: lbl, tool: t,
			onSelect: func() { eng.SetActiveTool(t) },
		}})
	}

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, rd, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
		}
	}()
	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	requestPage()

	for {
		if quitting {
			stopPaint()
			return
		}
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPaint()
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			eng.SetViewScale(scaleFor())
			loader.Request(page, scaleFor())
			w.Send(paint.Event{})
		case pageEvent:
			if e.res.Page != page {
				break
			}
			if e.res.Err != nil {
				log.Printf("load page %d: %v", e.res.Page+1, e.res.Err)
				break
			}
			pageImg = e.res.Image
			pageSize = e.res.Size
			eng.SetPageLoaded(true)
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			selKind, selIndex, selOK := eng.SelectedShape()
			st := paintState{
				width:        width,
				height:       height,
				model:        eng.Model(),
				view:         viewFor(),
				pageImg:      pageImg,
				pageSize:     pageSize,
				page:         page,
				pageCount:    pageCount,
				docName:      filepath.Base(a.Path),
				tool:         eng.ActiveTool(),
				selKind:      selKind,
				selIndex:     selIndex,
				selOK:        selOK,
				draft:        eng.Draft(),
				zoom:         zoom,
				message:      message,
				messageUntil: messageUntil,
				trigger:      trigger,
			}
			if ed := eng.Editor(); ed != nil {
				st.editing = true
				st.editKind = ed.Kind
				st.editIndex = ed.Index
			}
			select {
			case paintCh <- st:
			default:
				<-paintCh
				paintCh <- st
			}
		case mouse.Event:
			ex, ey := int(e.X), int(e.Y)
			if message != "" && time.Now().Before(messageUntil) && e.Direction == mouse.DirPress {
				messageUntil = time.Time{}
				w.Send(paint.Event{})
				continue
			}
			if ey >= height-statusHeight {
				p := image.Point{ex, ey}
				hoverShortcut = -1
				for i := range shortcutRects {
					sc := &shortcutRects[i]
					if p.In(sc.rect) {
						hoverShortcut = i
						if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
							sc.Activate()
						}
						break
					}
				}
				if e.Direction == mouse.DirNone {
					w.Send(paint.Event{})
				}
				continue
			}
			if ex < toolbarWidth && ey >= topHeight {
				idx := (ey - topHeight) / 24
				hoverTool = -1
				if idx >= 0 && idx < len(toolButtons) {
					hoverTool = idx
					if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
						toolButtons[idx].Activate()
					}
				}
				if e.Direction == mouse.DirNone || e.Direction == mouse.DirPress {
					w.Send(paint.Event{})
				}
				continue
			}
			if ey < topHeight {
				continue
			}

			switch e.Button {
			case mouse.ButtonWheelUp:
				setZoom(geom.ZoomIn(zoom))
				continue
			case mouse.ButtonWheelDown:
				setZoom(geom.ZoomOut(zoom))
				continue
			case mouse.ButtonMiddle:
				switch e.Direction {
				case mouse.DirPress:
					panDown = true
					panStart = image.Point{ex, ey}
					panBase = pan
				case mouse.DirRelease:
					panDown = false
				}
				continue
			}
			if panDown && e.Direction == mouse.DirNone {
				pan = panBase.Add(image.Pt(ex-panStart.X, ey-panStart.Y))
				w.Send(paint.Event{})
				continue
			}

			v := viewFor()
			docPt := geom.ToDocument(geom.Pt(float64(e.X), float64(e.Y)), v.Scale, v.Origin)
			if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
				mouseDown = true
				eng.PointerDown(docPt, translateMods(e.Modifiers))
				w.Send(paint.Event{})
			} else if mouseDown && e.Direction == mouse.DirNone {
				eng.PointerMove(docPt)
				w.Send(paint.Event{})
			} else if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease {
				mouseDown = false
				eng.PointerUp(docPt)
				w.Send(paint.Event{})
			}
		case key.Event:
			if e.Direction == key.DirRelease {
				delete(keysDown, e.Code)
				continue
			}
			repeat := e.Direction == key.DirNone || keysDown[e.Code]
			if e.Direction == key.DirPress {
				keysDown[e.Code] = true
			}
			ev, ok := translateKey(e, repeat)
			if ok && eng.Key(ev) {
				w.Send(paint.Event{})
				continue
			}
			if e.Modifiers&key.ModControl != 0 {
				switch e.Rune {
				case 's', 'S':
					trigger("save")
				case 'e', 'E':
					trigger("export")
				case 'b', 'B':
					trigger("copyimage")
				}
				continue
			}
			if tool, ok := toolKeys[lowerRune(e.Rune)]; ok {
				eng.SetActiveTool(tool)
				w.Send(paint.Event{})
				continue
			}
			switch e.Rune {
			case 'q', 'Q':
				stopPaint()
				return
			case '+', '=':
				setZoom(geom.ZoomIn(zoom))
			case '-':
				setZoom(geom.ZoomOut(zoom))
			case '0':
				setZoom(1)
				pan = image.Point{}
				w.Send(paint.Event{})
			case -1:
				switch e.Code {
				case key.CodePageDown:
					setPage(page + 1)
				case key.CodePageUp:
					setPage(page - 1)
				case key.CodeLeftArrow:
					pan.X += 24
					w.Send(paint.Event{})
				case key.CodeRightArrow:
					pan.X -= 24
					w.Send(paint.Event{})
				case key.CodeUpArrow:
					pan.Y += 24
					w.Send(paint.Event{})
				case key.CodeDownArrow:
					pan.Y -= 24
					w.Send(paint.Event{})
				}
			}
		}
	}
}

func lowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
