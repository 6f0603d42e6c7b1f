package viewer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/pagemark/internal/engine"
	"github.com/example/pagemark/internal/geom"
	"github.com/example/pagemark/internal/render"
	"github.com/example/pagemark/internal/shape"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

type paintState struct {
	width, height int
	model         *shape.Model
	view          render.View
	pageImg       image.Image
	pageSize      geom.Size
	page          int
	pageCount     int
	docName       string
	tool          engine.Tool
	selKind       shape.Kind
	selIndex      int
	selOK         bool
	draft         *engine.Draft
	editKind      shape.Kind
	editIndex     int
	editing       bool
	zoom          float64
	message       string
	messageUntil  time.Time
	trigger       func(string)
}

func strokeRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.Set(x, r.Min.Y, col)
		dst.Set(x, r.Max.Y-1, col)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.Set(r.Min.X, y, col)
		dst.Set(r.Max.X-1, y, col)
	}
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, rd *render.Renderer, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()

	draw.Draw(dst, dst.Bounds(), &image.Uniform{chrome.Background}, image.Point{}, draw.Src)
	if ctx.Err() != nil {
		return
	}

	// Page card, with shadow, on the backdrop.
	card := st.view.Rect(geom.R(0, 0, st.pageSize.W, st.pageSize.H))
	draw.Draw(dst, card.Add(image.Pt(3, 3)), &image.Uniform{chrome.PageShadow}, image.Point{}, draw.Over)
	draw.Draw(dst, card, image.White, image.Point{}, draw.Src)
	if st.pageImg != nil {
		rd.DrawPage(dst, st.pageImg, st.view, st.pageSize)
	}
	strokeRect(dst, card, chrome.PageBorder)
	if ctx.Err() != nil {
		return
	}

	rd.Draw(dst, st.model, st.view)
	if ctx.Err() != nil {
		return
	}
	if st.draft != nil {
		rd.DrawDraft(dst, st.draft, st.view)
	}
	if st.selOK {
		rd.DrawSelection(dst, st.model, st.selKind, st.selIndex, st.view)
	}
	if st.editing {
		if r, ok := st.model.Bounds(st.editKind, st.editIndex); ok {
			render.DrawDashedRect(dst, st.view.Rect(r).Inset(-2), 4, 1, color.White, color.Black)
		}
	}
	if ctx.Err() != nil {
		return
	}

	drawTopBar(dst, st)
	drawToolbar(dst, st.tool)
	drawStatusBar(dst, st)
	if ctx.Err() != nil {
		return
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		d := &font.Drawer{Dst: dst, Src: &image.Uniform{chrome.Foreground}, Face: basicfont.Face7x13}
		wmsg := d.MeasureString(st.message).Ceil()
		px := (st.width - wmsg) / 2
		py := st.height - statusHeight - 24
		rect := image.Rect(px-8, py-18, px+wmsg+8, py+8)
		draw.Draw(dst, rect, &image.Uniform{chrome.StatusBackground}, image.Point{}, draw.Over)
		strokeRect(dst, rect, chrome.PageBorder)
		d.Dot = fixed.P(px, py)
		d.DrawString(st.message)
	}
	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

func drawTopBar(dst *image.RGBA, st paintState) {
	draw.Draw(dst, image.Rect(0, 0, st.width, topHeight),
		&image.Uniform{chrome.ToolbarBackground}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: &image.Uniform{chrome.ButtonText}, Face: basicfont.Face7x13,
		Dot: fixed.P(4, 16)}
	d.DrawString("Pagemark")
	if st.docName != "" {
		d.Dot = fixed.P(toolbarWidth+8, 16)
		d.DrawString(st.docName)
	}
	pg := fmt.Sprintf("page %d/%d  %.0f%%", st.page+1, st.pageCount, st.zoom*100)
	wpg := d.MeasureString(pg).Ceil()
	d.Dot = fixed.P(st.width-wpg-8, 16)
	d.DrawString(pg)
}

func drawToolbar(dst *image.RGBA, tool engine.Tool) {
	draw.Draw(dst, image.Rect(0, topHeight, toolbarWidth, dst.Bounds().Dy()-statusHeight),
		&image.Uniform{chrome.ToolbarBackground}, image.Point{}, draw.Src)
	y := topHeight
	for i, cb := range toolButtons {
		cb.SetRect(image.Rect(0, y, toolbarWidth, y+24))
		tb := cb.Button.(*ToolButton)
		state := StateDefault
		if tb.tool == tool {
			state = StatePressed
		} else if i == hoverTool {
			state = StateHover
		}
		cb.Draw(dst, state)
		if tb.tool == tool {
			strokeRect(dst, cb.Rect(), chrome.ButtonActive)
		}
		y += 24
	}
}

func drawStatusBar(dst *image.RGBA, st paintState) {
	rect := image.Rect(0, st.height-statusHeight, st.width, st.height)
	draw.Draw(dst, rect, &image.Uniform{chrome.StatusBackground}, image.Point{}, draw.Src)
	shortcutRects = shortcutRects[:0]
	shortcuts := []Shortcut{
		{label: "PgUp/PgDn:page", action: func() { st.trigger("nextpage") }},
		{label: "+/-:zoom", action: func() { st.trigger("zoomin") }},
		{label: "0:fit", action: func() { st.trigger("zoomreset") }},
		{label: "^Z:undo", action: func() { st.trigger("undo") }},
		{label: "^S:save", action: func() { st.trigger("save") }},
		{label: "^E:export", action: func() { st.trigger("export") }},
		{label: "^B:copy image", action: func() { st.trigger("copyimage") }},
		{label: "Q:quit", action: func() { st.trigger("quit") }},
	}
	if st.editing {
		shortcuts = []Shortcut{
			{label: "^Enter:done", action: func() { st.trigger("editdone") }},
			{label: "Esc:cancel", action: func() { st.trigger("editcancel") }},
		}
	}
	x := toolbarWidth + 4
	y := st.height - statusHeight + 16
	meas := &font.Drawer{Face: basicfont.Face7x13}
	for i := range shortcuts {
		sc := &shortcuts[i]
		w := meas.MeasureString(sc.label).Ceil()
		sc.SetRect(image.Rect(x-2, y-14, x+w+2, y+4))
		state := StateDefault
		if i == hoverShortcut {
			state = StateHover
		}
		sc.Draw(dst, state)
		shortcutRects = append(shortcutRects, *sc)
		x = sc.rect.Max.X + 8
	}
}
