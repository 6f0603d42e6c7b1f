package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/example/pagemark/assets"
	"github.com/example/pagemark/internal/document"
	"github.com/example/pagemark/internal/export"
	"github.com/example/pagemark/internal/render"
	"github.com/example/pagemark/internal/wrap"
)

// exportCmd flattens pages and their sidecar annotations to PNG files
// without opening a window.
type exportCmd struct {
	file   string
	output string
	page   int
	scale  float64
	*root
	fs *flag.FlagSet
}

func (c *exportCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	output := fs.String("output", "", "output path; for multi-page documents a -pN suffix is added (default <file>.annotated.png)")
	page := fs.Int("page", 0, "1-based page to export, 0 exports every page")
	scale := fs.Float64("scale", 1, "raster scale factor")
	c := &exportCmd{root: r.subcommand("export"), fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: c}
	}
	c.file = fs.Arg(0)
	c.output = *output
	c.page = *page
	c.scale = *scale
	if c.output == "" {
		c.output = defaultOutput(c.file)
	}
	if c.scale <= 0 {
		return nil, fmt.Errorf("scale must be positive, got %g", c.scale)
	}
	return c, nil
}

func (c *exportCmd) Run() error {
	src, err := document.Open(c.file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.file, err)
	}
	defer src.Close()

	pages, err := export.LoadSidecar(c.file + export.SidecarSuffix)
	if err != nil {
		return fmt.Errorf("failed to read annotations: %w", err)
	}

	logos, err := assets.Logos()
	if err != nil {
		return fmt.Errorf("load logos: %w", err)
	}
	rd := render.New(render.WithFonts(wrap.Default()), render.WithLogos(logos))

	count := src.PageCount()
	first, last := 0, count-1
	if c.page > 0 {
		if c.page > count {
			return fmt.Errorf("page %d out of range, document has %d page(s)", c.page, count)
		}
		first, last = c.page-1, c.page-1
	}

	for p := first; p <= last; p++ {
		img, err := export.Flatten(context.Background(), src, pages[p], p, c.scale, rd)
		if err != nil {
			return fmt.Errorf("flatten page %d: %w", p+1, err)
		}
		out := c.output
		if first != last {
			ext := filepath.Ext(out)
			out = strings.TrimSuffix(out, ext) + fmt.Sprintf("-p%d", p+1) + ext
		}
		if err := export.SavePNG(out, img); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Printf("wrote %s\n", out)
		if c.notifier != nil {
			c.notifier.Export(out)
		}
	}
	return nil
}
