package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/example/pagemark/internal/document"
	"github.com/example/pagemark/internal/export"
	"github.com/example/pagemark/internal/shape"
)

// viewCmd prints a document summary: page geometry and the annotations in
// its sidecar, without opening a window.
type viewCmd struct {
	file string
	*root
	fs *flag.FlagSet
}

func (v *viewCmd) FlagSet() *flag.FlagSet {
	return v.fs
}

func parseViewCmd(args []string, r *root) (*viewCmd, error) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	v := &viewCmd{root: r.subcommand("view"), fs: fs}
	fs.Usage = usageFunc(v)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: v}
	}
	v.file = fs.Arg(0)
	return v, nil
}

var summaryKinds = []shape.Kind{
	shape.KindFreehand, shape.KindRect, shape.KindCircle, shape.KindArrow,
	shape.KindText, shape.KindCallout, shape.KindCloud, shape.KindStamp,
}

func (v *viewCmd) Run() error {
	src, err := document.Open(v.file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", v.file, err)
	}
	defer src.Close()

	count := src.PageCount()
	fmt.Fprintf(os.Stdout, "%s: %d page(s)\n", v.file, count)
	for p := 0; p < count; p++ {
		sz, err := src.PageSize(p)
		if err != nil {
			return fmt.Errorf("page %d size: %w", p+1, err)
		}
		fmt.Fprintf(os.Stdout, "  page %d: %.0f x %.0f\n", p+1, sz.W, sz.H)
	}

	pages, err := export.LoadSidecar(v.file + export.SidecarSuffix)
	if err != nil {
		return fmt.Errorf("failed to read annotations: %w", err)
	}
	if len(pages) == 0 {
		fmt.Fprintln(os.Stdout, "no annotations")
		return nil
	}
	nums := make([]int, 0, len(pages))
	for p := range pages {
		nums = append(nums, p)
	}
	sort.Ints(nums)
	for _, p := range nums {
		m := pages[p]
		if m == nil {
			continue
		}
		total := 0
		line := ""
		for _, k := range summaryKinds {
			if n := m.Count(k); n > 0 {
				line += fmt.Sprintf(" %d %s", n, k)
				total += n
			}
		}
		if total == 0 {
			continue
		}
		fmt.Fprintf(os.Stdout, "annotations on page %d:%s\n", p+1, line)
	}
	return nil
}
