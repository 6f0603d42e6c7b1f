package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/example/pagemark/internal/document"
	"github.com/example/pagemark/internal/viewer"
)

// annotateCmd opens a document in the annotation window.
type annotateCmd struct {
	file   string
	output string
	*root
	fs *flag.FlagSet
}

func (a *annotateCmd) FlagSet() *flag.FlagSet {
	return a.fs
}

func parseAnnotateCmd(args []string, r *root) (*annotateCmd, error) {
	fs := flag.NewFlagSet("annotate", flag.ExitOnError)
	output := fs.String("output", "", "flattened PNG output path (default <file>.annotated.png)")
	a := &annotateCmd{root: r.subcommand("annotate"), fs: fs}
	fs.Usage = usageFunc(a)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: a}
	}
	a.file = fs.Arg(0)
	a.output = *output
	if a.output == "" {
		a.output = defaultOutput(a.file)
	}
	return a, nil
}

func (a *annotateCmd) Run() error {
	src, err := document.Open(a.file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", a.file, err)
	}
	defer src.Close()

	app := viewer.New(
		viewer.WithSource(src),
		viewer.WithPath(a.file),
		viewer.WithOutput(a.output),
		viewer.WithConfig(a.config),
		viewer.WithTheme(a.activeTheme),
		viewer.WithNotifier(a.notifier),
	)
	app.Run()
	return nil
}

// defaultOutput derives the flattened PNG path from the document path.
func defaultOutput(file string) string {
	ext := filepath.Ext(file)
	return strings.TrimSuffix(file, ext) + ".annotated.png"
}
