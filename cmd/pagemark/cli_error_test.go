package main

import (
	"errors"
	"flag"
	"strings"
	"testing"
)

func testRoot() *root {
	return &root{
		fs:      flag.NewFlagSet("pagemark", flag.ContinueOnError),
		program: "pagemark",
	}
}

func TestParseAnnotateRequiresFile(t *testing.T) {
	_, err := parseAnnotateCmd(nil, testRoot())
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestParseExportRejectsBadScale(t *testing.T) {
	_, err := parseExportCmd([]string{"-scale", "-1", "doc.pdf"}, testRoot())
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "scale must be positive"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestDefaultOutput(t *testing.T) {
	if got, want := defaultOutput("docs/report.pdf"), "docs/report.annotated.png"; got != want {
		t.Fatalf("defaultOutput = %q, want %q", got, want)
	}
	if got, want := defaultOutput("scan.png"), "scan.annotated.png"; got != want {
		t.Fatalf("defaultOutput = %q, want %q", got, want)
	}
}

func TestViewRunMissingFile(t *testing.T) {
	cmd, err := parseViewCmd([]string{"no-such-file.pdf"}, testRoot())
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else if want := "failed to open"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestUsageErrorRendersRootHelp(t *testing.T) {
	uerr := &UsageError{of: testRoot()}
	help := uerr.Error()
	for _, want := range []string{"usage: pagemark", "annotate", "export", "version"} {
		if !strings.Contains(help, want) {
			t.Fatalf("help output missing %q:\n%s", want, help)
		}
	}
}
