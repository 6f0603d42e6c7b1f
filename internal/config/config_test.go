package config

import (
	"strings"
	"testing"

	"github.com/example/pagemark/internal/shape"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/exports

[notify]
save = false
copy = true

[tools]
color = #0000FF
stroke_width = 4
opacity = 0.8
font_size = 18
text_align = center
scallop_size = 16

[stamp]
title = FOR REVIEW
status = CUSTOM
color = #AA0000
logo = check

[theme.my_custom_theme]
Background = #111111
Foreground = #FFFFFF
`
	r := strings.NewReader(input)
	cfg, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}

	if cfg.SaveDir != "/tmp/exports" {
		t.Errorf("Expected save_dir '/tmp/exports', got '%s'", cfg.SaveDir)
	}

	if cfg.Notify.Save {
		t.Error("Expected notify.save to be false")
	}
	if !cfg.Notify.Copy {
		t.Error("Expected notify.copy to be true")
	}

	if cfg.Tools.Color.B != 255 || cfg.Tools.Color.R != 0 {
		t.Errorf("Unexpected tools color: %+v", cfg.Tools.Color)
	}
	if cfg.Tools.StrokeWidth != 4 {
		t.Errorf("Expected stroke_width 4, got %g", cfg.Tools.StrokeWidth)
	}
	if cfg.Tools.Opacity != 0.8 {
		t.Errorf("Expected opacity 0.8, got %g", cfg.Tools.Opacity)
	}
	if cfg.Tools.Align != shape.AlignCenter {
		t.Errorf("Expected text_align center, got %q", cfg.Tools.Align)
	}
	if cfg.Tools.ScallopSize != 16 {
		t.Errorf("Expected scallop_size 16, got %g", cfg.Tools.ScallopSize)
	}

	if cfg.Stamp.Title != "FOR REVIEW" {
		t.Errorf("Expected stamp title 'FOR REVIEW', got %q", cfg.Stamp.Title)
	}
	if cfg.Stamp.Status != shape.StatusCustom {
		t.Errorf("Expected stamp status CUSTOM, got %q", cfg.Stamp.Status)
	}
	if cfg.Stamp.Logo != "check" {
		t.Errorf("Expected stamp logo 'check', got %q", cfg.Stamp.Logo)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}

	if th.Background.R != 0x11 || th.Background.G != 0x11 || th.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", th.Background)
	}
}

func TestParseRejectsBadOpacity(t *testing.T) {
	input := "[tools]\nopacity = 1.5\n"
	if _, err := Parse(strings.NewReader(input)); err == nil {
		t.Fatal("expected out-of-range opacity to fail")
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/marks

[notify]
save = true
copy = false

[tools]
color = #00AA00
stroke_width = 3
text_decoration = underline

[stamp]
title = REVIEWED
status = APPROVED

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	// 1. Parse initial input
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	// 2. Generate string representation
	generated := cfg.String()

	// 3. Parse generated string
	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	// 4. Compare relevant fields
	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if cfg.Tools != cfg2.Tools {
		t.Errorf("Tools mismatch: %+v vs %+v", cfg.Tools, cfg2.Tools)
	}
	if cfg.Stamp != cfg2.Stamp {
		t.Errorf("Stamp mismatch: %+v vs %+v", cfg.Stamp, cfg2.Stamp)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if t1.Background != t2.Background {
		t.Errorf("Theme background mismatch: %v vs %v", t1.Background, t2.Background)
	}
}
