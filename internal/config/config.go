package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/pagemark/internal/shape"
	"github.com/example/pagemark/internal/theme"
)

// Notify holds desktop notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Notify  Notify
	Tools   shape.Properties
	Stamp   shape.StampTemplate
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:  "", // empty falls back to Env/Default
		Tools:  shape.DefaultProperties(),
		Stamp:  shape.DefaultStampTemplate(),
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	sb.WriteString("[tools]\n")
	fmt.Fprintf(&sb, "color = %s\n", theme.FormatColor(c.Tools.Color))
	fmt.Fprintf(&sb, "stroke_width = %g\n", c.Tools.StrokeWidth)
	fmt.Fprintf(&sb, "opacity = %g\n", c.Tools.Opacity)
	fmt.Fprintf(&sb, "font_size = %g\n", c.Tools.FontSize)
	fmt.Fprintf(&sb, "font_weight = %s\n", c.Tools.FontWeight)
	fmt.Fprintf(&sb, "font_style = %s\n", c.Tools.FontStyle)
	fmt.Fprintf(&sb, "text_decoration = %s\n", c.Tools.Decoration)
	fmt.Fprintf(&sb, "text_align = %s\n", c.Tools.Align)
	fmt.Fprintf(&sb, "text_border = %v\n", c.Tools.TextBorder)
	fmt.Fprintf(&sb, "text_border_width = %g\n", c.Tools.TextBorderWidth)
	fmt.Fprintf(&sb, "scallop_size = %g\n", c.Tools.ScallopSize)
	fmt.Fprintf(&sb, "cloud_line_width = %g\n", c.Tools.CloudLineWidth)
	sb.WriteString("\n")

	sb.WriteString("[stamp]\n")
	fmt.Fprintf(&sb, "title = %s\n", c.Stamp.Title)
	fmt.Fprintf(&sb, "status = %s\n", c.Stamp.Status)
	fmt.Fprintf(&sb, "color = %s\n", theme.FormatColor(c.Stamp.Color))
	fmt.Fprintf(&sb, "opacity = %g\n", c.Stamp.Opacity)
	fmt.Fprintf(&sb, "stroke_width = %g\n", c.Stamp.StrokeWidth)
	fmt.Fprintf(&sb, "font_size = %g\n", c.Stamp.FontSize)
	if c.Stamp.Logo != "" {
		fmt.Fprintf(&sb, "logo = %s\n", c.Stamp.Logo)
	}
	sb.WriteString("\n")

	// Themes sections, sorted for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		fmt.Fprintf(&sb, "Background: %s\n", theme.FormatColor(t.Background))
		fmt.Fprintf(&sb, "Foreground: %s\n", theme.FormatColor(t.Foreground))
		fmt.Fprintf(&sb, "ToolbarBackground: %s\n", theme.FormatColor(t.ToolbarBackground))
		fmt.Fprintf(&sb, "ButtonBackground: %s\n", theme.FormatColor(t.ButtonBackground))
		fmt.Fprintf(&sb, "ButtonBackgroundHover: %s\n", theme.FormatColor(t.ButtonBackgroundHover))
		fmt.Fprintf(&sb, "ButtonBackgroundPress: %s\n", theme.FormatColor(t.ButtonBackgroundPress))
		fmt.Fprintf(&sb, "ButtonText: %s\n", theme.FormatColor(t.ButtonText))
		fmt.Fprintf(&sb, "ButtonBorder: %s\n", theme.FormatColor(t.ButtonBorder))
		fmt.Fprintf(&sb, "ButtonActive: %s\n", theme.FormatColor(t.ButtonActive))
		fmt.Fprintf(&sb, "PageBorder: %s\n", theme.FormatColor(t.PageBorder))
		fmt.Fprintf(&sb, "PageShadow: %s\n", theme.FormatColor(t.PageShadow))
		fmt.Fprintf(&sb, "StatusBackground: %s\n", theme.FormatColor(t.StatusBackground))
		fmt.Fprintf(&sb, "StatusText: %s\n", theme.FormatColor(t.StatusText))
		sb.WriteString("\n")
	}

	return sb.String()
}
