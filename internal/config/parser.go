package config

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/example/pagemark/internal/shape"
	"github.com/example/pagemark/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentTheme = nil

			if strings.HasPrefix(currentSection, "theme.") {
				themeName := strings.TrimPrefix(currentSection, "theme.")
				// start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = themeName
				cfg.Themes[themeName] = currentTheme
			}
			continue
		}

		// Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			err = setThemeField(currentTheme, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case currentSection == "tools":
			err = setToolsField(&cfg.Tools, key, value)
		case currentSection == "stamp":
			err = setStampField(&cfg.Stamp, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func setToolsField(p *shape.Properties, key, value string) error {
	switch strings.ToLower(key) {
	case "color":
		col, err := theme.ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		p.Color = col
	case "stroke_width":
		return setFloat(&p.StrokeWidth, key, value)
	case "opacity":
		if err := setFloat(&p.Opacity, key, value); err != nil {
			return err
		}
		if p.Opacity < 0 || p.Opacity > 1 {
			return fmt.Errorf("opacity %g out of range", p.Opacity)
		}
	case "font_size":
		return setFloat(&p.FontSize, key, value)
	case "font_weight":
		p.FontWeight = shape.FontWeight(value)
	case "font_style":
		p.FontStyle = shape.FontStyle(value)
	case "text_decoration":
		p.Decoration = shape.Decoration(value)
	case "text_align":
		p.Align = shape.Align(value)
	case "text_border":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for key %s: %w", key, err)
		}
		p.TextBorder = b
	case "text_border_width":
		return setFloat(&p.TextBorderWidth, key, value)
	case "scallop_size":
		return setFloat(&p.ScallopSize, key, value)
	case "cloud_line_width":
		return setFloat(&p.CloudLineWidth, key, value)
	}
	return nil
}

func setStampField(s *shape.StampTemplate, key, value string) error {
	switch strings.ToLower(key) {
	case "title":
		s.Title = value
	case "status":
		s.Status = shape.StampStatus(value)
	case "color":
		col, err := theme.ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		s.Color = col
	case "opacity":
		return setFloat(&s.Opacity, key, value)
	case "stroke_width":
		return setFloat(&s.StrokeWidth, key, value)
	case "font_size":
		return setFloat(&s.FontSize, key, value)
	case "logo":
		s.Logo = value
	}
	return nil
}

func setFloat(dst *float64, key, value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	*dst = f
	return nil
}

func setThemeField(t *theme.Theme, key, value string) error {
	if strings.EqualFold(key, "Name") {
		t.Name = value
		return nil
	}

	val := reflect.ValueOf(t).Elem()

	// case-insensitive field lookup
	typ := val.Type()
	var fieldName string
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if strings.EqualFold(f.Name, key) {
			fieldName = f.Name
			break
		}
	}

	if fieldName == "" {
		return nil // ignore unknown fields
	}

	field := val.FieldByName(fieldName)
	if !field.IsValid() {
		return nil
	}

	if field.Type() == reflect.TypeOf(color.RGBA{}) {
		col, err := theme.ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		field.Set(reflect.ValueOf(col))
	}
	return nil
}
