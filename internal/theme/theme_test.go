package theme

import (
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	in := `Name: Test
Background: #101010
ButtonActive: #22446688
`
	th, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "Test" {
		t.Errorf("Name = %q", th.Name)
	}
	if th.Background.R != 0x10 {
		t.Errorf("Background = %+v", th.Background)
	}
	if th.ButtonActive.A != 0x88 {
		t.Errorf("ButtonActive alpha = %d, want 0x88", th.ButtonActive.A)
	}
	// untouched keys keep their defaults
	if th.Foreground != Default().Foreground {
		t.Errorf("Foreground = %+v, want default", th.Foreground)
	}
}

func TestParseColorRejectsBadInput(t *testing.T) {
	for _, s := range []string{"123456", "#12345", "#GGGGGG"} {
		if _, err := ParseColor(s); err == nil {
			t.Errorf("ParseColor(%q) succeeded", s)
		}
	}
}

func TestLoadEmbeddedThemes(t *testing.T) {
	l := NewLoader()
	for _, name := range []string{"light", "dark"} {
		th, err := l.Load(name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if !strings.EqualFold(th.Name, name) {
			t.Errorf("loaded theme name = %q, want %q", th.Name, name)
		}
	}
}

func TestLoadEmptyNameFallsBack(t *testing.T) {
	th, err := NewLoader().Load("")
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "Default" {
		t.Errorf("fallback theme = %q", th.Name)
	}
}
