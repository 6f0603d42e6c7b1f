package assets

import "testing"

func TestLogoNames(t *testing.T) {
	names := LogoNames()
	want := []string{"approved", "caution", "info", "rejected"}
	if len(names) != len(want) {
		t.Fatalf("LogoNames() = %v, want %v", names, want)
	}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("LogoNames() = %v, want %v", names, want)
		}
	}
}

func TestLogoImage(t *testing.T) {
	img, err := LogoImage("approved")
	if err != nil {
		t.Fatalf("LogoImage: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 32 || b.Dy() != 32 {
		t.Fatalf("logo bounds = %v, want 32x32", b)
	}
	if _, err := LogoImage("missing"); err == nil {
		t.Fatal("expected error for unknown logo")
	}
}
