package imgio

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestIsSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"photo.jpg", true},
		{"photo.JPG", true},
		{"photo.jpeg", true},
		{"scan.TIFF", true},
		{"scan.tif", true},
		{"anim.gif", true},
		{"pic.webp", true},
		{"pic.bmp", true},
		{"pic.png", true},
		{"doc.txt", false},
		{"archive.zip", false},
		{"noextension", false},
	}
	for _, tt := range tests {
		if got := IsSupported(tt.path); got != tt.want {
			t.Errorf("IsSupported(%q): got %t, want %t", tt.path, got, tt.want)
		}
	}
}

func TestSupportedExtensionsMatchTable(t *testing.T) {
	for _, ext := range SupportedExtensions() {
		if !IsSupported("file" + ext) {
			t.Errorf("listed extension %q not accepted", ext)
		}
	}
	if len(SupportedExtensions()) != len(supportedExtensions) {
		t.Errorf("listed %d extensions, table has %d", len(SupportedExtensions()), len(supportedExtensions))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jpg")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for corrupt file")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			src.Set(x, y, color.NRGBA{uint8(x * 70), uint8(y * 100), 200, 255})
		}
	}

	path := filepath.Join(t.TempDir(), "out.png")
	if err := SavePNG(src, path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Bounds().Dx() != 3 || got.Bounds().Dy() != 2 {
		t.Fatalf("dimensions: got %dx%d, want 3x2", got.Bounds().Dx(), got.Bounds().Dy())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			wr, wg, wb, _ := src.At(x, y).RGBA()
			gr, gg, gb, _ := got.At(x, y).RGBA()
			if wr != gr || wg != gg || wb != gb {
				t.Errorf("pixel (%d,%d) changed across PNG round trip", x, y)
			}
		}
	}
}

func TestGaussianZeroRadiusIsIdentity(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if out := Gaussian(src, 0); out != image.Image(src) {
		t.Error("zero radius should return the input unchanged")
	}
}

func TestGaussianPreservesDimensions(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 6))
	out := Gaussian(src, 2.5)
	if out.Bounds().Dx() != 10 || out.Bounds().Dy() != 6 {
		t.Errorf("dimensions: got %dx%d, want 10x6", out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestGaussianUniformImageStaysUniform(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.Set(x, y, color.NRGBA{90, 90, 90, 255})
		}
	}
	out := Gaussian(src, 3)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			r, g, b, _ := out.At(x, y).RGBA()
			if r>>8 != 90 || g>>8 != 90 || b>>8 != 90 {
				t.Fatalf("pixel (%d,%d): uniform image changed to (%d,%d,%d)", x, y, r>>8, g>>8, b>>8)
			}
		}
	}
}
