package convert

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeGradientPNG(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, gradient(16, 16)); err != nil {
		t.Fatal(err)
	}
}

func TestPackDir(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()

	writeGradientPNG(t, filepath.Join(src, "earth.png"))
	writeGradientPNG(t, filepath.Join(src, "moons", "luna.PNG"))
	os.WriteFile(filepath.Join(src, "notes.txt"), []byte("skip me"), 0o644)

	n, err := PackDir(src, out)
	if err != nil {
		t.Fatalf("PackDir: %v", err)
	}
	if n != 2 {
		t.Errorf("packed %d files, want 2", n)
	}

	for _, rel := range []string{"earth.ptex", filepath.Join("moons", "luna.ptex")} {
		img, err := LoadImage(filepath.Join(out, rel))
		if err != nil {
			t.Errorf("LoadImage(%s): %v", rel, err)
			continue
		}
		if !bytes.Equal(img.Pix, gradient(16, 16).Pix) {
			t.Errorf("%s pixels differ", rel)
		}
	}
}

func TestPackDirReportsBadFiles(t *testing.T) {
	src := t.TempDir()
	writeGradientPNG(t, filepath.Join(src, "good.png"))
	os.WriteFile(filepath.Join(src, "bad.jpg"), []byte("not a jpeg"), 0o644)

	n, err := PackDir(src, t.TempDir())
	if err == nil {
		t.Error("expected an error for the corrupt file")
	}
	if n != 1 {
		t.Errorf("packed %d files, want 1", n)
	}
}
