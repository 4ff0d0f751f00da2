package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/imgsphere/engine/widget"
)

const sample = `{
  "name": "gallery",
  "container": 600,
  "autoRotate": true,
  "perspective": 0,
  "initialRotation": {"x": 10, "y": 20},
  "images": [
    {"id": "a", "src": "a.png", "alt": "first", "title": "First", "description": "The first one"},
    {"src": "b.jpg", "alt": "second"}
  ]
}`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Container != 600 || !m.AutoRotate || m.Name != "gallery" {
		t.Fatalf("settings not decoded: %+v", m)
	}
	if m.Perspective == nil || *m.Perspective != 0 {
		t.Fatal("explicit zero perspective was lost")
	}
	if len(m.Images) != 2 {
		t.Fatalf("images = %d, want 2", len(m.Images))
	}
	if m.Images[0].Title != "First" || m.Images[0].Description != "The first one" {
		t.Fatalf("image 0 = %+v", m.Images[0])
	}
	if m.Images[1].ID != "image-1" {
		t.Fatalf("missing id filled as %q", m.Images[1].ID)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestParseRejectsBadJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"images": [`)); err == nil {
		t.Fatal("truncated JSON parsed")
	}
}

func TestValidate(t *testing.T) {
	m, err := Parse([]byte(`{"images": []}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := m.Validate(); !errors.Is(err, ErrNoImages) {
		t.Fatalf("Validate = %v, want ErrNoImages", err)
	}

	m, _ = Parse([]byte(`{"images": [{"id": "x"}]}`))
	if err := m.Validate(); err == nil {
		t.Fatal("image without src validated")
	}

	m, _ = Parse([]byte(`{"momentumDecay": 1.5, "images": [{"src": "x.png"}]}`))
	if err := m.Validate(); err == nil {
		t.Fatal("decay above 1 validated")
	}
}

func TestLoadResolvesDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gallery.json")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Dir() != dir {
		t.Fatalf("Dir = %q, want %q", m.Dir(), dir)
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("missing file loaded")
	}
}

func TestOptionsConfigureWidget(t *testing.T) {
	m, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n := len(m.Options()); n != 5 {
		t.Fatalf("options = %d, want 5 (name, container, autoRotate, perspective, rotation)", n)
	}

	w := widget.NewImageSphere(m.Images, m.Options()...)
	if w.Radius() != 300 {
		t.Fatalf("radius = %v, want half the container", w.Radius())
	}
	if r := w.Rotation(); r.X != 10 || r.Y != 20 {
		t.Fatalf("initial rotation = %+v", r)
	}

	empty := &Manifest{}
	if len(empty.Options()) != 0 {
		t.Fatal("empty manifest produced options")
	}
}
