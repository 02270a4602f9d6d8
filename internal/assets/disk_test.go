package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "images")
	s, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("failed to create disk store: %v", err)
	}
	return s
}

func TestSave_StoresFileUnderRef(t *testing.T) {
	s := newTestStore(t)

	ref, err := s.Save(strings.NewReader("fake-png-bytes"), "duck.png")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(ref, "images/") {
		t.Errorf("expected ref under images/, got %s", ref)
	}
	if !strings.HasSuffix(ref, "-duck.png") {
		t.Errorf("expected uuid-prefixed original name, got %s", ref)
	}
	if !s.Exists(ref) {
		t.Error("expected stored asset to exist")
	}

	data, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(ref)))
	if err != nil {
		t.Fatalf("failed to read stored file: %v", err)
	}
	if string(data) != "fake-png-bytes" {
		t.Errorf("stored content mismatch: %q", data)
	}
}

func TestSave_UniqueRefsForSameName(t *testing.T) {
	s := newTestStore(t)

	ref1, err := s.Save(strings.NewReader("a"), "duck.png")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	ref2, err := s.Save(strings.NewReader("b"), "duck.png")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ref1 == ref2 {
		t.Errorf("expected distinct refs, both were %s", ref1)
	}
}

func TestSave_RejectsUnsupportedType(t *testing.T) {
	s := newTestStore(t)

	tests := []string{"script.sh", "doc.pdf", "noext", "virus.png.exe"}
	for _, name := range tests {
		if _, err := s.Save(strings.NewReader("x"), name); err != ErrUnsupportedType {
			t.Errorf("%s: expected ErrUnsupportedType, got %v", name, err)
		}
	}
}

func TestRemove_DeletesAsset(t *testing.T) {
	s := newTestStore(t)

	ref, err := s.Save(strings.NewReader("bytes"), "pic.jpg")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := s.Remove(ref); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if s.Exists(ref) {
		t.Error("expected asset to be gone after Remove")
	}
}

func TestRemove_AbsentAssetErrors(t *testing.T) {
	s := newTestStore(t)

	if err := s.Remove("images/never-existed.png"); err == nil {
		t.Fatal("expected error for absent asset, got nil")
	}
}

func TestResolve_RejectsTraversal(t *testing.T) {
	s := newTestStore(t)

	if s.Exists("../../etc/passwd") {
		t.Error("traversal ref must not resolve")
	}
	if err := s.Remove(".."); err != ErrBadRef {
		t.Errorf("expected ErrBadRef, got %v", err)
	}
}
