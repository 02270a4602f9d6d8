package assets

import (
	"strings"
	"testing"
)

func TestRelease_DeletesEventually(t *testing.T) {
	s := newTestStore(t)
	l := NewLifecycle(s)

	ref, err := s.Save(strings.NewReader("bytes"), "old.png")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	l.Release(ref)
	l.Wait()

	if s.Exists(ref) {
		t.Error("expected asset to be released")
	}
}

func TestRelease_AbsentAssetIsNoOp(t *testing.T) {
	s := newTestStore(t)
	l := NewLifecycle(s)

	// Must not panic or block; absence is only logged.
	l.Release("images/already-gone.png")
	l.Wait()
}

func TestRelease_EmptyRefIgnored(t *testing.T) {
	l := NewLifecycle(newTestStore(t))
	l.Release("")
	l.Wait()
}
