package storage

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestLocalUploaderRoundTrip(t *testing.T) {
	u, err := NewLocalUploader(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	name := CVObjectName("user-1", ".PDF")
	if !strings.HasPrefix(name, "cvs/user-1/") || !strings.HasSuffix(name, ".pdf") {
		t.Fatalf("object name: %q", name)
	}

	stored, err := u.Upload(context.Background(), name, "application/pdf", strings.NewReader("%PDF"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if stored != name {
		t.Fatalf("stored path: want=%q got=%q", name, stored)
	}

	rc, err := u.Open(stored)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	if string(b) != "%PDF" {
		t.Fatalf("content: %q", b)
	}
}

func TestLocalUploaderRejectsEscapes(t *testing.T) {
	u, err := NewLocalUploader(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, name := range []string{"", "../etc/passwd", "cvs/../../x"} {
		if _, err := u.Upload(context.Background(), name, "", strings.NewReader("x")); err == nil {
			t.Fatalf("%q: expected error", name)
		}
	}
}
