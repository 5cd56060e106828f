package testkit

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMustPanic_ReturnsValue(t *testing.T) {
	t.Parallel()

	got := MustPanic(t, func() { panic("boom") })
	if got != "boom" {
		t.Fatalf("recovered %v", got)
	}
}

func TestMustContain(t *testing.T) {
	t.Parallel()

	MustContain(t, "<p class=\"error\">Failed to load the selected model.</p>", "Failed to load")
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := WriteFile(t, "data/crime.csv", "Date,Primary Type\n")
	if filepath.Base(path) != "crime.csv" {
		t.Fatalf("path = %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil || string(b) != "Date,Primary Type\n" {
		t.Fatalf("read back %q, %v", b, err)
	}
}
