package pkg

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "cargo-instruments" {
		t.Errorf("Expected Name to be %q, got %q", "cargo-instruments", Name)
	}

	// Cargo resolves "cargo instruments" to the executable "cargo-instruments".
	if want := "cargo-" + Subcommand; Name != want {
		t.Errorf("Name %q does not match subcommand executable %q", Name, want)
	}
}

func TestVersion(t *testing.T) {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate test source")
	}

	buf, err := os.ReadFile(filepath.Join(filepath.Dir(file), "VERSION"))
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); Version() != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version())
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew" && a.Email == "andrew@ardnew.com"
	}) {
		t.Errorf("Expected Author to contain ardnew, got %v", Author)
	}
}
