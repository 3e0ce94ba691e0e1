package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ardnew/cargo-instruments/pkg/proc"
)

func TestKongContextFrom_Missing(t *testing.T) {
	if ktx := kongContextFrom(context.Background()); ktx != nil {
		t.Errorf("kongContextFrom() = %v, want nil", ktx)
	}

	if ktx := kongContextFrom(WithContext(context.Background(), nil)); ktx != nil {
		t.Errorf("kongContextFrom(nil) = %v, want nil", ktx)
	}
}

func TestRuntimeFrom(t *testing.T) {
	rt := runtimeFrom(context.Background())
	if _, ok := rt.System.(proc.OS); !ok {
		t.Errorf("default System = %T, want proc.OS", rt.System)
	}

	if rt.Getwd == nil || rt.Getenv == nil || rt.Pick == nil {
		t.Error("default Runtime has nil functions")
	}

	var stdout bytes.Buffer

	rt = runtimeFrom(WithRuntime(context.Background(), Runtime{Stdout: &stdout}))
	if rt.Stdout != &stdout {
		t.Error("runtimeFrom() did not return the stored Runtime")
	}
}

func TestStatus(t *testing.T) {
	var buf bytes.Buffer

	status(&buf, "Profiling", "%s with template '%s'", "app", "Allocations")

	out := buf.String()
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("status() = %q, want trailing newline", out)
	}

	if got := strings.TrimSpace(out); got != "Profiling app with template 'Allocations'" {
		t.Errorf("status() = %q", out)
	}

	if i := strings.Index(out, "Profiling"); i != statusWidth-len("Profiling") {
		t.Errorf("verb starts at column %d, want %d", i, statusWidth-len("Profiling"))
	}
}
