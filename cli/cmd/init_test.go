package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

type initCLI struct {
	Template string   `default:"Time Profiler"`
	Release  bool     `default:"true"`
	Features []string `default:""`
	Secret   string   `default:"x"             hidden:""`

	Init Init `cmd:""`
}

func parseInit(t *testing.T, path string, args ...string) (*kong.Context, *initCLI) {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli,
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
		kong.Vars{ConfigIdentifier: path},
	)
	if err != nil {
		t.Fatalf("kong.New() error = %v", err)
	}

	ktx, err := parser.Parse(append([]string{"init"}, args...))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	return ktx, &cli
}

func TestInit_Run(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	ktx, cli := parseInit(t, path)

	if err := cli.Init.Run(WithContext(t.Context(), ktx)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	got := string(data)

	for _, want := range []string{"template: Time Profiler", "release: true"} {
		if !strings.Contains(got, want) {
			t.Errorf("config = %q, want %q", got, want)
		}
	}

	for _, unwanted := range []string{"secret", "features", "help", "force"} {
		if strings.Contains(got, unwanted) {
			t.Errorf("config = %q, want no %q", got, unwanted)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	if perm := info.Mode().Perm(); perm != configFileMode {
		t.Errorf("mode = %o, want %o", perm, configFileMode)
	}
}

func TestInit_Run_Exists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := os.WriteFile(path, []byte("old: true\n"), configFileMode); err != nil {
		t.Fatal(err)
	}

	ktx, cli := parseInit(t, path)

	err := cli.Init.Run(WithContext(t.Context(), ktx))
	if !errors.Is(err, ErrFileExists) {
		t.Fatalf("Run() error = %v, want ErrFileExists", err)
	}

	ktx, cli = parseInit(t, path, "--force")

	if err := cli.Init.Run(WithContext(t.Context(), ktx)); err != nil {
		t.Fatalf("Run(--force) error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "old") {
		t.Errorf("config = %q, want overwritten", data)
	}
}

func TestConfigValue(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{nil, nil},
		{false, nil},
		{true, true},
		{"", nil},
		{"x", "x"},
		{[]string{}, nil},
		{0, nil},
		{3, 3},
		{uint64(0), nil},
		{uint64(500), uint64(500)},
	}

	for _, tt := range tests {
		if got := configValue(tt.in); got != tt.want {
			t.Errorf("configValue(%#v) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
