package cli

import (
	"path/filepath"
	"slices"
	"testing"
)

func parseArgs(t *testing.T, args ...string) (*CLI, string, error) {
	t.Helper()

	var cli CLI

	parser, err := newParser(t.Context(), &cli,
		func(code int) { t.Fatalf("unexpected exit(%d)", code) },
		filepath.Join(t.TempDir(), "config"),
	)
	if err != nil {
		t.Fatalf("newParser() error = %v", err)
	}

	ktx, err := parser.Parse(trimSubcommand(args))
	if err != nil {
		return nil, "", err
	}

	return &cli, ktx.Command(), nil
}

func TestParse_TargetArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		template string
		bin      string
		want     []string
	}{
		{
			name:     "from_cargo",
			args:     []string{"instruments", "-t", "time", "--", "-x", "file"},
			template: "time",
			want:     []string{"-x", "file"},
		},
		{
			name:     "direct",
			args:     []string{"-t", "time", "--bin", "app", "--", "--slow"},
			template: "time",
			bin:      "app",
			want:     []string{"--slow"},
		},
		{
			name:     "from_cargo_with_bin",
			args:     []string{"instruments", "-t", "alloc", "--bin", "app", "--", "--slow", "3"},
			template: "alloc",
			bin:      "app",
			want:     []string{"--slow", "3"},
		},
		{
			name:     "no_target_args",
			args:     []string{"instruments", "-t", "time"},
			template: "time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, _, err := parseArgs(t, tt.args...)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.args, err)
			}

			c := cli.Instruments

			if c.Template != tt.template || c.Bin != tt.bin {
				t.Errorf("Template = %q, Bin = %q", c.Template, c.Bin)
			}

			if !slices.Equal(c.Args, tt.want) {
				t.Errorf("Args = %q, want %q", c.Args, tt.want)
			}
		})
	}
}

func TestParse_Commands(t *testing.T) {
	cli, command, err := parseArgs(t, "init", "--force")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if command != "init" || !cli.Init.Force {
		t.Errorf("command = %q, Force = %v", command, cli.Init.Force)
	}

	if _, _, err := parseArgs(t, "instruments", "--bin", "a", "--example", "b"); err == nil {
		t.Error("Parse() accepted --bin with --example")
	}

	if _, _, err := parseArgs(t, "--release", "--profile", "bench"); err == nil {
		t.Error("Parse() accepted --release with --profile")
	}

	cli, _, err = parseArgs(t, "instruments", "-t", "time", "--open")
	if err != nil || !cli.Instruments.Open || cli.Instruments.NoOpen {
		t.Errorf("Parse(--open) = %+v, %v", cli, err)
	}

	if _, _, err := parseArgs(t, "--open", "--no-open"); err == nil {
		t.Error("Parse() accepted --open with --no-open")
	}
}

func TestTrimSubcommand(t *testing.T) {
	tests := []struct{ in, want []string }{
		{nil, nil},
		{[]string{"instruments"}, []string{}},
		{[]string{"instruments", "-l"}, []string{"-l"}},
		{[]string{"-l"}, []string{"-l"}},
		{[]string{"init", "instruments"}, []string{"init", "instruments"}},
	}

	for _, tt := range tests {
		if got := trimSubcommand(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("trimSubcommand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
