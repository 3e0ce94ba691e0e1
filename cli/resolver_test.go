package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolve_YAML(t *testing.T) {
	doc := `
log-level: debug
release: true
template: Time Profiler
time_limit: 5000
features: [simd, 2]
`

	res, err := resolve(t.Context())(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	c, ok := res.(config)
	if !ok {
		t.Fatalf("resolve() = %T, want config", res)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"release", true},
		{"template", "Time Profiler"},
		{"time-limit", "5000"},
	}

	for _, tt := range tests {
		got, err := c.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: tt.flag}})
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", tt.flag, err)
		}

		if got != tt.want {
			t.Errorf("Resolve(%q) = %#v, want %#v", tt.flag, got, tt.want)
		}
	}

	features, ok := c["features"].([]any)
	if !ok || len(features) != 2 || features[1] != "2" {
		t.Errorf("features = %#v", c["features"])
	}

	if got, _ := c.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "missing"}}); got != nil {
		t.Errorf("Resolve(missing) = %#v, want nil", got)
	}
}

func TestResolve_Invalid(t *testing.T) {
	res, err := resolve(t.Context())(strings.NewReader("log-level: [unclosed"))
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	if c, ok := res.(config); !ok || len(c) != 0 {
		t.Errorf("resolve() = %#v, want empty config", res)
	}
}

func TestResolve_Empty(t *testing.T) {
	res, err := resolve(t.Context())(strings.NewReader(""))
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	if c, ok := res.(config); !ok || len(c) != 0 {
		t.Errorf("resolve() = %#v, want empty config", res)
	}
}

func TestLogConfig_Scan(t *testing.T) {
	var f logConfig

	f.scan([]string{
		"--log-level", "debug",
		"--log-format=json",
		"--no-log-pretty",
		"--log-caller=true",
		"--", "--log-level", "error",
	})

	if f.Level != "debug" || f.Format != "json" || f.Pretty || !f.Caller {
		t.Errorf("scan() = %+v", f)
	}

	t.Cleanup(func() {
		(&logConfig{Level: "info", Format: "text", Pretty: true}).start(t.Context())
	})
}
