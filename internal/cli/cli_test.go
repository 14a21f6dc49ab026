package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labelkit/pkg/export"
)

const testData = `{
  "fields": {
    "sender_name": "Acme Fulfilment",
    "recipient_name": "Ada Lovelace",
    "tracking_number": "1Z999AA10123456784"
  },
  "items": [{"sku": "A-1", "description": "Widget", "quantity": 2}]
}`

// setup writes a data file and a config that disables caching.
func setup(t *testing.T) (dir, data, cfg string) {
	t.Helper()
	dir = t.TempDir()
	data = filepath.Join(dir, "order.json")
	cfg = filepath.Join(dir, "labelkit.toml")
	if err := os.WriteFile(data, []byte(testData), 0o644); err != nil {
		t.Fatal(err)
	}
	toml := "[cache]\nbackend = \"none\"\n\n[editor]\norder = [\"barcode\", \"sender\", \"recipient\", \"items\", \"disclaimer\"]\n"
	if err := os.WriteFile(cfg, []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, data, cfg
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	captureUI(t)
	var logs bytes.Buffer
	c := New(&logs, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func TestExportCommand(t *testing.T) {
	dir, data, cfg := setup(t)
	out := filepath.Join(dir, "out", "label.json")
	if err := execute(t, "export", data, "-c", cfg, "-o", out); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	defer f.Close()
	doc, err := export.Read(f)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Sections.Order[0] != "barcode" {
		t.Errorf("config order not applied: %v", doc.Sections.Order)
	}
}

func TestExportCommandScript(t *testing.T) {
	dir, data, cfg := setup(t)
	script := filepath.Join(dir, "edits.lk")
	if err := os.WriteFile(script, []byte("# move the table up\norder items sender recipient barcode disclaimer\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "export", data, "-c", cfg, "-s", script); err != nil {
		t.Fatalf("export: %v", err)
	}
	f, err := os.Open(filepath.Join(dir, "order.label.json"))
	if err != nil {
		t.Fatalf("default output missing: %v", err)
	}
	defer f.Close()
	doc, err := export.Read(f)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Sections.Order[0] != "items" {
		t.Errorf("script not applied: %v", doc.Sections.Order)
	}
}

func TestPrintCommand(t *testing.T) {
	dir, data, cfg := setup(t)
	base := filepath.Join(dir, "print", "label")
	if err := execute(t, "print", data, "-c", cfg, "-f", "svg,pdf", "-o", base); err != nil {
		t.Fatalf("print: %v", err)
	}
	for _, ext := range []string{".svg", ".pdf"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("missing %s: %v", ext, err)
		}
	}

	if err := execute(t, "print", data, "-c", cfg, "-f", "gif"); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestSceneCommand(t *testing.T) {
	dir, data, cfg := setup(t)
	out := filepath.Join(dir, "scene.dot")
	if err := execute(t, "scene", data, "-c", cfg, "-o", out); err != nil {
		t.Fatalf("scene: %v", err)
	}
	dot, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(dot), "digraph scene {") {
		t.Errorf("dot output = %.40q", dot)
	}

	if err := execute(t, "scene", data, "-c", cfg, "-f", "png"); err == nil {
		t.Error("unknown scene format accepted")
	}
}

func TestCommandErrors(t *testing.T) {
	dir, data, cfg := setup(t)
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[cache]\nbackend = \"memcached\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"missing data", []string{"export", filepath.Join(dir, "nope.json"), "-c", cfg}},
		{"missing config", []string{"export", data, "-c", filepath.Join(dir, "nope.toml")}},
		{"invalid config", []string{"export", data, "-c", bad}},
		{"missing script", []string{"export", data, "-c", cfg, "-s", filepath.Join(dir, "nope.lk")}},
		{"no args", []string{"print"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := execute(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestCacheCommands(t *testing.T) {
	dir, data, _ := setup(t)
	cacheDir := filepath.Join(dir, "cache")
	cfg := filepath.Join(dir, "file.toml")
	toml := "[cache]\nbackend = \"file\"\ndir = \"" + filepath.ToSlash(cacheDir) + "\"\n"
	if err := os.WriteFile(cfg, []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()
	root.SetArgs([]string{"cache", "path", "-c", cfg})
	root.SetOut(&out)
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != filepath.ToSlash(cacheDir) {
		t.Errorf("cache path = %q, want %q", got, cacheDir)
	}

	if err := execute(t, "print", data, "-c", cfg, "-f", "svg", "-o", filepath.Join(dir, "label")); err != nil {
		t.Fatalf("print: %v", err)
	}
	entries, _ := filepath.Glob(filepath.Join(cacheDir, "*", "*.entry"))
	if len(entries) == 0 {
		t.Fatal("print wrote no cache entries")
	}
	if err := execute(t, "cache", "clear", "-c", cfg); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if entries, _ := filepath.Glob(filepath.Join(cacheDir, "*", "*.entry")); len(entries) != 0 {
		t.Errorf("%d entries left after clear", len(entries))
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var out bytes.Buffer
			root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()
			root.SetArgs([]string{"completion", shell})
			root.SetOut(&out)
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out.String(), "labelkit") {
				t.Errorf("%s script does not mention labelkit", shell)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to png", "", []string{"png"}},
		{"single format", "pdf", []string{"pdf"}},
		{"multiple formats", "png, pdf,svg", []string{"png", "pdf", "svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	artifacts := func(formats ...string) map[string][]byte {
		m := make(map[string][]byte)
		for _, f := range formats {
			m[f] = nil
		}
		return m
	}

	tests := []struct {
		name      string
		input     string
		output    string
		artifacts map[string][]byte
		want      map[string]string
	}{
		{"single explicit", "in/order.json", "out/x.png", artifacts("png"), map[string]string{"png": "out/x.png"}},
		{"single default", "in/order.json", "", artifacts("pdf"), map[string]string{"pdf": "in/order.pdf"}},
		{"multiple base", "order.json", "out/label.png", artifacts("png", "pdf"), map[string]string{"png": "out/label.png", "pdf": "out/label.pdf"}},
		{"json never overwrites input", "in/order.json", "", artifacts("json", "png"), map[string]string{"json": filepath.Join("in", "order.label.json"), "png": "in/order.png"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.input, tt.output, tt.artifacts)
			if len(got) != len(tt.want) {
				t.Fatalf("paths = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("%s path = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}

func TestDefaultOutput(t *testing.T) {
	if got := defaultOutput("data/order.json", "label.json"); got != filepath.Join("data", "order.label.json") {
		t.Errorf("defaultOutput = %q", got)
	}
}
