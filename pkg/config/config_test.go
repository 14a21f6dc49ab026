package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/labelkit/pkg/errors"
	"github.com/matzehuels/labelkit/pkg/label"
)

func TestParse(t *testing.T) {
	cfg, err := Parse(`
[editor]
order = ["barcode", "sender", "recipient", "items", "disclaimer"]

[editor.heights]
items = 160

[editor.fields."sender.phone"]
visible = true

[editor.fields."recipient.name"]
font_size = 20

[cache]
backend = "redis"
ttl = "2h"

[preview]
addr = ":9000"
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.TTL != 2*time.Hour || cfg.Cache.RedisAddr != DefaultRedisAddr {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Preview.Addr != ":9000" {
		t.Errorf("preview = %+v", cfg.Preview)
	}

	st, err := cfg.InitialState()
	if err != nil {
		t.Fatalf("InitialState: %v", err)
	}
	if st.SectionOrder[0] != label.SectionBarcode {
		t.Errorf("order = %v", st.SectionOrder)
	}
	if st.Height(label.SectionItems) != 160 || st.Height(label.SectionSender) != 100 {
		t.Errorf("heights = %v", st.SectionHeights)
	}
	if !st.Field("sender.phone").Visible {
		t.Error("sender.phone not shown")
	}
	name := st.Field("recipient.name")
	if name.FontSize != 20 || !name.Visible {
		t.Errorf("recipient.name = %+v, want size 20 and still visible", name)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse("")
	if err != nil {
		t.Fatal(err)
	}
	st, err := cfg.InitialState()
	if err != nil {
		t.Fatal(err)
	}
	if !label.SameOrder(st.SectionOrder, label.DefaultState().SectionOrder) {
		t.Errorf("order = %v", st.SectionOrder)
	}
	if cfg.Cache.Backend != BackendFile || cfg.Preview.Addr != DefaultPreviewAddr {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `[editor`},
		{"unknown key", "[cache]\nbackend = \"file\"\ncolour = 1\n"},
		{"backend", "[cache]\nbackend = \"s3\"\n"},
		{"order not a permutation", "[editor]\norder = [\"sender\"]\n"},
		{"duplicate section", "[editor]\norder = [\"sender\", \"sender\", \"barcode\", \"items\", \"disclaimer\"]\n"},
		{"unknown height", "[editor.heights]\nfooter = 10\n"},
		{"negative height", "[editor.heights]\nitems = -1\n"},
		{"unknown field", "[editor.fields.\"sender.fax\"]\nvisible = true\n"},
		{"zero font", "[editor.fields.\"sender.name\"]\nfont_size = 0\n"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\nredis_addr = \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.data); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, FileName)

	cfg, err := Load(missing, true)
	if err != nil || cfg.Cache.Backend != BackendFile {
		t.Errorf("optional missing file: %+v, %v", cfg, err)
	}
	if _, err := Load(missing, false); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("required missing file error = %v", err)
	}

	if err := os.WriteFile(missing, []byte("[preview]\naddr = \":1\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(missing, false)
	if err != nil || cfg.Preview.Addr != ":1" {
		t.Errorf("Load = %+v, %v", cfg, err)
	}
}
