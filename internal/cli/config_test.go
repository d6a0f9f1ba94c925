package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dwgkit/dwg"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    dwg.RGB
		wantErr bool
	}{
		{"#FF0000", 0xFF0000, false},
		{"00ff00", 0x00FF00, false},
		{"#123456", 0x123456, false},
		{"#FFF", 0, true},
		{"#GGGGGG", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseHexColor(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("parseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadRenderConfigDefaults(t *testing.T) {
	cfg, err := loadRenderConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 1024 || cfg.Height != 768 || cfg.Margin != 16 {
		t.Errorf("defaults = %dx%d margin %d", cfg.Width, cfg.Height, cfg.Margin)
	}
	if cfg.Background != "#000000" || cfg.LineWidth != 1.0 {
		t.Errorf("defaults bg=%q lw=%v", cfg.Background, cfg.LineWidth)
	}
	// Defaults translate to an empty option list: the core's own defaults
	// apply.
	if opts := cfg.resolveOptions(); len(opts) != 0 {
		t.Errorf("default config produced %d options, want 0", len(opts))
	}
}

func TestLoadRenderConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.toml")
	content := `
width = 640
monochrome = true
arc_segments = 96
workers = 4

[layer_colors]
walls = "#00FF00"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadRenderConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 640 {
		t.Errorf("width = %d, want 640", cfg.Width)
	}
	if cfg.Height != 768 {
		t.Errorf("height = %d, want the unoverridden default", cfg.Height)
	}
	if !cfg.Monochrome || cfg.ArcSegments != 96 || cfg.Workers != 4 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.LayerColors["walls"] != "#00FF00" {
		t.Errorf("layer_colors = %v", cfg.LayerColors)
	}
	if opts := cfg.resolveOptions(); len(opts) != 3 {
		t.Errorf("got %d options, want monochrome, arc segments, workers", len(opts))
	}
}

func TestLoadRenderConfigMissingFile(t *testing.T) {
	if _, err := loadRenderConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestApplyLayerColors(t *testing.T) {
	doc := &dwg.Document{Layers: map[string]*dwg.Layer{
		"walls": {Name: "walls"},
	}}
	cfg := defaultRenderConfig()
	cfg.LayerColors = map[string]string{"walls": "#AA BBCC"}
	if err := cfg.applyLayerColors(doc); err == nil {
		t.Error("expected an error for a malformed color")
	}

	cfg.LayerColors = map[string]string{"walls": "#AABBCC"}
	if err := cfg.applyLayerColors(doc); err != nil {
		t.Fatal(err)
	}
	if tc := doc.Layers["walls"].TrueColor; tc == nil || *tc != 0xAABBCC {
		t.Errorf("layer true color = %v, want 0xAABBCC", tc)
	}

	cfg.LayerColors = map[string]string{"ghost": "#AABBCC"}
	if err := cfg.applyLayerColors(doc); err == nil {
		t.Error("expected an error for an unknown layer")
	}
}
