package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dwgkit/dwg"
)

// renderConfig is the optional TOML configuration for the render command.
// Everything has a usable default, so the config file can be omitted or
// partial.
type renderConfig struct {
	Width           int               `toml:"width"`
	Height          int               `toml:"height"`
	Margin          int               `toml:"margin"`
	Background      string            `toml:"background"`
	LineWidth       float64           `toml:"line_width"`
	Monochrome      bool              `toml:"monochrome"`
	ArcSegments     int               `toml:"arc_segments"`
	SplineSamples   int               `toml:"spline_samples"`
	Workers         int               `toml:"workers"`
	BasePointOffset bool              `toml:"base_point_offset"`
	UnitScale       float64           `toml:"unit_scale"`
	LayerColors     map[string]string `toml:"layer_colors"`
}

func defaultRenderConfig() renderConfig {
	return renderConfig{
		Width:      1024,
		Height:     768,
		Margin:     16,
		Background: "#000000",
		LineWidth:  1.0,
	}
}

// loadRenderConfig reads a TOML config file, or returns the defaults when
// path is empty.
func loadRenderConfig(path string) (renderConfig, error) {
	cfg := defaultRenderConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// resolveOptions translates the config into core resolution options.
func (c renderConfig) resolveOptions() []dwg.Option {
	var opts []dwg.Option
	if c.Monochrome {
		opts = append(opts, dwg.WithMonochrome(true))
	}
	if c.ArcSegments > 0 {
		opts = append(opts, dwg.WithArcSegments(c.ArcSegments))
	}
	if c.SplineSamples > 0 {
		opts = append(opts, dwg.WithSplineSamples(c.SplineSamples))
	}
	if c.Workers > 1 {
		opts = append(opts, dwg.WithWorkers(c.Workers))
	}
	if c.BasePointOffset {
		opts = append(opts, dwg.WithBasePointOffset(true))
	}
	if c.UnitScale > 0 {
		opts = append(opts, dwg.WithUnitScale(c.UnitScale))
	}
	return opts
}

// applyLayerColors overrides layer true-colors from the config before
// resolution, so BYLAYER entities pick the overrides up.
func (c renderConfig) applyLayerColors(doc *dwg.Document) error {
	for name, hex := range c.LayerColors {
		layer := doc.LayerByName(name)
		if layer == nil {
			return fmt.Errorf("layer color override: no layer %q", name)
		}
		rgb, err := parseHexColor(hex)
		if err != nil {
			return fmt.Errorf("layer color override %q: %w", name, err)
		}
		tc := uint32(rgb)
		layer.TrueColor = &tc
	}
	return nil
}

// parseHexColor parses "#RRGGBB" (leading # optional).
func parseHexColor(s string) (dwg.RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, fmt.Errorf("want RRGGBB, got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return dwg.RGB(v), nil
}
