package cli

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/image/vector"

	"github.com/dwgkit/dwg"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string // output PNG path
	config string // optional TOML config path
}

// newRenderCmd creates the render command: load, resolve, rasterize, save.
func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <document.json>",
		Short: "Resolve a drawing dump and rasterize it to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "out.png", "output PNG file")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML render config")
	return cmd
}

func runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	logger := loggerFromContext(cmd.Context())

	cfg, err := loadRenderConfig(opts.config)
	if err != nil {
		return err
	}
	doc, err := loadDocument(input)
	if err != nil {
		return err
	}
	if err := cfg.applyLayerColors(doc); err != nil {
		return err
	}

	res := dwg.Resolve(doc, cfg.resolveOptions()...)
	logger.Info("resolved document",
		"records", len(res.Records),
		"resolved", res.Stats.Resolved,
		"skipped", res.Stats.Skipped,
		"errored", res.Stats.Errored)
	for _, d := range res.Diags {
		logger.Warn(d.String())
	}

	img, err := rasterize(res, cfg)
	if err != nil {
		return err
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", opts.output, err)
	}
	logger.Info("saved", "file", opts.output, "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))
	return nil
}

// viewport maps resolved world coordinates (XY plane, Y up) onto the image
// (Y down), uniformly scaled and centered with the configured margin.
type viewport struct {
	scale    float64
	centerX  float64
	centerY  float64
	worldMid dwg.Vec2
}

func fitViewport(res *dwg.Result, cfg renderConfig) (viewport, bool) {
	min, max, ok := res.Bounds()
	if !ok {
		return viewport{}, false
	}
	w := float64(cfg.Width - 2*cfg.Margin)
	h := float64(cfg.Height - 2*cfg.Margin)
	spanX := max.X - min.X
	spanY := max.Y - min.Y
	scale := 1.0
	if spanX > 0 || spanY > 0 {
		scale = math.Min(safeDiv(w, spanX), safeDiv(h, spanY))
	}
	return viewport{
		scale:    scale,
		centerX:  float64(cfg.Width) / 2,
		centerY:  float64(cfg.Height) / 2,
		worldMid: dwg.V2((min.X+max.X)/2, (min.Y+max.Y)/2),
	}, true
}

func safeDiv(a, b float64) float64 {
	if b <= 0 {
		return math.Inf(1)
	}
	return a / b
}

// project maps a world point to image coordinates, flipping Y.
func (v viewport) project(p dwg.Vec3) (float32, float32) {
	x := v.centerX + (p.X-v.worldMid.X)*v.scale
	y := v.centerY - (p.Y-v.worldMid.Y)*v.scale
	return float32(x), float32(y)
}

// rasterize draws every record in order onto an RGBA canvas. Polylines are
// stroked as thin quads and meshes filled triangle by triangle, all through
// the x/image/vector rasterizer.
func rasterize(res *dwg.Result, cfg renderConfig) (*image.RGBA, error) {
	bg, err := parseHexColor(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg.Color()), image.Point{}, draw.Src)

	vp, ok := fitViewport(res, cfg)
	if !ok {
		return img, nil // empty document, bare background
	}

	ras := vector.NewRasterizer(cfg.Width, cfg.Height)
	for _, rec := range res.Records {
		ras.Reset(cfg.Width, cfg.Height)
		ras.DrawOp = draw.Over
		if rec.Mesh != nil {
			fillMesh(ras, vp, rec.Mesh)
		} else {
			strokePolyline(ras, vp, rec.Polyline, cfg.LineWidth)
		}
		ras.Draw(img, img.Bounds(), image.NewUniform(rec.Color.Color()), image.Point{})
	}
	return img, nil
}

func fillMesh(ras *vector.Rasterizer, vp viewport, mesh *dwg.Mesh) {
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		ax, ay := vp.project(mesh.Vertices[mesh.Indices[i]])
		bx, by := vp.project(mesh.Vertices[mesh.Indices[i+1]])
		cx, cy := vp.project(mesh.Vertices[mesh.Indices[i+2]])
		ras.MoveTo(ax, ay)
		ras.LineTo(bx, by)
		ras.LineTo(cx, cy)
		ras.ClosePath()
	}
}

// strokePolyline emits one thin quad per segment. Single-point polylines
// (point markers, insert placeholders) become small squares so they stay
// visible.
func strokePolyline(ras *vector.Rasterizer, vp viewport, pts []dwg.Vec3, width float64) {
	half := float32(width / 2)
	if half <= 0 {
		half = 0.5
	}
	if len(pts) == 1 {
		x, y := vp.project(pts[0])
		ras.MoveTo(x-2*half, y-2*half)
		ras.LineTo(x+2*half, y-2*half)
		ras.LineTo(x+2*half, y+2*half)
		ras.LineTo(x-2*half, y+2*half)
		ras.ClosePath()
		return
	}
	for i := 0; i+1 < len(pts); i++ {
		ax, ay := vp.project(pts[i])
		bx, by := vp.project(pts[i+1])
		dx, dy := bx-ax, by-ay
		l := float32(math.Hypot(float64(dx), float64(dy)))
		if l == 0 {
			continue
		}
		// Perpendicular offset of half the line width.
		nx, ny := -dy/l*half, dx/l*half
		ras.MoveTo(ax+nx, ay+ny)
		ras.LineTo(bx+nx, by+ny)
		ras.LineTo(bx-nx, by-ny)
		ras.LineTo(ax-nx, ay-ny)
		ras.ClosePath()
	}
}
