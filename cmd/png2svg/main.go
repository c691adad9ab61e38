package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/austlee/png2svg/internal/outline"
	"github.com/austlee/png2svg/internal/raster"
	"github.com/austlee/png2svg/internal/render"
	"github.com/austlee/png2svg/internal/server"
	"github.com/austlee/png2svg/internal/trace"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags before flag parsing so they work
	// without any other arguments
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("png2svg %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	var (
		mcpMode      = flag.Bool("mcp", false, "run as an MCP server over stdin/stdout")
		inPath       = flag.String("in", "", "input image file (PNG, JPEG, or GIF)")
		outPath      = flag.String("out", "", "output SVG file (default: stdout)")
		targetPoints = flag.Int("points", trace.DefaultTargetVertexCount, "requested outline vertex count (minimum 3)")
		maxDim       = flag.Int("max-dim", raster.DefaultMaxDimension, "maximum processing raster dimension in pixels")
		smooth       = flag.Float64("smooth", 0, "Gaussian blur radius for mask smoothing; 0 disables")
		edgeOffset   = flag.Float64("edge-offset", outline.DefaultEdgeOffset, "outward vertex offset in source pixels")
		destScale    = flag.Float64("scale", 1, "scale from source pixels to output units")
		strokeColor  = flag.String("stroke", "", "stroke color as #RRGGBB (default: derived from fill, or near-black)")
		strokeWidth  = flag.Float64("stroke-width", 2, "stroke width in output units")
		fillColor    = flag.String("fill", "none", "fill color as #RRGGBB, or \"none\"")
	)
	flag.Parse()

	// Log to stderr; stdout may carry the SVG document or MCP frames
	log.SetOutput(os.Stderr)
	log.SetFlags(0)
	debug := os.Getenv("PNG2SVG_LOG_LEVEL") == "debug"

	if *mcpMode {
		log.SetPrefix("[png2svg] ")
		if debug {
			log.Println("starting MCP server")
		}
		if err := server.New().Run(); err != nil {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "png2svg - trace an image's alpha silhouette into an SVG outline")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage: png2svg -in image.png [-out image.svg] [options]")
		fmt.Fprintln(os.Stderr, "       png2svg -mcp")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := convert(convertConfig{
		inPath:       *inPath,
		outPath:      *outPath,
		targetPoints: *targetPoints,
		maxDim:       *maxDim,
		smooth:       *smooth,
		edgeOffset:   *edgeOffset,
		destScale:    *destScale,
		strokeColor:  *strokeColor,
		strokeWidth:  *strokeWidth,
		fillColor:    *fillColor,
		debug:        debug,
	}); err != nil {
		log.Fatalf("png2svg: %v", err)
	}
}

type convertConfig struct {
	inPath, outPath        string
	targetPoints, maxDim   int
	smooth, edgeOffset     float64
	destScale              float64
	strokeColor, fillColor string
	strokeWidth            float64
	debug                  bool
}

// convert runs the full pipeline for one file: decode, prepare, trace,
// build geometry, and write the styled SVG.
func convert(cfg convertConfig) error {
	f, err := os.Open(cfg.inPath)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	prep, err := raster.Prepare(img, raster.PrepareOptions{
		MaxDimension: cfg.maxDim,
		SmoothRadius: cfg.smooth,
	})
	if err != nil {
		return err
	}
	if cfg.debug {
		log.Printf("prepared %dx%d -> %dx%d (scale %.3f)",
			prep.SourceWidth, prep.SourceHeight,
			prep.Buffer.Width(), prep.Buffer.Height(), prep.Scale)
	}

	opts := trace.DefaultOptions()
	opts.TargetVertexCount = cfg.targetPoints

	result, err := trace.Extract(prep.Buffer, opts)
	if err != nil {
		return err
	}
	if cfg.debug {
		log.Printf("traced %d edge pixels, %d contours, main contour %d points, simplified to %d",
			result.EdgePixels, result.ContourCount, result.MainContourLen, len(result.Path))
	}

	tf := outline.Transform{
		PixelScale: prep.Scale,
		DestScaleX: cfg.destScale,
		DestScaleY: cfg.destScale,
		EdgeOffset: cfg.edgeOffset,
	}
	geo, err := outline.Build(result.Path, tf)
	if err != nil {
		return err
	}

	style := render.Style{
		StrokeColor: cfg.strokeColor,
		StrokeWidth: cfg.strokeWidth,
		FillColor:   cfg.fillColor,
		FillOpacity: 1,
	}

	out := os.Stdout
	if cfg.outPath != "" {
		out, err = os.Create(cfg.outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer out.Close()
	}

	width := int(float64(prep.SourceWidth) * cfg.destScale)
	height := int(float64(prep.SourceHeight) * cfg.destScale)
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return render.WriteSVG(out, geo, width, height, style)
}
