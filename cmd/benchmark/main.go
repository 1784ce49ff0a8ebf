// Command benchmark headlessly times ScanlineRasterizer.Draw across a
// fixed iteration count and logs framerate samples to a CPU-brand-keyed
// file, adapted from the teacher's logger.go (NewLogger's
// cpuid.CPU.BrandName/Scene/Algorithm/Cores path) and main.go's
// iteration-counted timing loop.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/klauspost/cpuid/v2"

	"github.com/samuelscerri/polygoncore/internal/demoshader"
	"github.com/samuelscerri/polygoncore/internal/objmodel"
	"github.com/samuelscerri/polygoncore/internal/texture"
	"github.com/samuelscerri/polygoncore/internal/workerpool"
	"github.com/samuelscerri/polygoncore/internal/xform"
	"github.com/samuelscerri/polygoncore/raster"
)

const (
	width, height = 1280, 720
	fov           = 90
	near, far     = 0.1, 100
	aspect        = float32(width) / float32(height)
	iterations    = 600
)

var (
	logDir      = flag.String("logdir", "benchmarks", "root directory for per-CPU benchmark logs")
	cores       = flag.Int("cores", 0, "worker pool size for span dispatch (0 = GOMAXPROCS)")
	modelPath   = flag.String("model", "assets/model.obj", "OBJ model to benchmark")
	texturePath = flag.String("texture", "assets/texture.png", "texture to sample")
)

// benchLogger appends one line per distinct framerate sample to a file
// at <logDir>/<CPU brand>/<cores>.txt, matching the teacher's
// Logger.Log dedupe-on-same-FPS behavior.
type benchLogger struct {
	file       *os.File
	currentFPS float64
}

func newBenchLogger(dir string, workers int) (*benchLogger, error) {
	path := filepath.Join(dir, cpuid.CPU.BrandName)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("benchmark: %w", err)
	}

	path = filepath.Join(path, strconv.Itoa(workers)+".txt")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("benchmark: %w", err)
	}

	return &benchLogger{file: f}, nil
}

func (l *benchLogger) log(fps float64) {
	if math.Floor(fps) > 0 && l.currentFPS != fps {
		l.currentFPS = fps
		fmt.Fprintln(l.file, fps)
	}
}

func (l *benchLogger) Close() error { return l.file.Close() }

func main() {
	flag.Parse()

	workers := *cores
	if workers <= 0 {
		workers = 0 // workerpool.New(0) falls back to GOMAXPROCS
	}

	mesh, err := objmodel.Load(*modelPath)
	if err != nil {
		log.Fatal(err)
	}
	tex, err := texture.Load(*texturePath)
	if err != nil {
		log.Fatal(err)
	}

	bl, err := newBenchLogger(*logDir, workers)
	if err != nil {
		log.Fatal(err)
	}
	defer bl.Close()

	rt := raster.NewRenderTarget(width, height)
	pool := workerpool.New(workers)
	defer pool.Close()

	logger := raster.DefaultLogger()
	grad := raster.GradientEngine{TexCoordLoc: demoshader.TexCoordReg}
	mat := &demoshader.Material{Tex: tex, AlphaCutoff: 0.5}
	proj := xform.ProjectionMatrix(fov, aspect, near, far)
	camPos := xform.Vec4{X: 0, Y: 0, Z: -5, W: 1}

	mvp := xform.TransformationMatrix(camPos, xform.Quaternion{W: 1}).Multiply(proj)

	var prims []raster.Primitive
	for _, tri := range mesh {
		var verts [3]raster.Vertex
		for c := 0; c < 3; c++ {
			clip := xform.Project(xform.Vec4{X: tri.Position[c].X, Y: tri.Position[c].Y, Z: tri.Position[c].Z, W: 1}, mvp)
			verts[c] = raster.Vertex{Regs: []raster.Register{
				{X: clip.X, Y: clip.Y, Z: clip.Z, W: clip.W},
				{X: tri.UV[c].X, Y: tri.UV[c].Y},
			}}
		}
		prims = append(prims, xform.ClipTriangle(verts, width, height)...)
	}

	rs := raster.ScanlineRasterizer{Grad: grad}
	start := time.Now()

	for i := 0; i < iterations; i++ {
		frameStart := time.Now()

		dc := &raster.DrawContext{
			RT:         rt,
			Enables:    raster.DepthTest | raster.DepthWrite,
			Depth:      raster.Less,
			Shader:     mat,
			Primitives: prims,
			Log:        logger,
			Pool:       pool,
		}
		if err := rs.Draw(dc); err != nil {
			logger.Errorf("draw: %v", err)
			continue
		}

		fps := 1 / time.Since(frameStart).Seconds()
		bl.log(fps)
	}

	fmt.Println("Total time:", time.Since(start).Milliseconds(), "ms across", iterations, "iterations")
	fmt.Println("CPU:", cpuid.CPU.BrandName, "workers:", pool.Workers())
}
