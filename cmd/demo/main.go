// Command demo is an ebiten front end over the raster core, adapted
// from the teacher's polygon_core.go Game (Update/Draw/Layout, WASD +
// arrow-key camera controls, ebiten.RunGameWithOptions startup) with
// the tile-grid/barycentric rasterizer replaced end to end by
// raster.ScanlineRasterizer fed through internal/xform clipping.
package main

import (
	"flag"
	"fmt"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"log/slog"
	"runtime"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	_ "golang.org/x/image/bmp"

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
)

var cores = flag.Int("cores", runtime.NumCPU(), "worker pool size for span dispatch")

type game struct {
	rt      *raster.RenderTarget
	canvas  *ebiten.Image
	pool    *workerpool.Pool
	log     raster.Logger
	grad    raster.GradientEngine
	rs      raster.ScanlineRasterizer
	mat     *demoshader.Material
	model   objmodel.Model
	proj    xform.Matrix
	camPos  xform.Vec4
	camRot  xform.Vec4 // roll=x, pitch=y, yaw=z in degrees
	rowRGBA []byte
}

func newGame(modelPath, texturePath string) (*game, error) {
	mesh, err := objmodel.Load(modelPath)
	if err != nil {
		return nil, fmt.Errorf("demo: loading model: %w", err)
	}

	tex, err := texture.Load(texturePath)
	if err != nil {
		return nil, fmt.Errorf("demo: loading texture: %w", err)
	}

	g := &game{
		rt:      raster.NewRenderTarget(width, height),
		canvas:  ebiten.NewImage(width, height),
		pool:    workerpool.New(*cores),
		log:     raster.DefaultLogger(),
		grad:    raster.GradientEngine{TexCoordLoc: demoshader.TexCoordReg},
		mat:     &demoshader.Material{Tex: tex, AlphaCutoff: 0.5},
		model:   mesh,
		proj:    xform.ProjectionMatrix(fov, aspect, near, far),
		camPos:  xform.Vec4{X: 0, Y: 0, Z: -5, W: 1},
		rowRGBA: make([]byte, width*height*4),
	}

	return g, nil
}

func (g *game) Update() error {
	const moveSpeed, turnSpeed = 0.05, 1.0

	if ebiten.IsKeyPressed(ebiten.KeyW) {
		g.camPos.Z += moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		g.camPos.Z -= moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		g.camPos.X += moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		g.camPos.X -= moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		g.camRot.X += turnSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		g.camRot.X -= turnSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.camRot.Y += turnSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.camRot.Y -= turnSpeed
	}

	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	for i := range g.rt.Color {
		g.rt.Color[i] = 0
	}
	for i := range g.rt.Depth {
		g.rt.Depth[i] = 1
	}

	view := xform.TransformationMatrix(g.camPos, xform.EulerToQuaternion(g.camRot.X, g.camRot.Y, g.camRot.Z))
	mvp := view.Multiply(g.proj)

	var prims []raster.Primitive
	for _, tri := range g.model {
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

	if len(prims) > 0 {
		dc := &raster.DrawContext{
			RT:         g.rt,
			Enables:    raster.DepthTest | raster.DepthWrite,
			Depth:      raster.Less,
			Shader:     g.mat,
			Primitives: prims,
			Log:        g.log,
			Pool:       g.pool,
		}
		g.rs = raster.ScanlineRasterizer{Grad: g.grad}
		if err := g.rs.Draw(dc); err != nil {
			g.log.Errorf("draw: %v", err)
		}
	}

	bgraToRGBA(g.rt.Color, g.rowRGBA)
	g.canvas.WritePixels(g.rowRGBA)
	screen.DrawImage(g.canvas, nil)

	ebitenutil.DebugPrint(screen, strconv.Itoa(int(ebiten.ActualFPS())))
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return width, height
}

// bgraToRGBA swizzles the core's BGRA8888 RenderTarget.Color into the
// RGBA8888 byte order ebiten.Image.WritePixels expects.
func bgraToRGBA(bgra, rgba []byte) {
	for i := 0; i < len(bgra); i += 4 {
		rgba[i+0] = bgra[i+2]
		rgba[i+1] = bgra[i+1]
		rgba[i+2] = bgra[i+0]
		rgba[i+3] = bgra[i+3]
	}
}

func main() {
	flag.Parse()
	slog.SetLogLoggerLevel(slog.LevelInfo)

	g, err := newGame("assets/model.obj", "assets/texture.png")
	if err != nil {
		log.Fatal(err)
	}
	defer g.pool.Close()

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Polygon Core")
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
