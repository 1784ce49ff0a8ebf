// Command sdldemo is the go-sdl2 front end over the raster core,
// adapted from the teacher's main.go (sdl.Init/CreateWindow/GetSurface,
// WASD + arrow-key camera controls, frame loop and iteration counter)
// with frameBuffer.Rasterize (a stub in the teacher checkout — see
// DESIGN.md) replaced by raster.ScanlineRasterizer.
package main

import (
	"flag"
	"fmt"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/samuelscerri/polygoncore/internal/demoshader"
	"github.com/samuelscerri/polygoncore/internal/objmodel"
	"github.com/samuelscerri/polygoncore/internal/texture"
	"github.com/samuelscerri/polygoncore/internal/workerpool"
	"github.com/samuelscerri/polygoncore/internal/xform"
	"github.com/samuelscerri/polygoncore/raster"
)

const (
	width, height = 640, 360
	fov           = 90
	near, far     = 0.1, 1000
	aspect        = float32(width) / float32(height)
)

var cores = flag.Int("cores", runtime.NumCPU(), "worker pool size for span dispatch")

func main() {
	flag.Parse()

	modelPath := flag.Arg(0)
	if modelPath == "" {
		modelPath = "assets/model.obj"
	}
	texturePath := flag.Arg(1)
	if texturePath == "" {
		texturePath = "assets/texture.png"
	}

	mesh, err := objmodel.Load(modelPath)
	if err != nil {
		log.Fatal(err)
	}
	tex, err := texture.Load(texturePath)
	if err != nil {
		log.Fatal(err)
	}

	if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
		log.Fatal(err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("Polygon Core", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		width, height, sdl.WINDOW_SHOWN)
	if err != nil {
		log.Fatal(err)
	}
	defer window.Destroy()

	surface, err := window.GetSurface()
	if err != nil {
		log.Fatal(err)
	}

	rt := raster.NewRenderTarget(width, height)
	pool := workerpool.New(*cores)
	defer pool.Close()

	logger := raster.DefaultLogger()
	grad := raster.GradientEngine{TexCoordLoc: demoshader.TexCoordReg}
	mat := &demoshader.Material{Tex: tex, AlphaCutoff: 0.5}
	proj := xform.ProjectionMatrix(fov, aspect, near, far)

	camPos := xform.Vec4{X: 0, Y: 0, Z: -5, W: 1}
	var camRot xform.Vec4

	running := true
	iteration := 0
	startTime := time.Now()

	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if _, ok := event.(*sdl.QuitEvent); ok {
				running = false
			}
		}

		state := sdl.GetKeyboardState()

		const moveSpeed, turnSpeed = 0.05, 1.0
		if state[sdl.SCANCODE_W] == 1 {
			camPos.Z += moveSpeed
		}
		if state[sdl.SCANCODE_S] == 1 {
			camPos.Z -= moveSpeed
		}
		if state[sdl.SCANCODE_A] == 1 {
			camPos.X += moveSpeed
		}
		if state[sdl.SCANCODE_D] == 1 {
			camPos.X -= moveSpeed
		}
		if state[sdl.SCANCODE_UP] == 1 {
			camRot.X += turnSpeed
		}
		if state[sdl.SCANCODE_DOWN] == 1 {
			camRot.X -= turnSpeed
		}
		if state[sdl.SCANCODE_LEFT] == 1 {
			camRot.Y += turnSpeed
		}
		if state[sdl.SCANCODE_RIGHT] == 1 {
			camRot.Y -= turnSpeed
		}

		for i := range rt.Color {
			rt.Color[i] = 0
		}
		for i := range rt.Depth {
			rt.Depth[i] = 1
		}

		view := xform.TransformationMatrix(camPos, xform.EulerToQuaternion(camRot.X, camRot.Y, camRot.Z))
		mvp := view.Multiply(proj)

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

		if len(prims) > 0 {
			dc := &raster.DrawContext{
				RT:         rt,
				Enables:    raster.DepthTest | raster.DepthWrite,
				Depth:      raster.Less,
				Shader:     mat,
				Primitives: prims,
				Log:        logger,
				Pool:       pool,
			}
			rs := raster.ScanlineRasterizer{Grad: grad}
			if err := rs.Draw(dc); err != nil {
				logger.Errorf("draw: %v", err)
			}
		}

		blitToSurface(rt, surface)
		window.UpdateSurface()

		iteration++
		if iteration > 100000 {
			fmt.Println("Time taken:", time.Since(startTime).Milliseconds(), "milliseconds")
			break
		}
	}
}

// blitToSurface copies the core's BGRA8888 buffer into the SDL surface
// row by row, stepping by the surface's Pitch and BytesPerPixel the way
// the teacher's Buffer{Frame, Pitch, BytesPerPixel} grouping assumed.
// The B, G, R bytes are copied in that order without reordering, and
// the fourth byte is set to 0xFF on 4-byte surfaces.
func blitToSurface(rt *raster.RenderTarget, surface *sdl.Surface) {
	bpp := int(surface.BytesPerPixel())
	pitch := int(surface.Pitch)
	pixels := surface.Pixels()

	for y := 0; y < rt.Height; y++ {
		srcRow := y * rt.Width * 4
		dstRow := y * pitch
		for x := 0; x < rt.Width; x++ {
			si := srcRow + x*4
			di := dstRow + x*bpp
			if di+4 > len(pixels) {
				continue
			}
			pixels[di+0] = rt.Color[si+0]
			pixels[di+1] = rt.Color[si+1]
			pixels[di+2] = rt.Color[si+2]
			if bpp == 4 {
				pixels[di+3] = 0xFF
			}
		}
	}
}
