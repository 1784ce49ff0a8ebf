// Package raster implements the rasterization core of a fixed-function
// 3D pipeline: scan-conversion under the top-left fill convention,
// perspective-correct attribute interpolation, and a composable
// per-pixel fragment pipeline dispatched across a worker pool.
//
// The package consumes already-transformed, clip-space-resolved,
// viewport-mapped triangles (see Primitive) and mutates a RenderTarget
// in place. Vertex shading, clipping, texture sampling and the GL
// state machine itself live outside the package; see cmd/demo for a
// caller that wires all of those around this core.
package raster

import "github.com/chewxy/math32"

// Register is a single vec4 attribute channel, matching the OpenGL ES
// shader register file convention: register 0 doubles as position on
// the way in and fragment color on the way out (ShaderRegisterFile in
// the original implementation).
type Register struct {
	X, Y, Z, W float32
}

// Add returns the component-wise sum.
func (r Register) Add(o Register) Register {
	return Register{r.X + o.X, r.Y + o.Y, r.Z + o.Z, r.W + o.W}
}

// Scale returns the component-wise scale by f.
func (r Register) Scale(f float32) Register {
	return Register{r.X * f, r.Y * f, r.Z * f, r.W * f}
}

// AddScaled returns r + o*f, the shape every gradient step takes.
func (r Register) AddScaled(o Register, f float32) Register {
	return Register{r.X + o.X*f, r.Y + o.Y*f, r.Z + o.Z*f, r.W + o.W*f}
}

// Vertex is one triangle corner: a register file with position in
// register 0 and user-declared vec4 attributes from register 1 on.
type Vertex struct {
	Regs []Register
}

// Position returns register 0, reinterpreted as clip/screen-space xyzw.
func (v *Vertex) Position() *Register {
	return &v.Regs[0]
}

// Primitive is a single triangle of already viewport-mapped vertices,
// plus the reciprocal signed area the upstream stage precomputed.
// Winding is fixed; AreaReciprocal must be finite and nonzero — a
// degenerate triangle must never reach the core (§3 invariant).
type Primitive struct {
	V              [3]Vertex
	AreaReciprocal float32
}

// RegsPerVertex reports how many registers each vertex of p carries.
// All three vertices of a well-formed primitive agree on this count.
func (p *Primitive) RegsPerVertex() int {
	return len(p.V[0].Regs)
}

// Degenerate reports whether p's area reciprocal is unusable, i.e.
// the triangle upstream should have filtered but didn't.
func Degenerate(areaReciprocal float32) bool {
	return areaReciprocal == 0 || math32.IsNaN(areaReciprocal) || math32.IsInf(areaReciprocal, 0)
}
