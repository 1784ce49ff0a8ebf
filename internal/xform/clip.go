package xform

import (
	"github.com/samuelscerri/polygoncore/raster"
)

// clipVertex is one polygon vertex surviving clipping: clip-space
// position plus whatever attribute registers ride along with it.
type clipVertex struct {
	pos   Vec4
	attrs []raster.Register
}

func interpolateClipVertex(a, b clipVertex, t float32) clipVertex {
	out := clipVertex{
		pos:   a.pos.Interpolate(b.pos, t),
		attrs: make([]raster.Register, len(a.attrs)),
	}
	for i := range a.attrs {
		out.attrs[i] = raster.Register{
			X: a.attrs[i].X + (b.attrs[i].X-a.attrs[i].X)*t,
			Y: a.attrs[i].Y + (b.attrs[i].Y-a.attrs[i].Y)*t,
			Z: a.attrs[i].Z + (b.attrs[i].Z-a.attrs[i].Z)*t,
			W: a.attrs[i].W + (b.attrs[i].W-a.attrs[i].W)*t,
		}
	}
	return out
}

// plane identifies one of the 6 canonical clip-space half-spaces a
// homogeneous coordinate must satisfy to be visible: -w <= {x,y,z} <= w.
type plane struct {
	axis     int // 0=x, 1=y, 2=z
	positive bool
}

var clipPlanes = [4]plane{
	{axis: 0, positive: true},
	{axis: 0, positive: false},
	{axis: 1, positive: true},
	{axis: 1, positive: false},
}

func component(v Vec4, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func inside(v Vec4, p plane) bool {
	c := component(v, p.axis)
	if p.positive {
		return c <= v.W
	}
	return c >= -v.W
}

// clipAxis runs one Sutherland-Hodgman pass of poly against a single
// clip plane, adapted from the teacher's clip_axis (generalized from
// its two hardwired x/y passes plus commented-out z pass into a loop
// over an arbitrary plane list, and from its parallel Vertex4D/Vertex2D
// slices into a single clipVertex carrying arbitrarily many attribute
// registers).
func clipAxis(poly []clipVertex, p plane) []clipVertex {
	if len(poly) == 0 {
		return poly
	}

	out := make([]clipVertex, 0, len(poly)+1)

	prev := poly[len(poly)-1]
	prevIn := inside(prev.pos, p)

	for _, cur := range poly {
		curIn := inside(cur.pos, p)

		if curIn != prevIn {
			prevC := component(prev.pos, p.axis)
			curC := component(cur.pos, p.axis)
			if !p.positive {
				prevC, curC = -prevC, -curC
			}
			t := (prev.pos.W - prevC) / ((prev.pos.W - prevC) - (cur.pos.W - curC))
			out = append(out, interpolateClipVertex(prev, cur, t))
		}

		if curIn {
			out = append(out, cur)
		}

		prev, prevIn = cur, curIn
	}

	return out
}

// ClipTriangle clips one clip-space triangle (registers already
// carrying the interpolated attributes, register 0's xyzw being clip
// position) against the view frustum's left/right/top/bottom planes
// — the teacher's polygon_core.go disables the near/far passes
// ("//clip_axis(&vertices, &uv, -1, 2)") and this keeps that choice,
// relying on the w > 0 test below for near-plane rejection instead —
// triangulates the resulting convex polygon as a fan, perspective-
// divides and viewport-maps each vertex, and returns zero or more
// raster.Primitive values ready for the rasterization core.
//
// width and height are the target RenderTarget's pixel dimensions.
func ClipTriangle(verts [3]raster.Vertex, width, height int) []raster.Primitive {
	poly := make([]clipVertex, 3)
	for i, v := range verts {
		poly[i] = clipVertex{
			pos:   Vec4{v.Regs[0].X, v.Regs[0].Y, v.Regs[0].Z, v.Regs[0].W},
			attrs: v.Regs[1:],
		}
	}

	for _, p := range clipPlanes {
		poly = clipAxis(poly, p)
		if len(poly) == 0 {
			return nil
		}
	}

	screen := make([]clipVertex, len(poly))
	for i, v := range poly {
		if v.pos.W <= 0 {
			return nil
		}
		ndc := v.pos
		ndc.Normalize()
		ndc.ToScreenSpace(width, height)
		screen[i] = clipVertex{pos: ndc, attrs: v.attrs}
	}

	var out []raster.Primitive
	for i := 0; i < len(screen)-2; i++ {
		a, b, c := screen[0], screen[i+1], screen[i+2]

		ab := Vec4{b.pos.X - a.pos.X, b.pos.Y - a.pos.Y, 0, 0}
		ac := Vec4{c.pos.X - a.pos.X, c.pos.Y - a.pos.Y, 0, 0}
		signedArea2 := ab.X*ac.Y - ab.Y*ac.X
		if signedArea2 == 0 {
			continue
		}

		prim := raster.Primitive{AreaReciprocal: 1 / signedArea2}
		prim.V[0] = toVertex(a)
		prim.V[1] = toVertex(b)
		prim.V[2] = toVertex(c)

		if raster.Degenerate(prim.AreaReciprocal) {
			continue
		}

		out = append(out, prim)
	}

	return out
}

func toVertex(v clipVertex) raster.Vertex {
	regs := make([]raster.Register, 1+len(v.attrs))
	regs[0] = raster.Register{X: v.pos.X, Y: v.pos.Y, Z: v.pos.Z, W: v.pos.W}
	copy(regs[1:], v.attrs)
	return raster.Vertex{Regs: regs}
}
