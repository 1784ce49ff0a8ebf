package raster

import (
	"math"

	"github.com/chewxy/math32"
)

// Edge is one non-horizontal edge of one triangle, expressed as the
// intersection with the scanline at y+0.5 plus its per-scanline
// increment. Edges are arena-allocated per draw and never outlive it.
type Edge struct {
	X      float32 // current intersection with the scanline
	DX     float32 // increment of X per unit Y
	YMax   int     // last scanline this edge participates in (top-left rule)
	Parent *triangleState
	Active bool // cleared once its span for the current scanline has been emitted
}

// triangleState is the per-triangle scratch the scan loop mutates: up
// to two live active-edge pointers plus the triangle's precomputed
// Gradient. At most zero or two of a triangle's edges are ever active
// at once outside a vertex-touching scanline (§3 invariant).
type triangleState struct {
	Prim *Primitive
	Grad Gradient

	e0, e1 *Edge
}

// setActiveEdge installs e into the first free slot. A third
// simultaneous active edge on one triangle is an upstream-invariant
// violation (§7): it means clipping/primitive-assembly handed the
// rasterizer something it shouldn't have.
func (t *triangleState) setActiveEdge(e *Edge, log Logger) error {
	switch {
	case t.e0 == nil:
		t.e0 = e
	case t.e1 == nil:
		t.e1 = e
	default:
		log.Fatalf("triangle already has two active edges; upstream invariant broken")
		return ErrInvariant
	}
	return nil
}

// unsetActiveEdge clears e's slot. It is not an error to unset an edge
// that was never tracked (the scan loop only calls this for edges it
// itself activated).
func (t *triangleState) unsetActiveEdge(e *Edge) {
	switch e {
	case t.e0:
		t.e0 = nil
	case t.e1:
		t.e1 = nil
	}
}

// adjacentEdge returns the sibling active edge of e within the same
// triangle, or nil if e isn't currently tracked as active.
func (t *triangleState) adjacentEdge(e *Edge) *Edge {
	switch e {
	case t.e0:
		return t.e1
	case t.e1:
		return t.e0
	}
	return nil
}

// EdgeTable is the Global Edge Table (GET) plus the scan range it
// covers: edges keyed by the scanline at which they become active,
// in insertion order, built once per draw (§4.1).
type EdgeTable struct {
	YMin, YMax int
	get        map[int][]*Edge
	triangles  []*triangleState
}

// BuildEdgeTable walks every primitive's three directed edges and
// populates the GET, discarding horizontal edges and encoding the
// top-left fill convention in each edge's YMax. Degenerate primitives
// (non-finite AreaReciprocal) are rejected as an upstream-invariant
// violation rather than silently skipped, since they should have been
// filtered before reaching the core.
func BuildEdgeTable(prims []Primitive, grad *GradientEngine, log Logger) (*EdgeTable, error) {
	et := &EdgeTable{
		get:       make(map[int][]*Edge),
		triangles: make([]*triangleState, 0, len(prims)),
	}
	et.YMin = math.MaxInt32
	et.YMax = math.MinInt32

	for i := range prims {
		p := &prims[i]

		if Degenerate(p.AreaReciprocal) {
			log.Fatalf("primitive %d has non-finite area reciprocal %v", i, p.AreaReciprocal)
			return nil, ErrInvariant
		}

		ts := &triangleState{Prim: p}
		ts.Grad = grad.Compute(p)
		et.triangles = append(et.triangles, ts)

		for k := 0; k < 3; k++ {
			v0 := p.V[k].Position()
			v1 := p.V[(k+1)%3].Position()

			// Scanline y samples at y+0.5; an edge covers the
			// scanlines whose sample lies in [low.Y, high.Y).
			y0 := int(math32.Ceil(v0.Y - 0.5))
			y1 := int(math32.Ceil(v1.Y - 0.5))

			// Horizontal edges contribute no scanline coverage; the
			// other two edges of the triangle already cover them.
			if y0 == y1 {
				continue
			}

			var low, high *Register
			var ystart int
			if y0 > y1 {
				low, high, ystart = v1, v0, y1
			} else {
				low, high, ystart = v0, v1, y0
			}

			e := &Edge{Parent: ts}
			e.DX = (high.X - low.X) / (high.Y - low.Y)
			e.X = low.X + ((float32(ystart) + 0.5) - low.Y)*e.DX
			e.YMax = int(math32.Ceil(high.Y-0.5)) - 1

			if e.YMax < ystart {
				// Sub-pixel horizontal-after-rounding edge: it
				// covers no scanline, skip it.
				continue
			}

			if ystart < et.YMin {
				et.YMin = ystart
			}
			if e.YMax > et.YMax {
				et.YMax = e.YMax
			}

			et.get[ystart] = append(et.get[ystart], e)
		}
	}

	if len(et.triangles) == 0 {
		et.YMin, et.YMax = 0, -1
	}

	return et, nil
}

// Triangles returns the per-draw triangle scratch states, in the
// order primitives were supplied.
func (et *EdgeTable) Triangles() []*triangleState {
	return et.triangles
}
