package xform

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/samuelscerri/polygoncore/raster"
)

func tri(a, b, c raster.Vertex) [3]raster.Vertex {
	return [3]raster.Vertex{a, b, c}
}

func vtx(x, y, z, w float32) raster.Vertex {
	return raster.Vertex{Regs: []raster.Register{{X: x, Y: y, Z: z, W: w}, {X: 0.5, Y: 0.5}}}
}

// === ClipTriangle ===

func TestClipTriangle_FullyInsideProducesOnePrimitive(t *testing.T) {
	verts := tri(vtx(-0.5, -0.5, 0, 1), vtx(0.5, -0.5, 0, 1), vtx(0, 0.5, 0, 1))

	prims := ClipTriangle(verts, 100, 100)

	if len(prims) != 1 {
		t.Fatalf("got %d primitives, want 1", len(prims))
	}
}

func TestClipTriangle_FullyOutsideProducesNone(t *testing.T) {
	verts := tri(vtx(2, 2, 0, 1), vtx(3, 2, 0, 1), vtx(2, 3, 0, 1))

	prims := ClipTriangle(verts, 100, 100)

	if prims != nil {
		t.Fatalf("got %d primitives, want 0", len(prims))
	}
}

func TestClipTriangle_StraddlingPlaneProducesClippedFan(t *testing.T) {
	// One vertex far outside the +x plane (x > w), two inside: Sutherland-
	// Hodgman should yield a quad, triangulated into 2 primitives.
	verts := tri(vtx(-0.5, -0.5, 0, 1), vtx(0.5, -0.5, 0, 1), vtx(2, 0.5, 0, 1))

	prims := ClipTriangle(verts, 100, 100)

	if len(prims) != 2 {
		t.Fatalf("got %d primitives, want 2", len(prims))
	}
}

func TestClipTriangle_NegativeWVertexRejected(t *testing.T) {
	verts := tri(vtx(0, 0, 0, -1), vtx(0.1, 0, 0, -1), vtx(0, 0.1, 0, -1))

	prims := ClipTriangle(verts, 100, 100)

	if prims != nil {
		t.Fatalf("got %d primitives for an all-negative-w triangle, want 0", len(prims))
	}
}

func TestClipTriangle_DegenerateAfterProjectionIsDropped(t *testing.T) {
	// Three colinear points project to a zero-area triangle.
	verts := tri(vtx(-0.5, 0, 0, 1), vtx(0, 0, 0, 1), vtx(0.5, 0, 0, 1))

	prims := ClipTriangle(verts, 100, 100)

	if prims != nil {
		t.Fatalf("got %d primitives for a colinear triangle, want 0", len(prims))
	}
}

func TestClipTriangle_OutputCarriesAttributeRegisterUnchanged(t *testing.T) {
	verts := tri(vtx(-0.5, -0.5, 0, 1), vtx(0.5, -0.5, 0, 1), vtx(0, 0.5, 0, 1))

	prims := ClipTriangle(verts, 100, 100)
	if len(prims) != 1 {
		t.Fatalf("got %d primitives, want 1", len(prims))
	}

	for _, v := range prims[0].V {
		if len(v.Regs) != 2 {
			t.Fatalf("got %d registers, want 2 (position + uv)", len(v.Regs))
		}
		if v.Regs[1].X != 0.5 || v.Regs[1].Y != 0.5 {
			t.Errorf("uv register mutated by clipping: got %+v", v.Regs[1])
		}
	}
}

// === inside / clipAxis ===

func TestInside_LeftRightPlanesAgreeWithHomogeneousTest(t *testing.T) {
	v := Vec4{X: 1, Y: 0, Z: 0, W: 2}

	if !inside(v, plane{axis: 0, positive: true}) {
		t.Error("x=1,w=2 should satisfy x <= w")
	}
	if !inside(v, plane{axis: 0, positive: false}) {
		t.Error("x=1,w=2 should satisfy x >= -w")
	}

	outside := Vec4{X: 3, Y: 0, Z: 0, W: 2}
	if inside(outside, plane{axis: 0, positive: true}) {
		t.Error("x=3,w=2 should violate x <= w")
	}
}

func TestClipAxis_EmptyPolygonStaysEmpty(t *testing.T) {
	out := clipAxis(nil, plane{axis: 0, positive: true})
	if out != nil {
		t.Fatalf("got %v, want nil", out)
	}
}

// === Matrix / transform helpers ===

func TestProjectionMatrix_PreservesAspectInXScale(t *testing.T) {
	m := ProjectionMatrix(90, 2, 0.1, 100)

	if m[0][0] >= m[1][1] {
		t.Errorf("x-scale %v should be less than y-scale %v for aspect > 1", m[0][0], m[1][1])
	}
}

func TestTransformationMatrix_IdentityRotationPreservesTranslation(t *testing.T) {
	pos := Vec4{X: 1, Y: 2, Z: 3, W: 1}
	m := TransformationMatrix(pos, Quaternion{W: 1})

	got := Project(Vec4{X: 0, Y: 0, Z: 0, W: 1}, m)
	if got.X != 1 || got.Y != 2 || got.Z != 3 {
		t.Errorf("got %+v, want translation (1,2,3)", got)
	}
}

func TestEulerToQuaternion_ZeroAnglesIsIdentity(t *testing.T) {
	q := EulerToQuaternion(0, 0, 0)

	if math32.Abs(q.X) > 1e-6 || math32.Abs(q.Y) > 1e-6 || math32.Abs(q.Z) > 1e-6 || math32.Abs(q.W-1) > 1e-6 {
		t.Errorf("got %+v, want identity quaternion", q)
	}
}

func TestVec4_ToScreenSpaceMapsNDCOriginToCenter(t *testing.T) {
	v := Vec4{X: 0, Y: 0, Z: 0, W: 1}
	v.ToScreenSpace(100, 100)

	if v.X != 51 || v.Y != 51 {
		t.Errorf("got (%v,%v), want (51,51) per the +2 padding convention", v.X, v.Y)
	}
}
