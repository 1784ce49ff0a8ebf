package raster

import "github.com/chewxy/math32"

// Stage is the capability every post-rasterizer pipeline component
// exposes: accept a fragment, optionally forward it to whatever comes
// next. Stages are wired into a chain by FragmentPipeline assembly
// (§4.5); a stage that rejects a fragment simply does not call its
// successor (design note in spec.md §9: capability set chained by
// reference, not deep inheritance).
type Stage interface {
	Accept(f *Fragment)
}

// StageFunc adapts a plain function to Stage.
type StageFunc func(f *Fragment)

func (fn StageFunc) Accept(f *Fragment) { fn(f) }

// OwnershipTest is a pass-through in the windowed single-surface case
// (§4.6); kept as a distinct stage so a windowing backend that needs
// to clip against overlapping system windows has somewhere to hook in.
type OwnershipTest struct {
	Next Stage
}

func (s *OwnershipTest) Accept(f *Fragment) {
	s.Next.Accept(f)
}

// ScissorTest drops fragments outside the configured box (§4.6).
type ScissorTest struct {
	Box  ScissorBox
	Next Stage
}

func (s *ScissorTest) Accept(f *Fragment) {
	if !s.Box.contains(f.X, f.Y) {
		return
	}
	s.Next.Accept(f)
}

// StencilTest reads/writes RT.Stencil per the configured func/op
// triple, following the OpenGL ES stencil contract (§4.6, §9): the
// depth-fail branch only applies when depth testing is also active,
// since without it every stencil pass is also a "no depth fail".
type StencilTest struct {
	State     StencilState
	DepthTest bool
	DepthFunc CompareFunc
	Next      Stage
}

func (s *StencilTest) Accept(f *Fragment) {
	cur := f.RT.Stencil[f.Index]
	ref := s.State.Ref & s.State.Mask
	masked := cur & s.State.Mask

	if !s.State.Func.passes(float32(ref), float32(masked)) {
		f.RT.Stencil[f.Index] = s.State.OnFail.apply(cur, s.State.Ref)
		return
	}

	if s.DepthTest {
		depthPasses := s.DepthFunc.passes(f.Z, f.RT.Depth[f.Index])
		if !depthPasses {
			f.RT.Stencil[f.Index] = s.State.OnDepthFail.apply(cur, s.State.Ref)
			return
		}
	}

	f.RT.Stencil[f.Index] = s.State.OnPass.apply(cur, s.State.Ref)
	s.Next.Accept(f)
}

// ZTester compares the fragment's linear depth against RT.Depth and,
// on pass, optionally writes it back (§4.6). Depth is never
// perspective-corrected, so it compares f.Z directly rather than
// anything in f.In.
type ZTester struct {
	Func  CompareFunc
	Write bool
	Next  Stage
}

func (s *ZTester) Accept(f *Fragment) {
	if !s.Func.passes(f.Z, f.RT.Depth[f.Index]) {
		return
	}
	if s.Write {
		f.RT.Depth[f.Index] = f.Z
	}
	s.Next.Accept(f)
}

// Blender combines f.Out[0] with RT.Color per the configured factor
// pair: out = Src*srcFactor + Dst*dstFactor (§4.6, supplemented §
// "Blend factors").
type Blender struct {
	State BlendState
	Next  Stage
}

func (s *Blender) Accept(f *Fragment) {
	dst := readColor(f.RT, f.Index)
	src := f.Out[0]

	srcF := blendFactorValue(s.State.Src, src, dst)
	dstF := blendFactorValue(s.State.Dst, src, dst)

	f.Out[0] = Register{
		X: src.X*srcF.X + dst.X*dstF.X,
		Y: src.Y*srcF.Y + dst.Y*dstF.Y,
		Z: src.Z*srcF.Z + dst.Z*dstF.Z,
		W: src.W*srcF.W + dst.W*dstF.W,
	}

	s.Next.Accept(f)
}

func blendFactorValue(f BlendFactor, src, dst Register) Register {
	switch f {
	case FactorZero:
		return Register{}
	case FactorOne:
		return Register{1, 1, 1, 1}
	case FactorSrcAlpha:
		return Register{src.W, src.W, src.W, src.W}
	case FactorOneMinusSrcAlpha:
		return Register{1 - src.W, 1 - src.W, 1 - src.W, 1 - src.W}
	case FactorDstAlpha:
		return Register{dst.W, dst.W, dst.W, dst.W}
	case FactorOneMinusDstAlpha:
		return Register{1 - dst.W, 1 - dst.W, 1 - dst.W, 1 - dst.W}
	case FactorSrcColor:
		return src
	case FactorOneMinusSrcColor:
		return Register{1 - src.X, 1 - src.Y, 1 - src.Z, 1 - src.W}
	case FactorDstColor:
		return dst
	case FactorOneMinusDstColor:
		return Register{1 - dst.X, 1 - dst.Y, 1 - dst.Z, 1 - dst.W}
	}
	return Register{}
}

func readColor(rt *RenderTarget, index int) Register {
	o := index * 4
	const inv255 = 1.0 / 255.0
	return Register{
		X: float32(rt.Color[o+2]) * inv255, // R
		Y: float32(rt.Color[o+1]) * inv255, // G
		Z: float32(rt.Color[o+0]) * inv255, // B
		W: 1,
	}
}

// Dither applies an ordered 4x4 Bayer dither to f.Out[0] based on pixel
// position (§4.6).
type Dither struct {
	Next Stage
}

var bayer4x4 = [4][4]float32{
	{0 / 16.0, 8 / 16.0, 2 / 16.0, 10 / 16.0},
	{12 / 16.0, 4 / 16.0, 14 / 16.0, 6 / 16.0},
	{3 / 16.0, 11 / 16.0, 1 / 16.0, 9 / 16.0},
	{15 / 16.0, 7 / 16.0, 13 / 16.0, 5 / 16.0},
}

func (s *Dither) Accept(f *Fragment) {
	const levels = 255.0
	bias := (bayer4x4[f.Y&3][f.X&3] - 0.5) / levels

	c := f.Out[0]
	f.Out[0] = Register{
		X: c.X + bias,
		Y: c.Y + bias,
		Z: c.Z + bias,
		W: c.W,
	}

	s.Next.Accept(f)
}

// FBWriter converts f.Out[0] to 8-bit BGRA and writes RT.Color,
// forcing A=0xFF unless AlphaWrite is configured (§4.6).
type FBWriter struct {
	AlphaWrite bool
}

func (s *FBWriter) Accept(f *Fragment) {
	c := f.Out[0]
	o := f.Index * 4

	f.RT.Color[o+0] = clamp255(c.Z) // B
	f.RT.Color[o+1] = clamp255(c.Y) // G
	f.RT.Color[o+2] = clamp255(c.X) // R

	if s.AlphaWrite {
		f.RT.Color[o+3] = clamp255(c.W)
	} else {
		f.RT.Color[o+3] = 0xFF
	}
}

func clamp255(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(math32.Round(v * 255))
}
