package raster

// RenderTarget is the externally owned framebuffer set: BGRA8888
// color, linear-float depth, and 8-bit stencil, all row-major with
// the origin at the bottom-left (§6). Span tasks read and write these
// buffers concurrently at per-pixel granularity; see §5 for the
// ordering guarantees callers may rely on.
type RenderTarget struct {
	Width, Height int

	Color   []byte    // BGRA8888, len == Width*Height*4
	Depth   []float32 // len == Width*Height
	Stencil []byte    // len == Width*Height
}

// NewRenderTarget allocates a zeroed render target of the given size.
func NewRenderTarget(width, height int) *RenderTarget {
	return &RenderTarget{
		Width:   width,
		Height:  height,
		Color:   make([]byte, width*height*4),
		Depth:   make([]float32, width*height),
		Stencil: make([]byte, width*height),
	}
}

// IndexAt returns the bottom-origin row-major buffer index for (x, y).
func (rt *RenderTarget) IndexAt(x, y int) int {
	return (rt.Height-y-1)*rt.Width + x
}

// Enables is the bitset of per-draw fixed-function toggles consumed
// from the GL state machine (§6).
type Enables uint32

const (
	DepthTest Enables = 1 << iota
	StencilTest
	ScissorTest
	Blend
	Dither
	DepthWrite
	AlphaWrite
)

func (e Enables) has(bit Enables) bool { return e&bit != 0 }

// CompareFunc is the comparison used by ZTester and StencilTest, following the OpenGL
// ES depth/stencil function vocabulary.
type CompareFunc int

const (
	Never CompareFunc = iota
	Less
	LEqual
	Greater
	GEqual
	Equal
	NotEqual
	Always
)

func (f CompareFunc) passes(ref, value float32) bool {
	switch f {
	case Never:
		return false
	case Less:
		return ref < value
	case LEqual:
		return ref <= value
	case Greater:
		return ref > value
	case GEqual:
		return ref >= value
	case Equal:
		return ref == value
	case NotEqual:
		return ref != value
	case Always:
		return true
	}
	return false
}

// StencilOp is the stencil update action applied on fail/depth-fail/pass.
type StencilOp int

const (
	Keep StencilOp = iota
	ZeroOp
	Replace
	Incr
	Decr
	Invert
	IncrWrap
	DecrWrap
)

func (op StencilOp) apply(cur, ref byte) byte {
	switch op {
	case Keep:
		return cur
	case ZeroOp:
		return 0
	case Replace:
		return ref
	case Incr:
		if cur == 0xFF {
			return cur
		}
		return cur + 1
	case Decr:
		if cur == 0 {
			return cur
		}
		return cur - 1
	case Invert:
		return ^cur
	case IncrWrap:
		return cur + 1
	case DecrWrap:
		return cur - 1
	}
	return cur
}

// StencilState configures StencilTest: the comparison func, the
// reference/mask pair, and the three ops applied on fail, depth-fail
// and pass respectively, per the OpenGL ES stencil contract.
type StencilState struct {
	Func        CompareFunc
	Ref         byte
	Mask        byte
	OnFail      StencilOp
	OnDepthFail StencilOp
	OnPass      StencilOp
}

// BlendFactor is the OpenGL ES blend factor vocabulary.
type BlendFactor int

const (
	FactorZero BlendFactor = iota
	FactorOne
	FactorSrcAlpha
	FactorOneMinusSrcAlpha
	FactorDstAlpha
	FactorOneMinusDstAlpha
	FactorSrcColor
	FactorOneMinusSrcColor
	FactorDstColor
	FactorOneMinusDstColor
)

// BlendState configures Blender: out = Src*srcFactor + Dst*dstFactor.
type BlendState struct {
	Src BlendFactor
	Dst BlendFactor
}

// ScissorBox bounds ScissorTest to [X0,X1) x [Y0,Y1).
type ScissorBox struct {
	X0, Y0, X1, Y1 int
}

func (s ScissorBox) contains(x, y int) bool {
	return x >= s.X0 && x < s.X1 && y >= s.Y0 && y < s.Y1
}

// DrawContext bundles everything one draw call needs: the fixed
// render target, the enable flags and their stage configuration, the
// fragment shader, and the primitive batch (§6).
type DrawContext struct {
	RT *RenderTarget

	Enables Enables
	Scissor ScissorBox
	Stencil StencilState
	Depth   CompareFunc
	Blend   BlendState

	Shader     FragmentShader
	Primitives []Primitive

	Log  Logger
	Pool TaskPool
}
