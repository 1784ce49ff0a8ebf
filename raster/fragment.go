package raster

// ValidState models the lazy-interpolation state machine a Fragment's
// register file moves through as it crosses stage boundaries (design
// note in spec.md §9): SEEDED fragments carry an already-evaluated
// start vector (the span seed); ADVANCED fragments have moved one pixel
// right but their scratch Start has not yet been stepped by the gradient
// nor perspective-divided into In; EVALUATED fragments have a
// ready-to-shade In.
type ValidState int

const (
	// Seeded marks a span's first pixel: Start already equals the
	// evaluated seed, so perspective divide may run immediately.
	Seeded ValidState = iota
	// Advanced marks a fragment that moved one pixel right since In
	// was last evaluated; the Interpolator steps Start by the
	// per-pixel gradient and re-divides it into In.
	Advanced
	// Evaluated marks a fragment whose In is ready for the shader.
	Evaluated
)

// Fragment is the single-pixel descriptor (Fsio in the original) that
// flows through the post-rasterizer stage chain. One Fragment is
// reused, mutated in place, across an entire span.
type Fragment struct {
	X, Y  int
	Z     float32 // linear depth, advanced independently of perspective-correct attributes
	Index int     // (H-1-Y)*W + X, bottom-origin row-major

	Grad *Gradient

	// Start is the interpolation scratch ("m_priv" in the original):
	// the not-yet-perspective-divided (attr/w, 1/w) accumulator the
	// Interpolator advances one pixel at a time.
	Start []Register

	In  []Register // perspective-corrected attribute values, valid once State == Evaluated
	Out []Register // fragment shader / blend output, register 0 is color

	State ValidState

	Discarded bool // set by the fragment shader to kill the fragment
	RT        *RenderTarget
}

// Valid reports whether In currently holds data a downstream stage may
// read without first asking the Interpolator to evaluate it.
func (f *Fragment) Valid() bool {
	return f.State == Evaluated
}

// Reseed installs a freshly evaluated start vector at the first pixel
// of a new span (§4.2 span task seeding).
func (f *Fragment) Reseed(start []Register, x, y int, z float32, grad *Gradient, rt *RenderTarget) {
	f.Start = start
	f.X, f.Y, f.Z = x, y, z
	f.Grad = grad
	f.RT = rt
	f.Index = (rt.Height-y-1)*rt.Width + x
	f.State = Seeded
	f.Discarded = false
}

// Advance moves the fragment one pixel to the right within its span,
// clearing the cached-interpolation flag so downstream consumers know
// In must be re-derived before use (§3, §4.2).
func (f *Fragment) Advance() {
	f.X++
	f.Z += f.Grad.GradX[0].Z
	f.Index++
	f.State = Advanced
	f.Discarded = false
}
