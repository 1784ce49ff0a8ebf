package raster

// InterpolateStage wraps an Interpolator as a Stage so
// FragmentPipeline assembly can splice it into the chain like any
// other stage (§4.5).
type InterpolateStage struct {
	Interp Interpolator
	Next   Stage
}

func (s *InterpolateStage) Accept(f *Fragment) {
	s.Interp.Evaluate(f)
	s.Next.Accept(f)
}

// Interpolator turns a Fragment's scratch Start accumulator into
// perspective-correct attribute values, advancing it by one pixel
// first when the fragment hasn't been stepped yet (§4.4).
type Interpolator struct{}

// Evaluate lazily advances and perspective-divides f's register file.
// Seeded fragments (the first pixel of a span) are divided without an
// extra step, since the span seed already equals the evaluated start.
// Advanced fragments are stepped by one pixel's worth of gradient
// before dividing. Fragments already Evaluated are left untouched,
// which is what makes re-entrant calls (e.g. a kill stage probing In
// before the shader runs) idempotent: calling Evaluate twice in a row
// for the same pixel reproduces the same In (§8 interpolator
// idempotence law).
func (interp *Interpolator) Evaluate(f *Fragment) {
	if f.State == Evaluated {
		return
	}

	if f.State == Advanced {
		f.Start = stepRegisters(f.Start, f.Grad.GradX)
	}

	f.In = perspectiveCorrect(f.Start, f.In)
	f.State = Evaluated
}

// EvaluateAt computes out = in + Gx*dx + Gy*dy without mutating in,
// used to seed a span's starting register file (§4.4 "evaluate at
// offset").
func EvaluateAt(in, gx, gy []Register, dx, dy float32) []Register {
	out := make([]Register, len(in))
	for i := range in {
		out[i] = in[i].AddScaled(gx[i], dx).AddScaled(gy[i], dy)
	}
	return out
}

func stepRegisters(in, grad []Register) []Register {
	for i := range in {
		in[i] = in[i].Add(grad[i])
	}
	return in
}

// perspectiveCorrect converts (attr/w, 1/w) back to attr: register 0's
// W channel becomes true w (the reciprocal of the stored 1/w), and
// every other register is scaled by that true w.
func perspectiveCorrect(in []Register, out []Register) []Register {
	if cap(out) < len(in) {
		out = make([]Register, len(in))
	} else {
		out = out[:len(in)]
	}

	wTrue := 1 / in[0].W
	out[0] = in[0]
	out[0].W = wTrue

	for i := 1; i < len(in); i++ {
		out[i] = in[i].Scale(wTrue)
	}

	return out
}
