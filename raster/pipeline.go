package raster

// FragmentPipeline is the assembled post-rasterizer stage chain for
// one draw: its Head is what the scan loop hands each fragment to
// (§4.5). Assembly is rebuilt whenever the relevant enable set
// changes — it is not a long-lived object shared across draws.
type FragmentPipeline struct {
	Head Stage

	// EarlyZ records whether depth testing was scheduled before the
	// shader, purely so tests and callers can introspect the decision
	// §8 scenario 5 asks for ("verified by inspecting the constructed
	// stage sequence").
	EarlyZ bool
}

// AssembleFragmentPipeline builds the stage chain from dc's enable
// flags and shader capabilities, following the table in §4.5.
//
// Early-Z (depth before the shader) is only selected when depth
// testing is on, the shader cannot discard, and neither scissor nor
// stencil testing would otherwise need to run first — a discarded
// fragment must never be allowed to write depth. Any other depth-test
// configuration runs depth last, after the shader and any scissor/
// stencil kill stages; configuration inconsistencies described in
// spec.md §7 (e.g. early-Z requested with a discard-capable shader)
// are not errors, they are silently resolved by this branching.
//
// OwnershipTest always sits at the very front of the chain, ahead of
// even early-Z depth: it governs whether a pixel belongs to this
// context's surface at all, before any other stage spends work on it.
func AssembleFragmentPipeline(dc *DrawContext) *FragmentPipeline {
	// Build tail-to-head, starting from fbwrite and prepending.
	tail := Stage(&FBWriter{AlphaWrite: dc.Enables.has(AlphaWrite)})

	if dc.Enables.has(Dither) {
		tail = &Dither{Next: tail}
	}
	if dc.Enables.has(Blend) {
		tail = &Blender{State: dc.Blend, Next: tail}
	}

	depthOn := dc.Enables.has(DepthTest)
	earlyZ := depthOn &&
		!dc.Shader.CanDiscard() &&
		!dc.Enables.has(ScissorTest) &&
		!dc.Enables.has(StencilTest)

	var head Stage

	if earlyZ {
		setShaderNext(dc.Shader, tail)
		interp := &InterpolateStage{Next: dc.Shader}
		z := &ZTester{Func: dc.Depth, Write: dc.Enables.has(DepthWrite), Next: interp}
		head = &OwnershipTest{Next: z}
		return &FragmentPipeline{Head: head, EarlyZ: true}
	}

	if depthOn {
		tail = &ZTester{Func: dc.Depth, Write: dc.Enables.has(DepthWrite), Next: tail}
		if dc.Enables.has(StencilTest) {
			tail = &StencilTest{State: dc.Stencil, DepthTest: depthOn, DepthFunc: dc.Depth, Next: tail}
		}
		if dc.Enables.has(ScissorTest) {
			tail = &ScissorTest{Box: dc.Scissor, Next: tail}
		}
	}

	setShaderNext(dc.Shader, tail)
	interp := &InterpolateStage{Next: dc.Shader}
	head = &OwnershipTest{Next: interp}

	return &FragmentPipeline{Head: head, EarlyZ: false}
}

// setShaderNext wires the fragment shader's successor. FragmentShader
// implementations own a Next field accessed through this narrow
// interface, mirroring the way every other Stage here holds its own
// Next rather than the assembler threading payload types through
// a generic setter.
func setShaderNext(shader FragmentShader, next Stage) {
	if setter, ok := shader.(interface{ SetNext(Stage) }); ok {
		setter.SetNext(next)
	}
}
