package raster

import "testing"

// === Scenario 5: early-Z cannot enable with discard ===

func TestAssembleFragmentPipeline_DiscardShaderForcesLateZ(t *testing.T) {
	shader := &testShader{discard: func(f *Fragment) bool { return f.X == 0 }}

	dc := &DrawContext{
		RT:         NewRenderTarget(2, 2),
		Enables:    DepthTest | DepthWrite,
		Depth:      Less,
		Shader:     shader,
		Primitives: []Primitive{flatTriangle([2]float32{0, 0}, [2]float32{2, 0}, [2]float32{0, 2}, 0, 1)},
		Log:        DefaultLogger(),
		Pool:       fakePool{},
	}

	pipeline := AssembleFragmentPipeline(dc)
	if pipeline.EarlyZ {
		t.Fatal("assembly selected early-Z for a discard-capable shader")
	}

	// Walk the chain: Ownership -> Interpolate -> shader -> ZTester -> FBWriter.
	own, ok := pipeline.Head.(*OwnershipTest)
	if !ok {
		t.Fatalf("head = %T, want *OwnershipTest", pipeline.Head)
	}
	interp, ok := own.Next.(*InterpolateStage)
	if !ok {
		t.Fatalf("Ownership.Next = %T, want *InterpolateStage", own.Next)
	}
	if interp.Next != Stage(shader) {
		t.Fatalf("Interpolate.Next = %v, want shader", interp.Next)
	}
	if _, ok := shader.next.(*ZTester); !ok {
		t.Fatalf("shader.Next = %T, want *ZTester (depth must run after a discard-capable shader)", shader.next)
	}
}

// === §4.5 ordering for every enable-flag combination ===

func TestAssembleFragmentPipeline_NoEnablesIsMinimalChain(t *testing.T) {
	shader := &testShader{}
	dc := &DrawContext{
		RT:         NewRenderTarget(2, 2),
		Shader:     shader,
		Primitives: []Primitive{flatTriangle([2]float32{0, 0}, [2]float32{2, 0}, [2]float32{0, 2}, 0, 1)},
		Log:        DefaultLogger(),
		Pool:       fakePool{},
	}

	pipeline := AssembleFragmentPipeline(dc)
	if pipeline.EarlyZ {
		t.Fatal("early-Z should never be selected when depth testing is off")
	}

	own, ok := pipeline.Head.(*OwnershipTest)
	if !ok {
		t.Fatalf("head = %T, want *OwnershipTest", pipeline.Head)
	}
	if _, ok := own.Next.(*InterpolateStage); !ok {
		t.Fatalf("Ownership.Next = %T, want *InterpolateStage", own.Next)
	}
	if _, ok := shader.next.(*FBWriter); !ok {
		t.Fatalf("shader.Next = %T, want *FBWriter directly (no enabled stages in between)", shader.next)
	}
}

func TestAssembleFragmentPipeline_ScissorAndStencilPrecedeDepth(t *testing.T) {
	shader := &testShader{}
	dc := &DrawContext{
		RT:         NewRenderTarget(2, 2),
		Enables:    DepthTest | DepthWrite | StencilTest | ScissorTest,
		Depth:      Less,
		Shader:     shader,
		Primitives: []Primitive{flatTriangle([2]float32{0, 0}, [2]float32{2, 0}, [2]float32{0, 2}, 0, 1)},
		Log:        DefaultLogger(),
		Pool:       fakePool{},
	}

	pipeline := AssembleFragmentPipeline(dc)
	if pipeline.EarlyZ {
		t.Fatal("scissor/stencil enabled should force late-Z")
	}

	scissor, ok := shader.next.(*ScissorTest)
	if !ok {
		t.Fatalf("shader.Next = %T, want *ScissorTest", shader.next)
	}
	stencil, ok := scissor.Next.(*StencilTest)
	if !ok {
		t.Fatalf("Scissor.Next = %T, want *StencilTest", scissor.Next)
	}
	if _, ok := stencil.Next.(*ZTester); !ok {
		t.Fatalf("Stencil.Next = %T, want *ZTester", stencil.Next)
	}
}

func TestAssembleFragmentPipeline_ScissorAndStencilDropWhenDepthOff(t *testing.T) {
	shader := &testShader{}
	dc := &DrawContext{
		RT:         NewRenderTarget(2, 2),
		Enables:    StencilTest | ScissorTest,
		Shader:     shader,
		Primitives: []Primitive{flatTriangle([2]float32{0, 0}, [2]float32{2, 0}, [2]float32{0, 2}, 0, 1)},
		Log:        DefaultLogger(),
		Pool:       fakePool{},
	}

	pipeline := AssembleFragmentPipeline(dc)
	if pipeline.EarlyZ {
		t.Fatal("no depth test enabled, early-Z must be false")
	}

	if _, ok := shader.next.(*ScissorTest); ok {
		t.Fatal("ScissorTest must not be wired when depth testing is off")
	}
	if _, ok := shader.next.(*StencilTest); ok {
		t.Fatal("StencilTest must not be wired when depth testing is off")
	}
	if _, ok := shader.next.(*FBWriter); !ok {
		t.Fatalf("shader.Next = %T, want *FBWriter directly (depth off drops scissor/stencil too)", shader.next)
	}
}

func TestAssembleFragmentPipeline_BlendAndDitherTrailFBWriter(t *testing.T) {
	shader := &testShader{}
	dc := &DrawContext{
		RT:         NewRenderTarget(2, 2),
		Enables:    Blend | Dither,
		Shader:     shader,
		Primitives: []Primitive{flatTriangle([2]float32{0, 0}, [2]float32{2, 0}, [2]float32{0, 2}, 0, 1)},
		Log:        DefaultLogger(),
		Pool:       fakePool{},
	}

	pipeline := AssembleFragmentPipeline(dc)
	if pipeline.EarlyZ {
		t.Fatal("no depth test enabled, early-Z must be false")
	}

	blend, ok := shader.next.(*Blender)
	if !ok {
		t.Fatalf("shader.Next = %T, want *Blender", shader.next)
	}
	dither, ok := blend.Next.(*Dither)
	if !ok {
		t.Fatalf("Blender.Next = %T, want *Dither", blend.Next)
	}
	if _, ok := dither.Next.(*FBWriter); !ok {
		t.Fatalf("Dither.Next = %T, want *FBWriter", dither.Next)
	}
}
