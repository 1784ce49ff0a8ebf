package raster

// fakeTask is the Task handle fakePool hands back; it carries the
// wrapped function directly since the pool runs it synchronously.
type fakeTask struct {
	fn func()
}

// fakePool runs every submitted task immediately, inline with Submit,
// so tests can assert on RenderTarget/stencil/shader state right after
// Draw returns without needing a real goroutine barrier. It still
// satisfies TaskPool's contract: WaitForAll is a no-op since nothing is
// ever actually outstanding.
type fakePool struct{}

func (fakePool) CreateTask(fn func()) Task { return &fakeTask{fn: fn} }

func (fakePool) Submit(t Task) {
	if tk, ok := t.(*fakeTask); ok && tk != nil {
		tk.fn()
	}
}

func (fakePool) WaitForAll() {}

// testShader is a minimal FragmentShader: it records every (x, y) it
// is invoked at, optionally discards per a predicate, and otherwise
// writes a fixed color into Out[0] and forwards to Next.
type testShader struct {
	next    Stage
	color   Register
	discard func(f *Fragment) bool
	visited map[[2]int]int
}

func (s *testShader) SetNext(n Stage) { s.next = n }

func (s *testShader) Accept(f *Fragment) {
	if s.visited != nil {
		s.visited[[2]int{f.X, f.Y}]++
	}

	if s.discard != nil && s.discard(f) {
		f.Discarded = true
		return
	}

	f.Out[0] = s.color

	if s.next != nil {
		s.next.Accept(f)
	}
}

func (s *testShader) CanDiscard() bool { return s.discard != nil }

func (s *testShader) TextureCoordLocation() int { return -1 }

// flatTriangle builds a single-register (position-only) Primitive from
// three screen-space (x, y) points at the given depth and w, with the
// area reciprocal computed from the signed area.
func flatTriangle(p0, p1, p2 [2]float32, z, w float32) Primitive {
	area2 := (p1[0]-p0[0])*(p2[1]-p0[1]) - (p2[0]-p0[0])*(p1[1]-p0[1])

	mk := func(p [2]float32) Vertex {
		return Vertex{Regs: []Register{{X: p[0], Y: p[1], Z: z, W: w}}}
	}

	return Primitive{
		V:              [3]Vertex{mk(p0), mk(p1), mk(p2)},
		AreaReciprocal: 1 / area2,
	}
}
