package raster

import "github.com/chewxy/math32"

// span is a horizontal run of pixels within one triangle on one
// scanline, bounded by that triangle's two AET edges (§4.2).
type span struct {
	xl, xr float32
	tri    *triangleState
	y      int
}

// ScanlineRasterizer owns the GET/AET scan loop: it is the rasterizer
// stage every draw enters at (§1, §4.2). It is stateless between
// draws — all per-draw state lives in the EdgeTable/AET it builds and
// releases within Draw.
type ScanlineRasterizer struct {
	Grad GradientEngine
}

// Draw scan-converts dc.Primitives against dc.RT, assembling the
// fragment pipeline from dc's enable flags and dispatching one
// worker-pool task per scanline's spans. It blocks until every
// dispatched task has returned (§4.2, §5) before releasing the
// per-draw edge/triangle arena.
func (r *ScanlineRasterizer) Draw(dc *DrawContext) error {
	et, err := BuildEdgeTable(dc.Primitives, &r.Grad, dc.Log)
	if err != nil {
		return err
	}

	pipeline := AssembleFragmentPipeline(dc)

	aet := make([]*Edge, 0, 32)

	for y := et.YMin; y <= et.YMax; y++ {
		aet = removeExpired(aet, y)
		aet = activateFromGET(aet, et, y, dc.Log)

		for _, e := range aet {
			e.Active = true
		}

		spans := emitSpans(aet)

		if len(spans) > 0 {
			dispatchSpans(dc, pipeline, spans, y)
		}

		for _, e := range aet {
			e.X += e.DX
		}
	}

	dc.Pool.WaitForAll()

	return nil
}

func removeExpired(aet []*Edge, y int) []*Edge {
	out := aet[:0]
	for _, e := range aet {
		if y > e.YMax {
			e.Parent.unsetActiveEdge(e)
			continue
		}
		out = append(out, e)
	}
	return out
}

func activateFromGET(aet []*Edge, et *EdgeTable, y int, log Logger) []*Edge {
	for _, e := range et.get[y] {
		if err := e.Parent.setActiveEdge(e, log); err != nil {
			continue
		}
		aet = append(aet, e)
	}
	return aet
}

// emitSpans walks the AET pairing each still-active edge with its
// triangle's sibling active edge, marking both consumed so each pair
// is processed once (§4.2 step 4).
func emitSpans(aet []*Edge) []span {
	var spans []span

	for _, e := range aet {
		if !e.Active {
			continue
		}

		adj := e.Parent.adjacentEdge(e)
		if adj == nil {
			continue
		}

		e.Active = false
		adj.Active = false

		xl, xr := e.X, adj.X
		if xl > xr {
			xl, xr = xr, xl
		}

		// Skip spans that hold no pixel center under the same
		// ceil(x-0.5) bounds runSpan walks.
		if math32.Ceil(xr-0.5) <= math32.Ceil(xl-0.5) {
			continue
		}

		spans = append(spans, span{xl: xl, xr: xr, tri: e.Parent})
	}

	return spans
}

// dispatchSpans packages one scanline's spans into a single task and
// submits it to the worker pool; ownership of spans transfers to the
// task (§4.2 step 5).
func dispatchSpans(dc *DrawContext, pipeline *FragmentPipeline, spans []span, y int) {
	task := dc.Pool.CreateTask(func() {
		runSpans(dc, pipeline, spans, y)
	})
	dc.Pool.Submit(task)
}

func runSpans(dc *DrawContext, pipeline *FragmentPipeline, spans []span, y int) {
	n := dc.Primitives[0].RegsPerVertex()

	var f Fragment
	f.In = make([]Register, 0, n)
	f.Out = make([]Register, n)

	for _, sp := range spans {
		runSpan(dc, pipeline, &f, sp, y)
	}
}

func runSpan(dc *DrawContext, pipeline *FragmentPipeline, f *Fragment, sp span, y int) {
	tri := sp.tri
	grad := &tri.Grad
	pos0 := tri.Prim.V[0].Position()

	// Only pixels inside dc.RT are delivered to the pipeline.
	if y < 0 || y >= dc.RT.Height {
		return
	}

	xstart := int(math32.Ceil(sp.xl - 0.5))
	xend := int(math32.Ceil(sp.xr - 0.5))
	if xstart < 0 {
		xstart = 0
	}
	if xend > dc.RT.Width {
		xend = dc.RT.Width
	}
	if xstart >= xend {
		return
	}

	dx := float32(xstart) + 0.5 - pos0.X
	dy := float32(y) + 0.5 - pos0.Y
	start := EvaluateAt(grad.Start[0], grad.GradX, grad.GradY, dx, dy)

	f.Reseed(start, xstart, y, start[0].Z, grad, dc.RT)

	for x := xstart; x < xend; x++ {
		pipeline.Head.Accept(f)
		f.Advance()
	}
}
