package demoshader

import (
	"testing"

	"github.com/samuelscerri/polygoncore/internal/texture"
	"github.com/samuelscerri/polygoncore/raster"
)

func whiteTexture() *texture.Texture {
	return &texture.Texture{
		Width:  1,
		Height: 1,
		Data:   []byte{255, 255, 255, 255},
	}
}

func translucentTexture(alpha byte) *texture.Texture {
	return &texture.Texture{
		Width:  1,
		Height: 1,
		Data:   []byte{10, 20, 30, alpha},
	}
}

type recordingStage struct {
	visited bool
}

func (r *recordingStage) SetNext(raster.Stage) {}
func (r *recordingStage) Accept(f *raster.Fragment) { r.visited = true }

// === Material ===

func TestMaterial_CanDiscardReflectsAlphaCutoff(t *testing.T) {
	m := &Material{Tex: whiteTexture(), AlphaCutoff: 0}
	if m.CanDiscard() {
		t.Error("CanDiscard() should be false when AlphaCutoff is 0")
	}

	m.AlphaCutoff = 0.5
	if !m.CanDiscard() {
		t.Error("CanDiscard() should be true when AlphaCutoff > 0")
	}
}

func TestMaterial_TextureCoordLocationMatchesConstant(t *testing.T) {
	m := &Material{}
	if got := m.TextureCoordLocation(); got != TexCoordReg {
		t.Errorf("got %d, want %d", got, TexCoordReg)
	}
}

func TestMaterial_AcceptDiscardsBelowCutoff(t *testing.T) {
	m := &Material{Tex: translucentTexture(10), AlphaCutoff: 0.5}
	next := &recordingStage{}
	m.SetNext(next)

	f := &raster.Fragment{In: []raster.Register{{}, {X: 0, Y: 0}}}
	m.Accept(f)

	if !f.Discarded {
		t.Error("fragment below alpha cutoff should be discarded")
	}
	if next.visited {
		t.Error("discarded fragment must not reach the next stage")
	}
}

func TestMaterial_AcceptWritesColorAndForwards(t *testing.T) {
	m := &Material{Tex: whiteTexture(), AlphaCutoff: 0}
	next := &recordingStage{}
	m.SetNext(next)

	f := &raster.Fragment{In: []raster.Register{{}, {X: 0, Y: 0}}, Out: make([]raster.Register, 1)}
	m.Accept(f)

	if f.Discarded {
		t.Error("opaque fragment with AlphaCutoff 0 should not be discarded")
	}
	if f.Out[0].X != 1 || f.Out[0].Y != 1 || f.Out[0].Z != 1 || f.Out[0].W != 1 {
		t.Errorf("got out=%+v, want opaque white (1,1,1,1)", f.Out[0])
	}
	if !next.visited {
		t.Error("accepted fragment should forward to the next stage")
	}
}

func TestMaterial_AcceptDoesNotPanicWithNilNext(t *testing.T) {
	m := &Material{Tex: whiteTexture(), AlphaCutoff: 0}
	f := &raster.Fragment{In: []raster.Register{{}, {X: 0, Y: 0}}, Out: make([]raster.Register, 1)}
	m.Accept(f)
}
