// Package demoshader is the concrete raster.FragmentShader both demo
// front ends use: a single textured, optionally alpha-tested material,
// adapted from the teacher's BasicShader (main.go) and Shader (shader.go)
// — generalized from a 3-float (r,g,b) callback into a raster.Stage
// that reads register 1 as UV and samples a texture.Texture.
package demoshader

import (
	"github.com/samuelscerri/polygoncore/internal/texture"
	"github.com/samuelscerri/polygoncore/raster"
)

// TexCoordReg is the register index this shader expects to carry UV,
// matching the value the ScanlineRasterizer's GradientEngine.TexCoordLoc
// must be configured with so LOD coefficients are computed for it.
const TexCoordReg = 1

// Material is a textured fragment shader: it samples Tex at the
// fragment's perspective-corrected UV and optionally discards texels
// below AlphaCutoff, matching the teacher's alpha-tested Brick texture
// usage in model.go.
type Material struct {
	Tex         *texture.Texture
	AlphaCutoff float32 // 0 disables alpha testing
	Next        raster.Stage
}

func (m *Material) SetNext(next raster.Stage) { m.Next = next }

func (m *Material) Accept(f *raster.Fragment) {
	uv := f.In[TexCoordReg]
	r, g, b, a := m.Tex.Bilinear(uv.X, uv.Y)

	if m.AlphaCutoff > 0 && a < m.AlphaCutoff {
		f.Discarded = true
		return
	}

	f.Out[0] = raster.Register{X: r, Y: g, Z: b, W: a}

	if m.Next != nil {
		m.Next.Accept(f)
	}
}

func (m *Material) CanDiscard() bool { return m.AlphaCutoff > 0 }

func (m *Material) TextureCoordLocation() int { return TexCoordReg }
