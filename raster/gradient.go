package raster

// Gradient holds a triangle's precomputed screen-space partial
// derivatives of attr/w and 1/w, plus the per-vertex seed values and
// the mip/LOD coefficients for the designated texture-coordinate
// register (§4.3).
type Gradient struct {
	// Start[k][i] is register i's (attr/w) seed at vertex k, except
	// Start[k][0] which stores (x, y, z, 1/w): z stays linear (depth
	// must not be perspective-corrected) while w is replaced by its
	// reciprocal.
	Start [3][]Register

	GradX []Register // ∂(reg/w)/∂x per register
	GradY []Register // ∂(reg/w)/∂y per register

	// LOD coefficients for the texture-coordinate register, used for
	// mip-level selection downstream (§4.3 step 5). Only meaningful
	// when TexCoordLoc >= 0.
	A, B, C, D, E, F float32
	TexCoordLoc      int
}

// GradientEngine precomputes Gradient records for triangles about to
// enter the scan loop. TexCoordLoc identifies the shader's declared
// texture-coordinate register (§6); pass -1 if the active fragment
// shader declares none, which skips the LOD coefficient computation.
type GradientEngine struct {
	TexCoordLoc int
}

// Compute builds the Gradient record for primitive p (§4.3).
func (g *GradientEngine) Compute(p *Primitive) Gradient {
	n := p.RegsPerVertex()

	var grad Gradient
	grad.TexCoordLoc = g.TexCoordLoc

	for k := 0; k < 3; k++ {
		grad.Start[k] = make([]Register, n)

		wRecip := 1 / p.V[k].Regs[0].W
		pos := p.V[k].Regs[0]
		grad.Start[k][0] = Register{pos.X, pos.Y, pos.Z, wRecip}

		for i := 1; i < n; i++ {
			grad.Start[k][i] = p.V[k].Regs[i].Scale(wRecip)
		}
	}

	grad.GradX = make([]Register, n)
	grad.GradY = make([]Register, n)

	pos0 := p.V[0].Regs[0]
	pos1 := p.V[1].Regs[0]
	pos2 := p.V[2].Regs[0]

	a := p.AreaReciprocal
	y12 := (pos1.Y - pos2.Y) * a
	y20 := (pos2.Y - pos0.Y) * a
	y01 := (pos0.Y - pos1.Y) * a

	x21 := (pos2.X - pos1.X) * a
	x02 := (pos0.X - pos2.X) * a
	x10 := (pos1.X - pos0.X) * a

	component := func(c func(Register) float32, set func(*Register, float32)) {
		for i := 0; i < n; i++ {
			gx := y12*c(grad.Start[0][i]) + y20*c(grad.Start[1][i]) + y01*c(grad.Start[2][i])
			gy := x21*c(grad.Start[0][i]) + x02*c(grad.Start[1][i]) + x10*c(grad.Start[2][i])
			set(&grad.GradX[i], gx)
			set(&grad.GradY[i], gy)
		}
	}

	component(func(r Register) float32 { return r.X }, func(r *Register, v float32) { r.X = v })
	component(func(r Register) float32 { return r.Y }, func(r *Register, v float32) { r.Y = v })
	component(func(r Register) float32 { return r.Z }, func(r *Register, v float32) { r.Z = v })
	component(func(r Register) float32 { return r.W }, func(r *Register, v float32) { r.W = v })

	// Position is exact in screen space: x,y are the pixel grid
	// itself, not perspective-divided attributes.
	grad.GradX[0].X, grad.GradX[0].Y = 1, 0
	grad.GradY[0].X, grad.GradY[0].Y = 0, 1

	if g.TexCoordLoc >= 0 && g.TexCoordLoc < n {
		loc := g.TexCoordLoc
		dudx, dvdx := grad.GradX[loc].X, grad.GradX[loc].Y
		dudy, dvdy := grad.GradY[loc].X, grad.GradY[loc].Y
		dzdx, dzdy := grad.GradX[0].W, grad.GradY[0].W
		z0 := grad.Start[0][0].W
		u0, v0 := grad.Start[0][loc].X, grad.Start[0][loc].Y

		grad.A = dudx*dzdy - dzdx*dudy
		grad.B = dvdx*dzdy - dzdx*dvdy
		grad.C = dudx*z0 - dzdx*u0
		grad.D = dvdx*z0 - dzdx*v0
		grad.E = dudy*z0 - dzdy*u0
		grad.F = dvdy*z0 - dzdy*v0
	}

	return grad
}
