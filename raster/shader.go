package raster

// FragmentShader is the opaque per-pixel shading stage the core
// invokes but never implements (§1, §6). It is also a Stage, so it
// composes directly into the chain FragmentPipeline assembles.
type FragmentShader interface {
	Stage

	// CanDiscard reports whether this program may set f.Discarded
	// from within Accept. FragmentPipeline assembly uses this to
	// decide whether early-Z is safe (§4.5): a shader that can
	// discard must never run after the depth write.
	CanDiscard() bool

	// TextureCoordLocation returns the register index carrying the
	// primary texture coordinate, or -1 if the shader samples none.
	// The core does not call it: GradientEngine computes LOD
	// coefficients (§4.3 step 5) for its own TexCoordLoc field, which
	// the caller sets to this same value.
	TextureCoordLocation() int
}
