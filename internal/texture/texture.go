// Package texture loads and samples images for fragment shaders,
// adapted from the teacher's texture.go (LoadTexture/ConvertPosition/
// Get), generalized from a single hardwired RGBA decode into whatever
// codec is registered with image.Decode (png/jpeg/gif via stdlib,
// bmp/webp via golang.org/x/image once imported for side effects by a
// caller).
package texture

import (
	"fmt"
	"image"
	"os"

	"github.com/chewxy/math32"
)

const rgbToFloat = 1.0 / 255.0

// Texture is a decoded RGBA8 image sampled in normalized UV space.
type Texture struct {
	Width, Height int
	Data          []byte // RGBA8, row-major, top-left origin
}

// Load decodes the image at path using whatever format is registered
// with the stdlib image package at call time.
func Load(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %q: %w", path, err)
	}

	bounds := img.Bounds()
	t := &Texture{Width: bounds.Dx(), Height: bounds.Dy()}
	t.Data = make([]byte, 0, t.Width*t.Height*4)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			t.Data = append(t.Data, byte(r>>8), byte(g>>8), byte(b>>8), byte(a>>8))
		}
	}

	return t, nil
}

// Index maps a (u, v) texture coordinate (v flipped to top-left
// origin, matching the teacher's ConvertPosition) to a byte offset
// into Data, wrapping out-of-range coordinates.
func (t *Texture) Index(u, v float32) int {
	tx := wrap(int(u*float32(t.Width)), t.Width)
	ty := wrap(int((1-v)*float32(t.Height)), t.Height)

	return (ty*t.Width + tx) * 4
}

// Sample returns the RGBA color at (u, v) as normalized floats.
func (t *Texture) Sample(u, v float32) (r, g, b, a float32) {
	i := t.Index(u, v)
	return float32(t.Data[i]) * rgbToFloat,
		float32(t.Data[i+1]) * rgbToFloat,
		float32(t.Data[i+2]) * rgbToFloat,
		float32(t.Data[i+3]) * rgbToFloat
}

// Bilinear samples with bilinear filtering between the four nearest texels.
func (t *Texture) Bilinear(u, v float32) (r, g, b, a float32) {
	fx := u*float32(t.Width) - 0.5
	fy := (1-v)*float32(t.Height) - 0.5

	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	sample := func(x, y int) (float32, float32, float32, float32) {
		x = wrap(x, t.Width)
		y = wrap(y, t.Height)
		i := (y*t.Width + x) * 4
		return float32(t.Data[i]) * rgbToFloat,
			float32(t.Data[i+1]) * rgbToFloat,
			float32(t.Data[i+2]) * rgbToFloat,
			float32(t.Data[i+3]) * rgbToFloat
	}

	r00, g00, b00, a00 := sample(x0, y0)
	r10, g10, b10, a10 := sample(x0+1, y0)
	r01, g01, b01, a01 := sample(x0, y0+1)
	r11, g11, b11, a11 := sample(x0+1, y0+1)

	lerp := func(a, b, t float32) float32 { return a + (b-a)*t }

	r = lerp(lerp(r00, r10, tx), lerp(r01, r11, tx), ty)
	g = lerp(lerp(g00, g10, tx), lerp(g01, g11, tx), ty)
	b = lerp(lerp(b00, b10, tx), lerp(b01, b11, tx), ty)
	a = lerp(lerp(a00, a10, tx), lerp(a01, a11, tx), ty)
	return
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
