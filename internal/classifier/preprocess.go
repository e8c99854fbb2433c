package classifier

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

type Layout string

const (
	LayoutNHWC Layout = "NHWC"
	LayoutNCHW Layout = "NCHW"
)

func ParseLayout(s string) (Layout, error) {
	switch Layout(strings.ToUpper(strings.TrimSpace(s))) {
	case "", LayoutNHWC:
		return LayoutNHWC, nil
	case LayoutNCHW:
		return LayoutNCHW, nil
	}
	return "", fmt.Errorf("unknown tensor layout %q", s)
}

// Tensor is a dense float32 batch.
type Tensor struct {
	Shape []int64
	Data  []float32
}

// Preprocess turns img into a single-image batch: RGB, size x size bicubic
// resize, values scaled to [0,1].
func Preprocess(img image.Image, size int, layout Layout) Tensor {
	rgb := toRGB(img)
	if b := rgb.Bounds(); b.Dx() != size || b.Dy() != size {
		rgb = imaging.Clone(resize.Resize(uint(size), uint(size), rgb, resize.Bicubic))
	}

	plane := size * size
	data := make([]float32, 3*plane)
	for y := 0; y < size; y++ {
		row := rgb.Pix[y*rgb.Stride:]
		for x := 0; x < size; x++ {
			px := row[x*4 : x*4+3]
			p := y*size + x
			for c := 0; c < 3; c++ {
				v := float32(px[c]) / 255
				if layout == LayoutNCHW {
					data[c*plane+p] = v
				} else {
					data[p*3+c] = v
				}
			}
		}
	}

	shape := []int64{1, int64(size), int64(size), 3}
	if layout == LayoutNCHW {
		shape = []int64{1, 3, int64(size), int64(size)}
	}
	return Tensor{Shape: shape, Data: data}
}

// toRGB drops alpha without compositing and expands grayscale, returning an
// opaque image anchored at the origin.
func toRGB(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}
