package hdrstack

import(
	"github.com/abworrall/stackhdr/pkg/emath"
)

// Extract reduces the image to 8-bit YUV420, with the given line to
// line stride for luma (chroma rows get stride/2). The buffer is
// stride*Height*3/2 bytes. Chroma is re-biased to 128 and clamped;
// luma is expected to be in range already, after tonemapping.
func (im *WideImage)Extract(stride int) []byte {
	w, h := im.Width, im.Height
	w2, h2, stride2 := w/2, h/2, stride/2
	dest := make([]byte, stride*h*3/2)
	ratio := float64(im.DynamicRange / 256)
	if ratio < 1 {
		ratio = 1
	}

	Y := im.Y()
	for y:=0; y<h; y++ {
		row := dest[y*stride:]
		for x:=0; x<w; x++ {
			row[x] = uint8(int(float64(Y[y*w + x]) / ratio))
		}
	}

	destU := dest[stride*h:]
	destV := destU[stride2*h2:]
	U, V := im.U(), im.V()
	for y:=0; y<h2; y++ {
		for x:=0; x<w2; x++ {
			u := int(float64(U[y*w2 + x]) / ratio)
			v := int(float64(V[y*w2 + x]) / ratio)
			destU[y*stride2 + x] = uint8(emath.ClampInt(u + 128, 0, 255))
			destV[y*stride2 + x] = uint8(emath.ClampInt(v + 128, 0, 255))
		}
	}

	return dest
}
