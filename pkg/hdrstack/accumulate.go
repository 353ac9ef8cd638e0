package hdrstack

import(
	"sync"
)

// Accumulate adds an 8-bit YUV420 frame into the image. The frame's
// planes are laid out back to back: luma is stride*Height bytes, then
// the U and V planes, each with stride/2 bytes per row. We just sum the
// frames; there is no alignment, so the scene had better be static.
//
// The luma plane is split in two, with each half summed in its own
// goroutine; chroma is summed here meanwhile. Every frame must have
// the same shape; that's for the caller to check.
func (im *WideImage)Accumulate(frame []byte, stride int) {
	w, h := im.Width, im.Height
	half := h / 2
	y := im.Y()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		addLumaRows(y[:w*half], frame, w, stride, half)
	}()
	go func() {
		defer wg.Done()
		addLumaRows(y[w*half:], frame[stride*half:], w, stride, h-half)
	}()

	// U and V components, stored de-biased
	w2, h2, stride2 := w/2, h/2, stride/2
	chroma := im.Pixels[im.NumLuma():]
	src := frame[stride*h:]
	for plane:=0; plane<2; plane++ {
		for row:=0; row<h2; row++ {
			dst := chroma[(plane*h2 + row) * w2:]
			line := src[(plane*h2 + row) * stride2:]
			for x:=0; x<w2; x++ {
				dst[x] += int16(line[x]) - 128
			}
		}
	}

	im.DynamicRange += MaxFrameContribution

	wg.Wait()
}

func addLumaRows(dst []int16, src []byte, w, stride, rows int) {
	for row:=0; row<rows; row++ {
		line := src[row*stride : row*stride+w]
		out := dst[row*w : row*w+w]
		for x, v := range line {
			out[x] += int16(v)
		}
	}
}
