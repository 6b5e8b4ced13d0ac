package native

import (
	"math"
	"math/cmplx"

	"github.com/madelynnblue/go-dsp/fft"

	"github.com/simukka/journey-soundscape/audio"
)

// partSize is the uniform partition length. Convolver output lags its
// input by one partition.
const partSize = 1024

// Impulse normalization constants, matching the browser's convolver so a
// generated impulse sounds equally loud on both backends.
const (
	gainCalibration     = 0.00125
	gainCalibrationRate = 44100
	minImpulsePower     = 0.000125
	spectrumBins        = partSize + 1
	fftLength           = 2 * partSize
)

// CreateConvolver implements audio.Context.
func (c *Context) CreateConvolver() audio.ConvolverNode {
	v := &convolver{}
	v.ctx, v.self = c, v
	for ch := 0; ch < 2; ch++ {
		v.in[ch] = make([]float64, partSize)
		v.overlap[ch] = make([]float64, partSize)
		v.outBuf[ch] = make([]float64, partSize)
	}
	v.scratch = make([]float64, fftLength)
	v.acc = make([]complex128, spectrumBins)
	v.full = make([]complex128, fftLength)
	return v
}

// convolver is a uniformly partitioned overlap-add FFT convolver.
type convolver struct {
	node
	parts [2][][]complex128 // Impulse partition spectra
	fdl   [2][][]complex128 // Input spectra, newest at head
	head  int

	in      [2][]float64
	overlap [2][]float64
	outBuf  [2][]float64
	pos     int

	scratch []float64
	acc     []complex128
	full    []complex128
}

// SetBuffer implements audio.ConvolverNode. The impulse is transformed
// before the render lock is taken.
func (v *convolver) SetBuffer(b audio.Buffer) {
	buf, ok := b.(*buffer)
	if !ok || buf.Length() == 0 {
		return
	}
	scale := impulseScale(buf.data) * gainCalibrationRate / v.ctx.rate

	var parts, fdl [2][][]complex128
	for ch := 0; ch < 2; ch++ {
		ir := buf.data[0]
		if ch < len(buf.data) {
			ir = buf.data[ch]
		}
		parts[ch] = partition(ir, scale)
		fdl[ch] = make([][]complex128, len(parts[ch]))
		for i := range fdl[ch] {
			fdl[ch][i] = make([]complex128, spectrumBins)
		}
	}

	v.ctx.mu.Lock()
	defer v.ctx.mu.Unlock()
	v.parts, v.fdl, v.head = parts, fdl, 0
}

func impulseScale(data [][]float32) float64 {
	power, n := 0.0, 0
	for _, ch := range data {
		for _, x := range ch {
			power += float64(x) * float64(x)
		}
		n += len(ch)
	}
	if n == 0 {
		return 1
	}
	power = math.Sqrt(power / float64(n))
	if power < minImpulsePower {
		power = minImpulsePower
	}
	return gainCalibration / power
}

func partition(ir []float32, scale float64) [][]complex128 {
	parts := make([][]complex128, 0, (len(ir)+partSize-1)/partSize)
	seg := make([]float64, fftLength)
	for off := 0; off < len(ir); off += partSize {
		for i := range seg {
			seg[i] = 0
		}
		for i := 0; i < partSize && off+i < len(ir); i++ {
			seg[i] = float64(ir[off+i]) * scale
		}
		spec := fft.FFTReal(seg)
		parts = append(parts, append([]complex128(nil), spec[:spectrumBins]...))
	}
	return parts
}

func (v *convolver) process(out *block, q int64, t0 float64) {
	v.mix(out, q, t0)
	if len(v.parts[0]) == 0 {
		out.clear()
		return
	}
	out.mono = false
	for i := range out.s {
		l, r := out.s[i][0], out.s[i][1]
		out.s[i] = [2]float64{v.outBuf[0][v.pos], v.outBuf[1][v.pos]}
		v.in[0][v.pos] = l
		v.in[1][v.pos] = r
		v.pos++
		if v.pos == partSize {
			v.flush()
			v.pos = 0
		}
	}
}

func (v *convolver) flush() {
	for ch := 0; ch < 2; ch++ {
		parts, fdl := v.parts[ch], v.fdl[ch]
		n := len(parts)

		copy(v.scratch, v.in[ch])
		for i := partSize; i < fftLength; i++ {
			v.scratch[i] = 0
		}
		copy(fdl[v.head], fft.FFTReal(v.scratch)[:spectrumBins])

		for k := range v.acc {
			v.acc[k] = 0
		}
		for p := 0; p < n; p++ {
			x := fdl[(v.head-p+n)%n]
			h := parts[p]
			for k := range v.acc {
				v.acc[k] += x[k] * h[k]
			}
		}

		// Rebuild the conjugate-symmetric spectrum of a real signal.
		copy(v.full, v.acc)
		for k := 1; k < partSize; k++ {
			v.full[fftLength-k] = cmplx.Conj(v.acc[k])
		}
		y := fft.IFFT(v.full)
		for i := 0; i < partSize; i++ {
			v.outBuf[ch][i] = real(y[i]) + v.overlap[ch][i]
			v.overlap[ch][i] = real(y[partSize+i])
		}
	}
	v.head = (v.head + 1) % len(v.parts[0])
}
