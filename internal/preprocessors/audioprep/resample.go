package audioprep

import "math"

// zeroCrossings is the half-width of the sinc kernel, in zero crossings.
const zeroCrossings = 16

// Resample converts mono samples between rates using a Hann-windowed sinc
// low-pass filter. Downsampling lowers the cutoff to the target Nyquist.
func Resample(in []float32, from, to int) []float32 {
	if from == to || len(in) == 0 {
		out := make([]float32, len(in))
		copy(out, in)
		return out
	}

	ratio := float64(to) / float64(from)
	outLen := int(math.Round(float64(len(in)) * ratio))
	cutoff := math.Min(1, ratio)
	half := math.Ceil(zeroCrossings / cutoff)

	out := make([]float32, outLen)
	for i := range out {
		center := float64(i) / ratio
		lo := int(math.Ceil(center - half))
		hi := int(math.Floor(center + half))

		var acc, wsum float64
		for j := max(lo, 0); j <= hi && j < len(in); j++ {
			d := center - float64(j)
			w := cutoff * sinc(cutoff*d) * hann(d, half)
			acc += w * float64(in[j])
			wsum += w
		}
		if wsum != 0 {
			out[i] = float32(acc / wsum)
		}
	}
	return out
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

func hann(d, half float64) float64 {
	if math.Abs(d) >= half {
		return 0
	}
	return 0.5 * (1 + math.Cos(math.Pi*d/half))
}
