package audio

import "math"

const (
	highPassCutoffHz = 300.0  // removes low-frequency rumble
	lowPassCutoffHz  = 7000.0 // removes high-frequency hiss
	normalizePeak    = 0.95
)

// Enhance applies best-effort cleanup to a captured clip: a band-pass
// (300 Hz - 7 kHz) to strip rumble and hiss, then peak normalization.
// It never fails; if the input is unusable it is returned untouched.
// The enhancement step is optional in the pipeline and callers must
// treat its output as equivalent to the input.
func Enhance(samples []int16, sampleRate int) []int16 {
	if len(samples) == 0 || sampleRate <= 0 {
		return samples
	}
	nyquist := float64(sampleRate) / 2
	if lowPassCutoffHz >= nyquist || highPassCutoffHz >= nyquist {
		return samples
	}

	buf := make([]float64, len(samples))
	for i, s := range samples {
		buf[i] = float64(s) / 32768.0
	}

	highPass(buf, sampleRate, highPassCutoffHz)
	lowPass(buf, sampleRate, lowPassCutoffHz)
	normalize(buf)

	out := make([]int16, len(buf))
	for i, v := range buf {
		scaled := v * 32767.0
		switch {
		case scaled > 32767:
			out[i] = 32767
		case scaled < -32768:
			out[i] = -32768
		default:
			out[i] = int16(scaled)
		}
	}
	return out
}

// highPass applies a first-order high-pass filter in place.
func highPass(buf []float64, sampleRate int, cutoff float64) {
	rc := 1.0 / (2 * math.Pi * cutoff)
	dt := 1.0 / float64(sampleRate)
	alpha := rc / (rc + dt)

	prevIn := buf[0]
	prevOut := buf[0]
	for i := 1; i < len(buf); i++ {
		in := buf[i]
		out := alpha * (prevOut + in - prevIn)
		buf[i] = out
		prevIn = in
		prevOut = out
	}
}

// lowPass applies a first-order low-pass filter in place.
func lowPass(buf []float64, sampleRate int, cutoff float64) {
	rc := 1.0 / (2 * math.Pi * cutoff)
	dt := 1.0 / float64(sampleRate)
	alpha := dt / (rc + dt)

	prev := buf[0]
	for i := 1; i < len(buf); i++ {
		prev += alpha * (buf[i] - prev)
		buf[i] = prev
	}
}

// normalize scales the buffer so its peak sits at normalizePeak.
func normalize(buf []float64) {
	var peak float64
	for _, v := range buf {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return
	}
	gain := normalizePeak / peak
	for i := range buf {
		buf[i] *= gain
	}
}
