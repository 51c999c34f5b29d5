package audio

import (
	"encoding/binary"
	"math"
)

// Samples decodes little-endian 16-bit mono PCM bytes into samples.
// A trailing odd byte is dropped.
func Samples(data []byte) []int16 {
	n := len(data) / 2
	samples := make([]int16, n)
	for i := 0; i < n; i++ {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return samples
}

// Bytes encodes samples back into little-endian 16-bit PCM.
func Bytes(samples []int16) []byte {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}
	return data
}

// RMS computes the root-mean-square energy of a frame of samples.
// Returns 0 for an empty frame.
func RMS(frame []int16) float64 {
	if len(frame) == 0 {
		return 0
	}
	var sum float64
	for _, s := range frame {
		f := float64(s)
		sum += f * f
	}
	return math.Sqrt(sum / float64(len(frame)))
}

// Chunks splits data into consecutive slices of at most size bytes.
// The returned slices alias data. It is a plain finite sequence so a
// failed streaming submission can simply be restarted from the top.
func Chunks(data []byte, size int) [][]byte {
	if size <= 0 || len(data) == 0 {
		return nil
	}
	chunks := make([][]byte, 0, (len(data)+size-1)/size)
	for start := 0; start < len(data); start += size {
		end := start + size
		if end > len(data) {
			end = len(data)
		}
		chunks = append(chunks, data[start:end])
	}
	return chunks
}
