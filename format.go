package synth

import "fmt"

// Format describes how samples are laid out when they leave or enter the synthesizer as raw
// bytes: PCM files, device buffers and wavetable files.
type Format struct {
	// SampleRate is the number of samples per second.
	SampleRate SampleRate

	// NumChannels is the number of channels. The value of 1 is mono, the value of 2 is stereo.
	// The samples are always interleaved.
	NumChannels int

	// Precision is the number of bytes used to encode a single sample of one channel.
	Precision int
}

// Width returns the number of bytes per one sample (all channels).
//
// This is equal to f.NumChannels * f.Precision.
func (f Format) Width() int {
	return f.NumChannels * f.Precision
}

// EncodeSigned encodes a single sample in f.Width() bytes to p in signed little-endian format.
func (f Format) EncodeSigned(p []byte, sample [2]float64) (n int) {
	return f.encode(true, p, sample)
}

// EncodeUnsigned encodes a single sample in f.Width() bytes to p in unsigned little-endian
// format.
func (f Format) EncodeUnsigned(p []byte, sample [2]float64) (n int) {
	return f.encode(false, p, sample)
}

// DecodeSigned decodes a single sample encoded in f.Width() bytes from p in signed format.
func (f Format) DecodeSigned(p []byte) (sample [2]float64, n int) {
	return f.decode(true, p)
}

// DecodeUnsigned decodes a single sample encoded in f.Width() bytes from p in unsigned format.
func (f Format) DecodeUnsigned(p []byte) (sample [2]float64, n int) {
	return f.decode(false, p)
}

func (f Format) encode(signed bool, p []byte, sample [2]float64) (n int) {
	switch {
	case f.NumChannels == 1:
		putSample(signed, p, f.Precision, clamp((sample[0]+sample[1])/2))
	case f.NumChannels >= 2:
		for c := 0; c < f.NumChannels; c++ {
			x := 0.0
			if c < len(sample) {
				x = clamp(sample[c])
			}
			putSample(signed, p[c*f.Precision:], f.Precision, x)
		}
	default:
		panic(fmt.Errorf("synth: encode: invalid number of channels: %d", f.NumChannels))
	}
	return f.Width()
}

func (f Format) decode(signed bool, p []byte) (sample [2]float64, n int) {
	switch {
	case f.NumChannels == 1:
		x := sampleAt(signed, p, f.Precision)
		return [2]float64{x, x}, f.Width()
	case f.NumChannels >= 2:
		// channels past the second are skipped
		sample[0] = sampleAt(signed, p, f.Precision)
		sample[1] = sampleAt(signed, p[f.Precision:], f.Precision)
		return sample, f.Width()
	default:
		panic(fmt.Errorf("synth: decode: invalid number of channels: %d", f.NumChannels))
	}
}

// putSample writes x as a little-endian integer of the given byte precision.
func putSample(signed bool, p []byte, precision int, x float64) {
	var u uint64
	if signed {
		u = uint64(int64(x * maxSigned(precision)))
	} else {
		u = uint64((x + 1) / 2 * maxUnsigned(precision))
	}
	for i := 0; i < precision; i++ {
		p[i] = byte(u >> (8 * uint(i)))
	}
}

func sampleAt(signed bool, p []byte, precision int) float64 {
	var u uint64
	for i := precision - 1; i >= 0; i-- {
		u = u<<8 | uint64(p[i])
	}
	if !signed {
		return float64(u)/maxUnsigned(precision)*2 - 1
	}
	bits := uint(precision * 8)
	v := int64(u << (64 - bits)) >> (64 - bits) // sign extend
	return float64(v) / maxSigned(precision)
}

func maxSigned(precision int) float64 {
	return float64(uint64(1)<<uint(precision*8-1) - 1)
}

func maxUnsigned(precision int) float64 {
	if precision >= 8 {
		return float64(^uint64(0))
	}
	return float64(uint64(1)<<uint(precision*8) - 1)
}

func clamp(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > +1 {
		return +1
	}
	return x
}
