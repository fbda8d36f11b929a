// Package pcm converts between stored PCM samples and the float samples
// processed by the equalizer.
//
// Integer samples map to floats by dividing by the magnitude of the most
// negative value of their width (32768 for 16 bit), so decoded audio lies
// in [-1, 1). Floats map back by multiplying with the largest positive
// value and truncating toward zero, clamped to the integer range.
package pcm
