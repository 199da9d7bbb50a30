// Package wavetable implements a table-driven sine oscillator. The
// dynamic generators change frequency often; reading a precomputed cycle
// through a phase accumulator keeps the waveform continuous and
// band-limited across those changes, where recomputing sin(2πft) with a
// jumping f would produce phase discontinuities.
package wavetable

import "math"

const tableSize = 4096

var sineTable [tableSize + 1]float64

func init() {
	for i := 0; i <= tableSize; i++ {
		sineTable[i] = math.Sin(2 * math.Pi * float64(i) / tableSize)
	}
}

// Osc is a single sine oscillator. Frequency is normalized: cycles per
// step. Output is in [-1, 1].
type Osc struct {
	phase float64 // [0, 1)
	inc   float64 // cycles per step
}

func NewOsc(freq float64) *Osc {
	o := &Osc{}
	o.SetFrequency(freq)
	return o
}

// SetFrequency changes the per-step phase increment. Phase carries over
// so the waveform stays continuous.
func (o *Osc) SetFrequency(freq float64) {
	o.inc = freq - math.Floor(freq) // alias back into [0, 1)
	if o.inc < 0 {
		o.inc += 1
	}
}

// SetPhase positions the accumulator, phase in cycles.
func (o *Osc) SetPhase(phase float64) {
	o.phase = phase - math.Floor(phase)
}

func (o *Osc) Phase() float64 { return o.phase }

// Next advances one step and returns the sample, linearly interpolated
// from the table.
func (o *Osc) Next() float64 {
	pos := o.phase * tableSize
	i := int(pos)
	frac := pos - float64(i)
	v := sineTable[i] + frac*(sineTable[i+1]-sineTable[i])

	o.phase += o.inc
	if o.phase >= 1 {
		o.phase -= 1
	}
	return v
}

// Reset rewinds the accumulator to the given phase.
func (o *Osc) Reset(phase float64) {
	o.SetPhase(phase)
}
