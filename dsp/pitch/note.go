package pitch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pitch/dsp/core"
)

// StandardA4 is the concert pitch reference in Hz.
const StandardA4 = 440.0

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Note is the equal-tempered note nearest to a frequency.
type Note struct {
	Name   string  // pitch class, e.g. "A" or "C#"
	Octave int     // scientific pitch notation, C4 is middle C
	MIDI   int     // MIDI note number, A4 = 69
	Cents  float64 // deviation from the note in [-50, 50]
}

func (n Note) String() string {
	return fmt.Sprintf("%s%d", n.Name, n.Octave)
}

// NoteFromFrequency returns the nearest equal-tempered note to freq with the
// given A4 reference. ok is false for non-positive or non-finite input.
func NoteFromFrequency(freq, a4 float64) (note Note, ok bool) {
	if !core.IsFinitePositive(freq) || !core.IsFinitePositive(a4) {
		return Note{}, false
	}
	exact := 69 + 12*math.Log2(freq/a4)
	midi := int(math.Round(exact))
	return Note{
		Name:   noteNames[((midi%12)+12)%12],
		Octave: int(math.Floor(float64(midi)/12)) - 1,
		MIDI:   midi,
		Cents:  (exact - float64(midi)) * 100,
	}, true
}

// MIDIToFrequency returns the frequency of a MIDI note number.
func MIDIToFrequency(midi int, a4 float64) float64 {
	return a4 * math.Pow(2, float64(midi-69)/12)
}

// Note returns the nearest note to the estimate using [StandardA4].
func (e Estimate) Note() (Note, bool) {
	return NoteFromFrequency(e.Frequency, StandardA4)
}
