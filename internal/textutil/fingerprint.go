package textutil

import "math"

const gramSize = 3

// Fingerprint is a character trigram frequency vector.
type Fingerprint struct {
	grams map[string]float64
	norm  float64
}

// NewFingerprint builds a fingerprint from the normalized, space-free form of
// text. Inputs shorter than one trigram are padded so two-letter names still
// compare. Returns nil when text has no letters or digits.
func NewFingerprint(text string) *Fingerprint {
	grams := Trigrams(text)
	if len(grams) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(grams))
	for _, g := range grams {
		counts[g]++
	}
	var sum float64
	for _, c := range counts {
		sum += c * c
	}
	return &Fingerprint{grams: counts, norm: math.Sqrt(sum)}
}

// Trigrams returns the overlapping character trigrams of text after Normalize
// with spaces removed.
func Trigrams(text string) []string {
	var compact []rune
	for _, r := range Normalize(text) {
		if r != ' ' {
			compact = append(compact, r)
		}
	}
	if len(compact) == 0 {
		return nil
	}
	for len(compact) < gramSize {
		compact = append(compact, '_')
	}
	out := make([]string, 0, len(compact)-gramSize+1)
	for i := 0; i+gramSize <= len(compact); i++ {
		out = append(out, string(compact[i:i+gramSize]))
	}
	return out
}

// Size returns the number of distinct trigrams.
func (f *Fingerprint) Size() int {
	if f == nil {
		return 0
	}
	return len(f.grams)
}
