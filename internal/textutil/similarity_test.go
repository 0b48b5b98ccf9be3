package textutil

import (
	"math"
	"testing"
)

func TestCosineSimilarityNil(t *testing.T) {
	tests := []struct {
		name string
		a    *Fingerprint
		b    *Fingerprint
	}{
		{"both nil", nil, nil},
		{"a nil", nil, NewFingerprint("Yasin")},
		{"b nil", NewFingerprint("Yasin"), nil},
		{"zero norm", &Fingerprint{grams: map[string]float64{}}, NewFingerprint("Yasin")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CosineSimilarity(tt.a, tt.b); got != 0 {
				t.Errorf("CosineSimilarity() = %v, want 0", got)
			}
		})
	}
}

func TestCosineSimilarityIdenticalAndSymmetric(t *testing.T) {
	a := NewFingerprint("Al-Baqarah")
	b := NewFingerprint("al baqarah")
	if got := CosineSimilarity(a, b); math.Abs(got-1) > 1e-9 {
		t.Errorf("CosineSimilarity(identical) = %v, want 1", got)
	}
	c := NewFingerprint("Baqara")
	if CosineSimilarity(a, c) != CosineSimilarity(c, a) {
		t.Error("CosineSimilarity not symmetric")
	}
}

func TestTrigrams(t *testing.T) {
	got := Trigrams("Ṭā-Hā")
	want := []string{"tah", "aha"}
	if len(got) != len(want) {
		t.Fatalf("Trigrams() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Trigrams() = %v, want %v", got, want)
		}
	}
	if short := Trigrams("Q"); len(short) != 1 || short[0] != "q__" {
		t.Fatalf("expected padded trigram, got %v", short)
	}
	if Trigrams("  --  ") != nil {
		t.Fatal("expected no trigrams for punctuation only")
	}
}

func TestNewFingerprintNorm(t *testing.T) {
	// "aaaa" -> "aaa" twice
	fp := NewFingerprint("aaaa")
	if fp == nil || fp.Size() != 1 {
		t.Fatalf("expected one distinct trigram, got %v", fp)
	}
	if math.Abs(fp.norm-2) > 1e-9 {
		t.Errorf("norm = %v, want 2", fp.norm)
	}
	if NewFingerprint("") != nil {
		t.Error("expected nil for empty text")
	}
}

func TestBestMatch(t *testing.T) {
	chapters := []Candidate{
		{ID: 1, Names: []string{"Al-Fatihah", "The Opener", "الفاتحة"}},
		{ID: 2, Names: []string{"Al-Baqarah", "The Cow", "البقرة"}},
		{ID: 36, Names: []string{"Ya-Sin", "Ya Sin", "يس"}},
		{ID: 112, Names: []string{"Al-Ikhlas", "Sincerity", "الإخلاص"}},
	}
	tests := []struct {
		query  string
		wantID int
		wantOK bool
	}{
		{"al-fatihah", 1, true},
		{"fatiha", 1, true},
		{"the cow", 2, true},
		{"البقرة", 2, true},
		{"yasin", 36, true},
		{"IKHLAS", 112, true},
		{"zzzz", 0, false},
		{"", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			got, ok := BestMatch(tc.query, chapters, 0.4)
			if ok != tc.wantOK {
				t.Fatalf("BestMatch(%q) ok = %v, want %v (got %+v)", tc.query, ok, tc.wantOK, got)
			}
			if ok && got.ID != tc.wantID {
				t.Fatalf("BestMatch(%q) = %+v, want id %d", tc.query, got, tc.wantID)
			}
		})
	}
}
