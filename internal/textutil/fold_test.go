package textutil

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Al-Fātiḥah", "al fatihah"},
		{"  The   Opener! ", "the opener"},
		{"ÂL—Imrān", "al imran"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFold(t *testing.T) {
	if Fold("YaSin") != Fold("yasin") {
		t.Error("expected caseless equality")
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`In the name of Allah<sup foot_note=77>1</sup>, the Merciful`, "In the name of Allah, the Merciful"},
		{`<i>praise</i>  be   to`, "praise be to"},
		{"plain text", "plain text"},
	}
	for _, tc := range tests {
		if got := StripTags(tc.in); got != tc.want {
			t.Errorf("StripTags(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
