package resolve

import "testing"

func TestParseAmountStrings(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1234", 1234, true},
		{"1 234 567", 1234567, true},
		{"1 234,50", 1234.5, true},
		{"-553 622,39", -553622.39, true},
		{"0", 0, true},
		{"12.5", 12.5, true},
		{"", 0, false},
		{"ej tillämplig", 0, false},
		{"1,2,3", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseAmount(tc.in)
		if ok != tc.ok {
			t.Fatalf("ParseAmount(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("ParseAmount(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseAmountNumericTypes(t *testing.T) {
	if v, ok := ParseAmount(float64(15194)); !ok || v != 15194 {
		t.Fatalf("float64: got %v ok=%v", v, ok)
	}
	if v, ok := ParseAmount(int64(-7)); !ok || v != -7 {
		t.Fatalf("int64: got %v ok=%v", v, ok)
	}
	if _, ok := ParseAmount(nil); ok {
		t.Fatalf("nil should not parse")
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("INK4.6a Skattemässig justering"); got != "ink46askattemässigjustering" {
		t.Fatalf("NormalizeName = %q", got)
	}
	if NormalizeName("Sum_Arets-Resultat") != NormalizeName("sumaretsresultat") {
		t.Fatalf("punctuation should not affect the key")
	}
}
