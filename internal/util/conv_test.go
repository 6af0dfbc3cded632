package util

import "testing"

func TestParseIntDefault(t *testing.T) {
	tests := []struct {
		in   string
		def  int
		want int
	}{
		{"42", 0, 42},
		{" 7 ", 0, 7},
		{"", 10, 10},
		{"abc", 10, 10},
		{"-3", 0, -3},
	}
	for _, tt := range tests {
		if got := ParseIntDefault(tt.in, tt.def); got != tt.want {
			t.Errorf("ParseIntDefault(%q, %d) = %d, want %d", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "1", "on", "yes", " True "} {
		if !ParseBool(s) {
			t.Errorf("ParseBool(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"false", "0", "off", "", "no", "banana"} {
		if ParseBool(s) {
			t.Errorf("ParseBool(%q) = true, want false", s)
		}
	}
}

func TestMustParseUint(t *testing.T) {
	if got := MustParseUint("15"); got != 15 {
		t.Errorf("MustParseUint(15) = %d", got)
	}
	if got := MustParseUint("not-a-number"); got != 0 {
		t.Errorf("MustParseUint(garbage) = %d, want 0", got)
	}
	if got := MustParseUint("-1"); got != 0 {
		t.Errorf("MustParseUint(-1) = %d, want 0", got)
	}
}
