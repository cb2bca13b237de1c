package replaygain

import "testing"

func TestFormatGain(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.23, "+1.23 dB"},
		{-0.5, "-0.50 dB"},
		{0, "+0.00 dB"},
		{-12.345, "-12.35 dB"},
	}
	for _, tt := range tests {
		if got := FormatGain(tt.in); got != tt.want {
			t.Errorf("FormatGain(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPeak(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.123456789, "0.123457"},
		{1, "1.000000"},
		{0.9999995, "1.000000"},
	}
	for _, tt := range tests {
		if got := FormatPeak(tt.in); got != tt.want {
			t.Errorf("FormatPeak(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"+1.23 dB", 1.23, true},
		{"-0.50 dB", -0.5, true},
		{"1.23", 1.23, true},
		{"  -3.1 db  ", -3.1, true},
		{"0.123457", 0.123457, true},
		{"+1.23dB", 1.23, true},
		{"", 0, false},
		{"dB", 0, false},
		{"loud", 0, false},
		{"1,23 dB", 0, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Parse(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, v := range []float64{-12.34, -0.5, 0, 0.01, 1.23, 9.99} {
		got, ok := Parse(FormatGain(v))
		if !ok || got != v {
			t.Errorf("Parse(FormatGain(%v)) = (%v, %v)", v, got, ok)
		}
	}
	for _, v := range []float64{0, 0.123457, 0.5, 1} {
		got, ok := Parse(FormatPeak(v))
		if !ok || got != v {
			t.Errorf("Parse(FormatPeak(%v)) = (%v, %v)", v, got, ok)
		}
	}
}
