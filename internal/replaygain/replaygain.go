// Package replaygain encodes and decodes loudness-normalization values
// to and from their canonical textual representation.
//
// Gain values format as a signed decibel amount with two decimal places
// and a "dB" suffix ("+1.23 dB", "-0.50 dB"); peak values format as a
// bare decimal with six places ("0.123457"). Decoding is deliberately
// lenient because third-party taggers do not reliably follow the
// canonical form: the unit suffix is optional and anything that does not
// parse as a decimal reads as absent rather than failing.
package replaygain

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatGain formats a gain adjustment in dB, sign always shown.
func FormatGain(v float64) string {
	return fmt.Sprintf("%+.2f dB", v)
}

// FormatPeak formats a linear peak amplitude.
func FormatPeak(v float64) string {
	return fmt.Sprintf("%.6f", v)
}

// Parse decodes a stored replay-gain value. The second return is false
// when the text does not contain a decimal number.
func Parse(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "dB")
	s = strings.TrimSuffix(s, "db")
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
