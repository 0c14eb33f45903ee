package minijson

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// ============================================================
// Numeric Codec
// ============================================================
//
// A number is written as its shortest round-trip decimal form with every
// digit run re-based to base 36:
//
//	-123.456  ->  -3f.co
//	1e21      ->  1^l
//	-1e-7     ->  -1^-7
//
// Leading zeros of a run are kept as-is so fractions like .05 survive.

var numberPattern = regexp.MustCompile(`^(?:-?[0-9a-z]+(?:\.[0-9a-z]+)?(?:\^-?[0-9a-z]+)?|NaN|-?Infinity)$`)

// isNumberToken reports whether s matches the number grammar.
func isNumberToken(s string) bool {
	return numberPattern.MatchString(s)
}

// formatNumber returns the number token for f.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	mant, exp, hasExp := strings.Cut(decimalString(f), "e")
	whole, frac, hasFrac := strings.Cut(mant, ".")

	// Runs from FormatFloat are always valid base-10 digits.
	w, _ := rebase(whole, 10, 36)
	var b strings.Builder
	b.WriteString(w)
	if hasFrac {
		fr, _ := rebase(frac, 10, 36)
		b.WriteByte('.')
		b.WriteString(fr)
	}
	if hasExp {
		e, _ := strconv.Atoi(exp)
		b.WriteByte('^')
		b.WriteString(strconv.FormatInt(int64(e), 36))
	}
	return b.String()
}

// decimalString returns the shortest decimal that parses back to f,
// switching to exponent form outside [1e-6, 1e21).
func decimalString(f float64) string {
	if f == 0 {
		if math.Signbit(f) {
			return "-0"
		}
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parseNumber decodes a number token. The returned error is non-nil when a
// run is not a valid base-36 integer or the value is out of range; f is
// still the best-effort result in that case.
func parseNumber(s string) (float64, error) {
	switch s {
	case "NaN":
		return math.NaN(), nil
	case "Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}

	mant, exp, hasExp := strings.Cut(s, "^")
	whole, frac, hasFrac := strings.Cut(mant, ".")

	w, err := rebase(whole, 36, 10)
	if err != nil {
		return math.NaN(), err
	}
	var b strings.Builder
	b.WriteString(w)
	if hasFrac {
		fr, err := rebase(frac, 36, 10)
		if err != nil {
			return math.NaN(), err
		}
		b.WriteByte('.')
		b.WriteString(fr)
	}
	if hasExp {
		e, err := strconv.ParseInt(exp, 36, 64)
		if err != nil {
			return math.NaN(), err
		}
		b.WriteByte('e')
		b.WriteString(strconv.FormatInt(e, 10))
	}
	return strconv.ParseFloat(b.String(), 64)
}

// rebase converts a run of digits between bases. A leading '-' and any
// leading zeros are copied through unchanged.
func rebase(run string, from, to int) (string, error) {
	sign := ""
	if strings.HasPrefix(run, "-") {
		sign, run = "-", run[1:]
	}
	digits := strings.TrimLeft(run, "0")
	zeros := run[:len(run)-len(digits)]
	if digits == "" {
		if zeros == "" {
			return "", fmt.Errorf("empty digit run")
		}
		return sign + zeros, nil
	}
	n, ok := new(big.Int).SetString(digits, from)
	if !ok || n.Sign() < 0 {
		return "", fmt.Errorf("invalid base-%d digits %q", from, digits)
	}
	return sign + zeros + n.Text(to), nil
}
