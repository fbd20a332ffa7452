package plane

import (
	"math"
	"strconv"
	"strings"
)

// geogebra renders a·x+b·y+c·z+d=0.0 with every coefficient written the
// way GeoGebra's own exporter writes doubles.
func geogebra(a, b, c, d float64) string {
	var sb strings.Builder
	sb.WriteString(formatDouble(a))
	sb.WriteString("*x")
	sb.WriteString(signed(b))
	sb.WriteString("*y")
	sb.WriteString(signed(c))
	sb.WriteString("*z")
	sb.WriteString(signed(d))
	sb.WriteString("=0.0")
	return sb.String()
}

func signed(v float64) string {
	s := formatDouble(v)
	if strings.HasPrefix(s, "-") {
		return s
	}
	return "+" + s
}

// formatDouble prints the shortest decimal that round-trips, always with a
// fractional digit, switching to "1.0E7" notation outside [1e-3, 1e7).
// Negative zero prints as "0.0".
func formatDouble(v float64) string {
	switch {
	case v == 0:
		return "0.0"
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	abs := math.Abs(v)
	if abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	s := strconv.FormatFloat(v, 'E', -1, 64)
	mant, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	neg := strings.HasPrefix(exp, "-")
	exp = strings.TrimLeft(exp, "+-0")
	if neg {
		exp = "-" + exp
	}
	return mant + "E" + exp
}
