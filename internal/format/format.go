package format

import (
	"math"
	"strconv"
	"strings"
)

// OnRequest is the literal shown wherever a price or size is not published.
const OnRequest = "Consultar"

// AreaUnit is appended to formatted surfaces.
const AreaUnit = "m²"

// Currency formats a whole-peso amount with es-MX grouping and no decimals.
// Example: Currency(1500) => "$1,500"
func Currency(amount float64) string {
	n := int64(math.Round(amount))
	if n < 0 {
		return "-$" + thousandSep(-n)
	}
	return "$" + thousandSep(n)
}

// Number groups the integer part with commas and keeps up to three decimals,
// trimming trailing zeros. Example: Number(1500.5) => "1,500.5"
func Number(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 3, 64)
	whole, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")
	n, _ := strconv.ParseInt(whole, 10, 64)
	out := thousandSep(n)
	if frac != "" {
		out += "." + frac
	}
	if neg {
		return "-" + out
	}
	return out
}

// Area formats a surface in square meters. Example: Area(1500) => "1,500 m²"
func Area(v float64) string {
	return Number(v) + " " + AreaUnit
}

func thousandSep(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
