package features

import (
	"math"
	"strconv"
	"strings"
)

// naTokens are the cell values read as "no data", the same set common CSV
// tooling treats as NA by default.
var naTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsNA reports whether a raw cell denotes a missing value.
func IsNA(cell string) bool {
	_, ok := naTokens[cell]
	return ok
}

// ParseNumeric coerces a raw cell to a number. NA tokens and text that is
// not a number become missing; surrounding whitespace is ignored.
func ParseNumeric(cell string) float64 {
	s := strings.TrimSpace(cell)
	if IsNA(s) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// CoerceColumn parses every cell of a column with ParseNumeric.
func CoerceColumn(cells []string) []float64 {
	out := make([]float64, len(cells))
	for i, c := range cells {
		out[i] = ParseNumeric(c)
	}
	return out
}
