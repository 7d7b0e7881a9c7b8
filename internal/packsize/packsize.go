// Package packsize parses wholesale "pack size" strings ("6 64 OZ") and
// computes the quantity and price fields derived from them.
package packsize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/invoice-pipeline/constants"
)

// NotApplicable is the sentinel for derived prices that do not apply.
const NotApplicable = "N/A"

var numberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// PackSize is the parsed form of a pack-size string: how many units a case
// holds, how big each unit is, and what it is measured in.
type PackSize struct {
	QuantityInCase float64
	Measurement    float64
	RawUnit        string
	// Unit is RawUnit resolved through the unit table; unrecognized tokens
	// pass through unchanged.
	Unit string
}

// Parse extracts quantity-in-case, per-item measurement and unit from a
// free-form pack-size string. The first number is the case count, the second
// the measurement, and the token after the second number is the unit. When
// the string does not contain two numbers both quantities default to 1.
func Parse(raw string) PackSize {
	s := strings.TrimSpace(raw)
	ps := PackSize{QuantityInCase: 1, Measurement: 1}
	if s == "" {
		return ps
	}

	locs := numberRe.FindAllStringIndex(s, -1)
	if len(locs) >= 2 {
		ps.QuantityInCase = parseNum(s[locs[0][0]:locs[0][1]], 1)
		ps.Measurement = parseNum(s[locs[1][0]:locs[1][1]], 1)
		ps.RawUnit = unitAfter(s, locs[1][1])
	} else if len(locs) == 1 {
		ps.RawUnit = unitAfter(s, locs[0][1])
	} else {
		ps.RawUnit = firstToken(s)
	}

	ps.Unit = ps.RawUnit
	if canonical, ok := constants.CanonicalUnit(ps.RawUnit); ok {
		ps.Unit = canonical
	}
	return ps
}

func parseNum(s string, def float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

// unitAfter returns the unit token following position i. Multi-word units
// like "FL OZ" are kept whole when the table knows the full remainder.
func unitAfter(s string, i int) string {
	rest := strings.TrimSpace(s[i:])
	if rest == "" {
		return ""
	}
	if _, ok := constants.CanonicalUnit(rest); ok {
		return rest
	}
	return firstToken(rest)
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Derived holds the quantities and prices computed from a parsed pack size
// and the item's raw price fields.
type Derived struct {
	QuantityShipped   float64
	TotalUnitsOrdered float64
	CostOfAUnit       float64
	CostOfEachItem    float64
	SplitPrice        string
}

// Calculate computes the derived fields. quantityShipped defaults to 1 when
// absent or non-positive. Division by zero yields zero costs rather than an
// error; the sentinel split price is used for non-splitable items.
func Calculate(ps PackSize, quantityShipped, extendedPrice, casePrice float64, splitable bool) Derived {
	if quantityShipped <= 0 {
		quantityShipped = 1
	}

	d := Derived{
		QuantityShipped:   quantityShipped,
		TotalUnitsOrdered: ps.QuantityInCase * ps.Measurement * quantityShipped,
		SplitPrice:        NotApplicable,
	}
	if d.TotalUnitsOrdered > 0 {
		d.CostOfAUnit = extendedPrice / d.TotalUnitsOrdered
	}
	d.CostOfEachItem = d.CostOfAUnit * ps.Measurement

	if splitable && ps.QuantityInCase > 0 {
		d.SplitPrice = strconv.FormatFloat(casePrice/ps.QuantityInCase, 'f', 2, 64)
	}
	return d
}
