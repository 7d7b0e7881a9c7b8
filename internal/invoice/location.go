package invoice

import (
	"regexp"
	"strings"
)

var (
	stateTokenRe = regexp.MustCompile(`\b([A-Z]{2})\b`)
	digitsRe     = regexp.MustCompile(`\d+`)
)

// ResolveLocation extracts a "City, ST" pair from a free-form address by
// scanning comma-separated components from the end for a two-uppercase-letter
// state token. The component before the match, with digits stripped, is the
// city. Returns the N/A sentinel when nothing matches.
func ResolveLocation(address string) string {
	if strings.TrimSpace(address) == "" {
		return NotApplicable
	}

	parts := strings.Split(address, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	for i := len(parts) - 1; i > 0; i-- {
		m := stateTokenRe.FindStringSubmatch(parts[i])
		if m == nil {
			continue
		}
		city := strings.TrimSpace(digitsRe.ReplaceAllString(parts[i-1], ""))
		return city + ", " + m[1]
	}
	return NotApplicable
}

// ResolveLocationFrom tries the shipping address first and falls back to the
// sold-to address.
func ResolveLocationFrom(shippingAddress, soldToAddress string) string {
	if loc := ResolveLocation(shippingAddress); loc != NotApplicable {
		return loc
	}
	return ResolveLocation(soldToAddress)
}
