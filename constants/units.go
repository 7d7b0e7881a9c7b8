package constants

import "strings"

// UnitDomain groups canonical units by what they measure.
type UnitDomain string

const (
	UnitDomainWeight     UnitDomain = "WEIGHT"
	UnitDomainCount      UnitDomain = "COUNT"
	UnitDomainVolume     UnitDomain = "VOLUME"
	UnitDomainContainers UnitDomain = "CONTAINERS"
	UnitDomainProduce    UnitDomain = "PRODUCE"
)

type unitEntry struct {
	canonical string
	domain    UnitDomain
}

// unitTable maps every surface-form abbreviation seen on wholesale invoices
// to its canonical unit name. Built once at init, never mutated afterwards,
// so concurrent reads need no synchronization.
var unitTable = buildUnitTable()

func buildUnitTable() map[string]unitEntry {
	groups := []struct {
		canonical string
		domain    UnitDomain
		forms     []string
	}{
		// weight
		{"pounds", UnitDomainWeight, []string{"LB", "LBS", "#", "POUND"}},
		{"ounces", UnitDomainWeight, []string{"OZ", "OUNCE"}},
		{"kilos", UnitDomainWeight, []string{"KG", "KILO"}},
		{"grams", UnitDomainWeight, []string{"G", "GM", "GRAM"}},

		// count
		{"each", UnitDomainCount, []string{"EA", "PC", "CT", "COUNT", "PIECE"}},
		{"case", UnitDomainCount, []string{"CS", "CASE", "BX", "BOX"}},
		{"dozen", UnitDomainCount, []string{"DOZ", "DZ"}},
		{"pack", UnitDomainCount, []string{"PK", "PACK", "PKG"}},
		{"bundle", UnitDomainCount, []string{"BDL", "BUNDLE"}},

		// volume
		{"gallons", UnitDomainVolume, []string{"GAL", "GALLON"}},
		{"quarts", UnitDomainVolume, []string{"QT", "QUART"}},
		{"pints", UnitDomainVolume, []string{"PT", "PINT"}},
		{"fluid_ounces", UnitDomainVolume, []string{"FL OZ", "FLOZ"}},
		{"liters", UnitDomainVolume, []string{"L", "LT", "LTR"}},
		{"milliliters", UnitDomainVolume, []string{"ML"}},

		// containers
		{"cans", UnitDomainContainers, []string{"CN", "CAN", "#10 CAN"}},
		{"jars", UnitDomainContainers, []string{"JR", "JAR"}},
		{"bottles", UnitDomainContainers, []string{"BTL", "BOTTLE"}},
		{"containers", UnitDomainContainers, []string{"CTN", "CONT"}},
		{"tubs", UnitDomainContainers, []string{"TB", "TUB"}},
		{"bags", UnitDomainContainers, []string{"BG", "BAG"}},

		// produce
		{"bunch", UnitDomainProduce, []string{"BN", "BCH", "BUNCH"}},
		{"head", UnitDomainProduce, []string{"HD", "HEAD"}},
		{"basket", UnitDomainProduce, []string{"BSK", "BASKET"}},
		{"crate", UnitDomainProduce, []string{"CRT", "CRATE"}},
		{"carton", UnitDomainProduce, []string{"CRTN", "CARTON"}},
	}

	t := make(map[string]unitEntry, 64)
	for _, g := range groups {
		for _, f := range g.forms {
			t[f] = unitEntry{canonical: g.canonical, domain: g.domain}
		}
	}
	return t
}

// CanonicalUnit resolves a raw unit token (e.g. "LBS", "oz", "#") to its
// canonical name ("pounds", "ounces"). Unrecognized tokens pass through
// unchanged so downstream consumers never lose the original value.
func CanonicalUnit(raw string) (string, bool) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	if key == "" {
		return raw, false
	}
	if e, ok := unitTable[key]; ok {
		return e.canonical, true
	}
	return raw, false
}

// UnitDomainOf reports which measurement domain a raw unit token belongs to.
func UnitDomainOf(raw string) (UnitDomain, bool) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	if e, ok := unitTable[key]; ok {
		return e.domain, true
	}
	return "", false
}
