package tiervalues

import (
	"slices"
	"strings"
)

var tierValues = map[string]int{
	"IRON":        0,
	"BRONZE":      10000,
	"SILVER":      20000,
	"GOLD":        30000,
	"PLATINUM":    40000,
	"EMERALD":     50000,
	"DIAMOND":     60000,
	"MASTER":      70000,
	"GRANDMASTER": 80000,
	"CHALLENGER":  90000,
}

var divisionValues = map[string]int{
	"IV":  0,
	"III": 2500,
	"II":  5000,
	"I":   7500,
}

var apexTiers = []string{"MASTER", "GRANDMASTER", "CHALLENGER"}

// Normalize upper cases and trims a tier or division label.
func Normalize(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}

// CalculateScore returns a score comparable across tiers.
// Only used for display, the leaderboard ranks on league points.
func CalculateScore(tier string, division string, lp int) int {
	tier = Normalize(tier)
	baseValue, exists := tierValues[tier]
	if !exists {
		return 0
	}

	divisionValue, exists := divisionValues[Normalize(division)]
	if !exists {
		return baseValue + lp
	}

	// Apex tiers have no divisions.
	if slices.Contains(apexTiers, tier) {
		divisionValue = 0
	}

	return baseValue + divisionValue + lp
}
