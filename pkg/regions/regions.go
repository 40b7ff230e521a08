package regions

import (
	"fmt"
	"strings"
)

// Simple package containing the region list.
// Create the types for clarity.
type (
	MainRegion string
	SubRegion  string
)

// List of regions.
// The main region hosts the account endpoints, the sub region the platform ones.
var RegionList = map[MainRegion][]SubRegion{
	"AMERICAS": {"BR1", "LA1", "LA2", "NA1"},
	"EUROPE":   {"EUN1", "EUW1", "TR1", "ME1", "RU"},
	"ASIA":     {"KR", "JP1"},
	"SEA":      {"OC1", "SG2", "TW2", "VN2"},
}

// MainRegionOf returns the main region routing a given sub region.
func MainRegionOf(subRegion SubRegion) (MainRegion, error) {
	normalized := SubRegion(strings.ToUpper(strings.TrimSpace(string(subRegion))))
	for main, subs := range RegionList {
		for _, sub := range subs {
			if sub == normalized {
				return main, nil
			}
		}
	}
	return "", fmt.Errorf("unknown sub region %q", subRegion)
}

// PlatformURL returns the base URL of the platform endpoints.
func PlatformURL(subRegion SubRegion) string {
	return fmt.Sprintf("https://%s.api.riotgames.com", strings.ToLower(string(subRegion)))
}

// RegionalURL returns the base URL of the regional endpoints.
func RegionalURL(mainRegion MainRegion) string {
	return fmt.Sprintf("https://%s.api.riotgames.com", strings.ToLower(string(mainRegion)))
}
