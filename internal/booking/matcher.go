package booking

import (
	"strings"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/battery"
)

// MatchBattery picks the battery to allocate for a swap at a station.
// Candidates must be fully charged (exact "Full" label), borrowable, and of
// the vehicle's battery type; the type comparison ignores case and all
// whitespace. Candidates are scanned in the given order, so id-ordered input
// makes the result deterministic. Returns nil when nothing matches.
func MatchBattery(candidates []*battery.Battery, stationID int64, requiredType string) *battery.Battery {
	want := normalizeType(requiredType)
	for _, b := range candidates {
		if b.Status != battery.ChargeStatusFull {
			continue
		}
		if !b.Borrowable() {
			continue
		}
		if b.StationID == nil || *b.StationID != stationID {
			continue
		}
		if normalizeType(b.Type) != want {
			continue
		}
		return b
	}
	return nil
}

// normalizeType strips all whitespace and lowercases a battery type label so
// "Extended (90 kWh)" and " Extended(90 kWh) " compare equal.
func normalizeType(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
