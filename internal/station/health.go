package station

import (
	"math"
	"strings"
)

// Inventory status labels are free text in the database; they are folded into
// semantic buckets case-insensitively. Labels outside both sets still count
// toward the total but toward neither bucket.
var (
	readyLabels       = map[string]struct{}{"AVAILABLE": {}, "READY": {}, "IDLE": {}}
	maintenanceLabels = map[string]struct{}{"MAINTENANCE": {}, "FAULTY": {}, "BROKEN": {}}
)

// Readiness tier thresholds for derived status.
const (
	activeReadiness  = 0.60
	limitedReadiness = 0.25
)

// InventoryAggregate summarizes a station's inventory slots.
type InventoryAggregate struct {
	Available   int64
	Maintenance int64
	Total       int64
}

// FoldStatusCounts buckets raw label counts into an aggregate.
func FoldStatusCounts(counts map[string]int64) InventoryAggregate {
	var agg InventoryAggregate
	for label, n := range counts {
		key := strings.ToUpper(label)
		if _, ok := readyLabels[key]; ok {
			agg.Available += n
		}
		if _, ok := maintenanceLabels[key]; ok {
			agg.Maintenance += n
		}
		agg.Total += n
	}
	return agg
}

// Utilization computes available/slots, clamped to [0,1] and rounded to two
// decimals. Zero or missing slot capacity yields 0.
func Utilization(available int64, slots int) float64 {
	if slots <= 0 {
		return 0
	}
	ratio := float64(available) / float64(slots)
	bounded := math.Max(0, math.Min(1, ratio))
	return math.Round(bounded*100) / 100
}

// DeriveStatus recomputes a station's status from its inventory aggregate.
// Rules are evaluated in order; the first match wins:
//
//  1. a stored Maintenance status is a manual override and stays put;
//  2. a stored Offline status stays Offline while the station has no
//     inventory rows at all (restocking brings it back through the rules);
//  3. batteries in maintenance and none ready means the station itself needs
//     attention;
//  4. no inventory rows at all means Offline;
//  5. nothing ready means Critical;
//  6. otherwise the readiness ratio picks the tier.
func DeriveStatus(current Status, agg InventoryAggregate, slots int) Status {
	if current == StatusMaintenance {
		return StatusMaintenance
	}
	if current == StatusOffline && agg.Total == 0 {
		return StatusOffline
	}
	if agg.Maintenance > 0 && agg.Available == 0 {
		return StatusMaintenance
	}
	if agg.Total == 0 {
		return StatusOffline
	}
	if agg.Available <= 0 {
		return StatusCritical
	}

	readiness := Utilization(agg.Available, slots)
	switch {
	case readiness >= activeReadiness:
		return StatusActive
	case readiness >= limitedReadiness:
		return StatusLimited
	default:
		return StatusCritical
	}
}
