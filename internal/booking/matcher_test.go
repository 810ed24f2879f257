package booking

import (
	"testing"

	"github.com/baodhg/EV-Battery-Swap-Station-Management-System/internal/battery"
)

func candidate(id, stationID int64, status, borrowStatus, batteryType string) *battery.Battery {
	return &battery.Battery{
		ID:           id,
		Name:         "B",
		Status:       status,
		Type:         batteryType,
		BorrowStatus: borrowStatus,
		StationID:    &stationID,
	}
}

func TestMatchBattery_FirstByID(t *testing.T) {
	candidates := []*battery.Battery{
		candidate(1, 1, "Full", "Available", "Standard (75 kWh)"),
		candidate(2, 1, "Full", "Available", "Standard (75 kWh)"),
	}

	got := MatchBattery(candidates, 1, "Standard (75 kWh)")
	if got == nil || got.ID != 1 {
		t.Errorf("MatchBattery() = %v, want battery 1", got)
	}
}

func TestMatchBattery_ChargeStatusCaseSensitive(t *testing.T) {
	candidates := []*battery.Battery{
		candidate(1, 1, "full", "Available", "Standard"),
		candidate(2, 1, "FULL", "Available", "Standard"),
		candidate(3, 1, "Full", "Available", "Standard"),
	}

	got := MatchBattery(candidates, 1, "Standard")
	if got == nil || got.ID != 3 {
		t.Errorf("MatchBattery() = %v, want battery 3 (exact Full only)", got)
	}
}

func TestMatchBattery_BorrowStatusCaseInsensitive(t *testing.T) {
	candidates := []*battery.Battery{
		candidate(1, 1, "Full", "Not Available", "Standard"),
		candidate(2, 1, "Full", "AVAILABLE", "Standard"),
	}

	got := MatchBattery(candidates, 1, "Standard")
	if got == nil || got.ID != 2 {
		t.Errorf("MatchBattery() = %v, want battery 2", got)
	}
}

func TestMatchBattery_TypeIgnoresWhitespaceAndCase(t *testing.T) {
	candidates := []*battery.Battery{
		candidate(1, 1, "Full", "Available", " Extended(90 kWh) "),
	}

	got := MatchBattery(candidates, 1, "Extended (90 kWh)")
	if got == nil || got.ID != 1 {
		t.Errorf("MatchBattery() = %v, want battery 1 despite spacing differences", got)
	}

	got = MatchBattery(candidates, 1, "extended (90 KWH)")
	if got == nil || got.ID != 1 {
		t.Errorf("MatchBattery() = %v, want battery 1 despite case differences", got)
	}
}

func TestMatchBattery_StationMustMatch(t *testing.T) {
	candidates := []*battery.Battery{
		candidate(1, 2, "Full", "Available", "Standard"),
	}

	if got := MatchBattery(candidates, 1, "Standard"); got != nil {
		t.Errorf("MatchBattery() = %v, want nil for wrong station", got)
	}
}

func TestMatchBattery_UnassignedBatterySkipped(t *testing.T) {
	unassigned := &battery.Battery{
		ID: 1, Status: "Full", BorrowStatus: "Available", Type: "Standard",
	}

	if got := MatchBattery([]*battery.Battery{unassigned}, 1, "Standard"); got != nil {
		t.Errorf("MatchBattery() = %v, want nil for unassigned battery", got)
	}
}

func TestMatchBattery_NoMatch(t *testing.T) {
	candidates := []*battery.Battery{
		candidate(1, 1, "Charging", "Available", "Standard"),
		candidate(2, 1, "Full", "Available", "Extended"),
	}

	if got := MatchBattery(candidates, 1, "Standard"); got != nil {
		t.Errorf("MatchBattery() = %v, want nil", got)
	}
}

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		a, b string
		same bool
	}{
		{"Extended (90 kWh)", " Extended(90 kWh) ", true},
		{"Standard (75 kWh)", "standard(75kwh)", true},
		{"Standard (75 kWh)", "Extended (90 kWh)", false},
		{"Type\tA", "Type A", true},
	}

	for _, tt := range tests {
		got := normalizeType(tt.a) == normalizeType(tt.b)
		if got != tt.same {
			t.Errorf("normalizeType(%q) == normalizeType(%q) = %v, want %v", tt.a, tt.b, got, tt.same)
		}
	}
}
