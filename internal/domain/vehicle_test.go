package domain

import "testing"

func TestNormalizePlate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"wxy1234", "WXY1234"},
		{"WXY 1234", "WXY1234"},
		{"wxy-12-34", "WXY1234"},
		{" abc 999 ", "ABC999"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizePlate(tt.in); got != tt.want {
			t.Errorf("NormalizePlate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseVehicleCategory(t *testing.T) {
	if got, ok := ParseVehicleCategory(" SUV_Truck "); !ok || got != VehicleSUVTruck {
		t.Errorf("ParseVehicleCategory(SUV_Truck) = (%q, %v)", got, ok)
	}
	if _, ok := ParseVehicleCategory("bus"); ok {
		t.Error("ParseVehicleCategory(bus) accepted an unknown category")
	}
}

func TestParseSpotCategory(t *testing.T) {
	if got, ok := ParseSpotCategory("Reserved"); !ok || got != SpotReserved {
		t.Errorf("ParseSpotCategory(Reserved) = (%q, %v)", got, ok)
	}
	if _, ok := ParseSpotCategory("rooftop"); ok {
		t.Error("ParseSpotCategory(rooftop) accepted an unknown category")
	}
}
