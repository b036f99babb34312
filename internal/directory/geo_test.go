package directory

import (
	"math"
	"testing"

	"discount24/internal/domain"
)

func TestHaversineKm(t *testing.T) {
	sydney := domain.Coordinate{Latitude: -33.8688, Longitude: 151.2093}
	melbourne := domain.Coordinate{Latitude: -37.8136, Longitude: 144.9631}

	got := HaversineKm(sydney, melbourne)
	if math.Abs(got-713.4) > 2 {
		t.Errorf("Sydney-Melbourne = %.1f km, want ~713", got)
	}
	if d := HaversineKm(sydney, sydney); d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Coordinate
		wantErr bool
	}{
		{in: "-33.86,151.20", want: domain.Coordinate{Latitude: -33.86, Longitude: 151.20}},
		{in: " 10.5 , -20 ", want: domain.Coordinate{Latitude: 10.5, Longitude: -20}},
		{in: "Bondi Junction", wantErr: true},
		{in: "91,0", wantErr: true},
		{in: "0,181", wantErr: true},
		{in: "NaN,0", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseCoordinate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCoordinate(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseCoordinate(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestPosition_PrefersCoordinates(t *testing.T) {
	v := domain.Vendor{Location: "1,1", Coordinates: &domain.Coordinate{Latitude: 2, Longitude: 2}}
	got, ok := Position(v)
	if !ok || got.Latitude != 2 {
		t.Fatalf("Position = %+v, %v; want explicit coordinates", got, ok)
	}
}
