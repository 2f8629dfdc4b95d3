package geo

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name    string
		lat1    float64
		lng1    float64
		lat2    float64
		lng2    float64
		wantMin float64
		wantMax float64
	}{
		{
			name: "identical points",
			lat1: 12.9716, lng1: 77.5946,
			lat2: 12.9716, lng2: 77.5946,
			wantMin: 0, wantMax: 0,
		},
		{
			name: "bangalore offset",
			lat1: 12.9716, lng1: 77.5946,
			lat2: 12.9800, lng2: 77.6000,
			wantMin: 1000, wantMax: 1200,
		},
		{
			name: "one degree of latitude",
			lat1: 0, lng1: 0,
			lat2: 1, lng2: 0,
			wantMin: 111190, wantMax: 111200,
		},
		{
			name: "antipodal",
			lat1: 0, lng1: 0,
			lat2: 0, lng2: 180,
			wantMin: math.Pi*EarthRadiusMeters - 1, wantMax: math.Pi*EarthRadiusMeters + 1,
		},
		{
			name: "poles",
			lat1: 90, lng1: 0,
			lat2: -90, lng2: 0,
			wantMin: math.Pi*EarthRadiusMeters - 1, wantMax: math.Pi*EarthRadiusMeters + 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.IsNaN(got) {
				t.Fatalf("Distance() = NaN")
			}
			if got < tt.wantMin || got > tt.wantMax {
				t.Fatalf("Distance() = %f, want in [%f, %f]", got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	points := [][2]float64{
		{12.9716, 77.5946},
		{-33.8688, 151.2093},
		{51.5074, -0.1278},
		{0, 180},
		{-90, 0},
	}

	for _, p := range points {
		for _, q := range points {
			d1 := Distance(p[0], p[1], q[0], q[1])
			d2 := Distance(q[0], q[1], p[0], p[1])
			if math.Abs(d1-d2) > 1e-6 {
				t.Fatalf("Distance(%v,%v) = %f, reverse = %f", p, q, d1, d2)
			}
		}
	}
}

func TestWithinRadius(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		radius   float64
		want     bool
	}{
		{name: "inside", distance: 10, radius: 100, want: true},
		{name: "boundary is inclusive", distance: 100, radius: 100, want: true},
		{name: "outside", distance: 100.01, radius: 100, want: false},
		{name: "zero radius same point", distance: 0, radius: 0, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinRadius(tt.distance, tt.radius); got != tt.want {
				t.Fatalf("WithinRadius(%v, %v) = %v, want %v", tt.distance, tt.radius, got, tt.want)
			}
		})
	}
}

func TestValidCoordinate(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lng  float64
		want bool
	}{
		{name: "ok", lat: 12.9, lng: 77.5, want: true},
		{name: "edges", lat: -90, lng: 180, want: true},
		{name: "lat too big", lat: 90.1, lng: 0, want: false},
		{name: "lng too small", lat: 0, lng: -180.5, want: false},
		{name: "nan", lat: math.NaN(), lng: 0, want: false},
		{name: "inf", lat: 0, lng: math.Inf(1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidCoordinate(tt.lat, tt.lng); got != tt.want {
				t.Fatalf("ValidCoordinate(%v, %v) = %v, want %v", tt.lat, tt.lng, got, tt.want)
			}
		})
	}
}
