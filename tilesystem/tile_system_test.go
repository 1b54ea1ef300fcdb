package tilesystem

import (
	"math"
	"reflect"
	"testing"
)

var samplePoints = []Geo{
	{40.0, -105.0},
	{0.0, 0.0},
	{51.5, -0.13},
	{-33.87, 151.21},
	{35.68, 139.69},
	{-22.91, -43.17},
	{64.15, -21.94},
	{70.0, -120.0},
	{1.35, 103.82},
	{-54.8, -68.3},
}

func TestGeoToPixel(t *testing.T) {
	tests := []struct {
		name  string
		geo   Geo
		level Level
		want  Pixel
	}{
		{"boulder z7", Geo{40.0, -105.0}, 7, Pixel{6827, 12405}},
		{"origin z0", Geo{0.0, 0.0}, 0, Pixel{128, 128}},
		{"north pole clamped z1", Geo{90.0, 0.0}, 1, Pixel{256, 0}},
		{"far east clamped z3", Geo{90.0, 200.0}, 3, Pixel{2047, 0}},
		{"south west corner z2", Geo{-90.0, -180.0}, 2, Pixel{0, 1023}},
		{"demo point z17", Geo{70.0, -120.0}, 17, Pixel{5592405, 7509485}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GeoToPixel(tt.geo, tt.level); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GeoToPixel(%v, %d) = %v, want %v", tt.geo, tt.level, got, tt.want)
			}
		})
	}
}

func TestPixelToGeo(t *testing.T) {
	tests := []struct {
		name  string
		pixel Pixel
		level Level
		want  Geo
	}{
		{"boulder z7", Pixel{6827, 12405}, 7, Geo{40.0, -105.0}},
		{"north west corner z3", Pixel{0, 0}, 3, Geo{85.05, -180.0}},
		{"clamped below and right z3", Pixel{-5, 1000000000}, 3, Geo{-85.04, -180.0}},
		{"last pixel z3", Pixel{2047, 2047}, 3, Geo{-85.04, 179.82}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PixelToGeo(tt.pixel, tt.level); got != tt.want {
				t.Errorf("PixelToGeo(%v, %d) = %v, want %v", tt.pixel, tt.level, got, tt.want)
			}
		})
	}
}

func TestLatitudeClamp(t *testing.T) {
	for level := Level(0); level <= 20; level++ {
		got := GeoToPixel(Geo{90.0, 0.0}, level)
		want := GeoToPixel(Geo{maxLatitude, 0.0}, level)
		if got != want {
			t.Errorf("level %d: lat 90 gave %v, lat %v gave %v", level, got, maxLatitude, want)
		}
	}
}

// Below level 8 a pixel spans more than 0.01 degrees, so points cannot
// survive the trip at two decimal places.
func TestRoundTrip(t *testing.T) {
	for level := Level(8); level <= 20; level++ {
		for _, geo := range samplePoints {
			want := Geo{round2(geo.Lat), round2(geo.Lon)}
			if got := PixelToGeo(GeoToPixel(geo, level), level); got != want {
				t.Errorf("level %d: round trip of %v gave %v", level, geo, got)
			}
		}
	}
}

func TestGeoToPixelWithinMap(t *testing.T) {
	extremes := []Geo{
		{90.0, 200.0},
		{-90.0, -200.0},
		{1000.0, 1000.0},
		{-1000.0, -1000.0},
		{maxLatitude, maxLongitude},
		{minLatitude, minLongitude},
	}
	levels := []Level{44, 45, 46, 55, 56, 64, 200}
	for level := Level(0); level <= 23; level++ {
		levels = append(levels, level)
	}
	for _, level := range levels {
		last := int64(MapSize(level)) - 1
		for _, geo := range append(extremes, samplePoints...) {
			p := GeoToPixel(geo, level)
			if p.X < 0 || p.X > last || p.Y < 0 || p.Y > last {
				t.Errorf("level %d: %v projected outside the map to %v", level, geo, p)
			}
		}
	}
}

func TestLevelsPastDeepest(t *testing.T) {
	for _, level := range []Level{DeepestLevel + 1, 56, 64, 200} {
		if MapSize(level) != MapSize(DeepestLevel) {
			t.Errorf("MapSize(%d) = %d, want %d", level, MapSize(level), MapSize(DeepestLevel))
		}
		for _, geo := range samplePoints {
			if got, want := GeoToPixel(geo, level), GeoToPixel(geo, DeepestLevel); got != want {
				t.Errorf("level %d: %v projected to %v, want %v", level, geo, got, want)
			}
		}
		if got := GeoToPixel(Geo{0, 0}, level); got.X < 0 || got.Y < 0 {
			t.Errorf("level %d: origin projected to %v", level, got)
		}
	}
}

func TestPixelToGeoWithinRange(t *testing.T) {
	pixels := []Pixel{{0, 0}, {-1, -1}, {math.MaxInt64, math.MaxInt64}, {math.MinInt64, 0}}
	for level := Level(0); level <= 23; level++ {
		for _, p := range pixels {
			g := PixelToGeo(p, level)
			if g.Lat < round2(minLatitude) || g.Lat > round2(maxLatitude) ||
				g.Lon < minLongitude || g.Lon > maxLongitude {
				t.Errorf("level %d: %v unprojected outside range to %v", level, p, g)
			}
		}
	}
}

func TestNextLevelDoubles(t *testing.T) {
	for level := Level(0); level < 22; level++ {
		if MapSize(level+1) != 2*MapSize(level) {
			t.Fatalf("map size at level %d is not double level %d", level+1, level)
		}
		for _, geo := range samplePoints {
			a := GeoToPixel(geo, level)
			b := GeoToPixel(geo, level+1)
			if abs(b.X-2*a.X) > 1 || abs(b.Y-2*a.Y) > 1 {
				t.Errorf("%v: level %d gave %v, level %d gave %v", geo, level, a, level+1, b)
			}
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.125, 0.13},
		{-0.125, -0.13},
		{0.375, 0.38},
		{39.999999, 40.0},
		{-104.994, -104.99},
		{0, 0},
	}
	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFlatSignatures(t *testing.T) {
	x, y := LatLonToPixelXY(40.0, -105.0, 7)
	if x != 6827 || y != 12405 {
		t.Errorf("LatLonToPixelXY = %d,%d", x, y)
	}

	lat, lon := PixelXYToLatLon(x, y, 7)
	if lat != 40.0 || lon != -105.0 {
		t.Errorf("PixelXYToLatLon = %v,%v", lat, lon)
	}
}

func TestNaNPropagates(t *testing.T) {
	g := PixelToGeo(Pixel{0, 0}, 0)
	if math.IsNaN(g.Lat) || math.IsNaN(g.Lon) {
		t.Fatalf("unexpected NaN for valid pixel: %v", g)
	}

	// Not guarded: clip passes NaN through and the result is unspecified.
	_ = GeoToPixel(Geo{math.NaN(), math.NaN()}, 4)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func BenchmarkGeoToPixel(b *testing.B) {
	for i := 0; i < b.N; i++ {
		for _, geo := range samplePoints {
			GeoToPixel(geo, 17)
		}
	}
}

func BenchmarkPixelToGeo(b *testing.B) {
	for i := 0; i < b.N; i++ {
		PixelToGeo(Pixel{5592405, 7509485}, 17)
	}
}
