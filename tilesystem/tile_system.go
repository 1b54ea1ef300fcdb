package tilesystem

import (
	"math"
)

const (
	minLatitude  float64 = -85.05112878
	maxLatitude  float64 = 85.05112878
	minLongitude float64 = -180.0
	maxLongitude float64 = 180.0

	tileSize = 256

	// MaxLevel is the deepest zoom level served over HTTP.
	MaxLevel Level = 23

	// DeepestLevel is the last level whose map edge float64 holds exactly.
	DeepestLevel Level = 45
)

// Geo is a point in degrees.
type Geo struct {
	Lat float64
	Lon float64
}

// Pixel is a point in tile pixel space, origin at the north-west corner.
type Pixel struct {
	X int64
	Y int64
}

// Level is a zoom level. Each increment doubles the map size on both axes.
// Levels past DeepestLevel project as DeepestLevel.
type Level uint

func clip(n, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, n))
}

func mapSize(level Level) uint64 {
	if level > DeepestLevel {
		level = DeepestLevel
	}
	return uint64(tileSize) << level
}

// MapSize returns the width and height of the whole map at level, in pixels.
func MapSize(level Level) uint64 {
	return mapSize(level)
}

// GeoToPixel projects geo onto the pixel grid of level. Coordinates outside
// the Web Mercator range are clamped to its edges.
func GeoToPixel(geo Geo, level Level) Pixel {
	lat := clip(geo.Lat, minLatitude, maxLatitude)
	lon := clip(geo.Lon, minLongitude, maxLongitude)

	x := (lon + 180.0) / 360.0
	sinLat := math.Sin(lat * math.Pi / 180.0)
	y := 0.5 - math.Log((1.0+sinLat)/(1.0-sinLat))/(4.0*math.Pi)

	size := float64(mapSize(level))

	pixelX := clip(x*size+0.5, 0, size-1)
	pixelY := clip(y*size+0.5, 0, size-1)

	return Pixel{X: int64(pixelX), Y: int64(pixelY)}
}

// PixelToGeo returns the coordinates of pixel at level, rounded to two
// decimal places. Pixels outside the map are clamped to its edges.
func PixelToGeo(pixel Pixel, level Level) Geo {
	size := float64(mapSize(level))

	x := (clip(float64(pixel.X), 0, size-1) / size) - 0.5
	y := 0.5 - (clip(float64(pixel.Y), 0, size-1) / size)

	lat := 90.0 - 360.0*math.Atan(math.Exp(-y*2.0*math.Pi))/math.Pi
	lon := 360.0 * x

	return Geo{Lat: round2(lat), Lon: round2(lon)}
}

// round2 rounds half away from zero, so 0.125 becomes 0.13.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LatLonToPixelXY is GeoToPixel on bare coordinates.
func LatLonToPixelXY(lat, lon float64, level Level) (int64, int64) {
	p := GeoToPixel(Geo{Lat: lat, Lon: lon}, level)
	return p.X, p.Y
}

// PixelXYToLatLon is PixelToGeo on bare coordinates.
func PixelXYToLatLon(x, y int64, level Level) (float64, float64) {
	g := PixelToGeo(Pixel{X: x, Y: y}, level)
	return g.Lat, g.Lon
}
