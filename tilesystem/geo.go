package tilesystem

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

// Point returns geo as an orb point, longitude first.
func (g Geo) Point() orb.Point {
	return orb.Point{g.Lon, g.Lat}
}

func (g Geo) String() string {
	return fmt.Sprintf("%g,%g", g.Lat, g.Lon)
}

// GeoFromPoint reads an orb point as longitude, latitude.
func GeoFromPoint(p orb.Point) Geo {
	return Geo{Lat: p.Lat(), Lon: p.Lon()}
}

func (p Pixel) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

func (l Level) Zoom() maptile.Zoom {
	return maptile.Zoom(l)
}

// TileOf returns the tile containing pixel at level. Tile indices are
// uint32, so level must not exceed 32.
func TileOf(pixel Pixel, level Level) maptile.Tile {
	size := int64(mapSize(level))
	x := int64(clip(float64(pixel.X), 0, float64(size-1)))
	y := int64(clip(float64(pixel.Y), 0, float64(size-1)))

	return maptile.New(uint32(x/tileSize), uint32(y/tileSize), level.Zoom())
}
