// Tilesystem prints the pixel for a coordinate, or the coordinate for a pixel.
package main

import (
	"flag"
	"fmt"

	"github.com/tilezen/go-tilesystem/tilesystem"
)

func main() {
	var level uint
	var lat, lon float64
	var x, y int64
	var reverse bool
	flag.Float64Var(&lat, "lat", 70.0, "latitude (degree)")
	flag.Float64Var(&lon, "lon", -120.0, "longitude (degree)")
	flag.Int64Var(&x, "x", 0, "pixel x, with -reverse")
	flag.Int64Var(&y, "y", 0, "pixel y, with -reverse")
	flag.UintVar(&level, "zoom", 17, "zoom level")
	flag.BoolVar(&reverse, "reverse", false, "convert -x/-y to latitude and longitude")
	flag.Parse()

	if reverse {
		fmt.Println(tilesystem.PixelToGeo(tilesystem.Pixel{X: x, Y: y}, tilesystem.Level(level)))
		return
	}

	fmt.Println(tilesystem.GeoToPixel(tilesystem.Geo{Lat: lat, Lon: lon}, tilesystem.Level(level)))
}
