package http

import (
	"encoding/json"
	"errors"
	"log"
	gohttp "net/http"
	"regexp"
	"strconv"

	"github.com/tilezen/go-tilesystem/tilesystem"
)

var (
	pixelRegex = regexp.MustCompile(`^\/pixel\/(\d+)\/(-?[\d.]+)\/(-?[\d.]+)$`)
	geoRegex   = regexp.MustCompile(`^\/geo\/(\d+)\/(-?\d+)\/(-?\d+)$`)

	ErrInvalidPath = errors.New("invalid conversion path")
)

type PixelResponse struct {
	X     int64  `json:"x"`
	Y     int64  `json:"y"`
	Z     uint   `json:"z"`
	TileX uint32 `json:"tile_x"`
	TileY uint32 `json:"tile_y"`
}

type GeoResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Z   uint    `json:"z"`
}

// PixelHandler serves /pixel/{z}/{lat}/{lon}.
func PixelHandler() gohttp.HandlerFunc {

	return func(w gohttp.ResponseWriter, r *gohttp.Request) {
		geo, level, err := parseGeoFromPath(r.URL.Path)
		if err != nil {
			gohttp.NotFound(w, r)
			return
		}

		pixel := tilesystem.GeoToPixel(geo, level)
		tile := tilesystem.TileOf(pixel, level)

		writeJSON(w, &PixelResponse{X: pixel.X, Y: pixel.Y, Z: uint(level), TileX: tile.X, TileY: tile.Y})
	}
}

// GeoHandler serves /geo/{z}/{x}/{y}.
func GeoHandler() gohttp.HandlerFunc {

	return func(w gohttp.ResponseWriter, r *gohttp.Request) {
		pixel, level, err := parsePixelFromPath(r.URL.Path)
		if err != nil {
			gohttp.NotFound(w, r)
			return
		}

		geo := tilesystem.PixelToGeo(pixel, level)

		writeJSON(w, &GeoResponse{Lat: geo.Lat, Lon: geo.Lon, Z: uint(level)})
	}
}

func writeJSON(w gohttp.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error writing response: %+v", err)
	}
}

func parseLevel(s string) (tilesystem.Level, error) {
	z, err := strconv.ParseUint(s, 10, 32)
	if err != nil || tilesystem.Level(z) > tilesystem.MaxLevel {
		return 0, ErrInvalidPath
	}

	return tilesystem.Level(z), nil
}

func parseGeoFromPath(url string) (tilesystem.Geo, tilesystem.Level, error) {
	match := pixelRegex.FindStringSubmatch(url)
	if match == nil {
		return tilesystem.Geo{}, 0, ErrInvalidPath
	}

	level, err := parseLevel(match[1])
	if err != nil {
		return tilesystem.Geo{}, 0, err
	}

	lat, err := strconv.ParseFloat(match[2], 64)
	if err != nil {
		return tilesystem.Geo{}, 0, ErrInvalidPath
	}

	lon, err := strconv.ParseFloat(match[3], 64)
	if err != nil {
		return tilesystem.Geo{}, 0, ErrInvalidPath
	}

	return tilesystem.Geo{Lat: lat, Lon: lon}, level, nil
}

func parsePixelFromPath(url string) (tilesystem.Pixel, tilesystem.Level, error) {
	match := geoRegex.FindStringSubmatch(url)
	if match == nil {
		return tilesystem.Pixel{}, 0, ErrInvalidPath
	}

	level, err := parseLevel(match[1])
	if err != nil {
		return tilesystem.Pixel{}, 0, err
	}

	x, err := strconv.ParseInt(match[2], 10, 64)
	if err != nil {
		return tilesystem.Pixel{}, 0, ErrInvalidPath
	}

	y, err := strconv.ParseInt(match[3], 10, 64)
	if err != nil {
		return tilesystem.Pixel{}, 0, ErrInvalidPath
	}

	return tilesystem.Pixel{X: x, Y: y}, level, nil
}
