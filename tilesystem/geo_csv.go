package tilesystem

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadGeoCSV parses "lat,lon" lines. Blank lines and lines starting with #
// are skipped.
func ReadGeoCSV(r io.Reader) ([]Geo, error) {
	geos := make([]Geo, 0)

	err := readPairs(r, func(line int, a string, b string) error {
		lat, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("Failed to parse latitude on line %d, %w", line, err)
		}

		lon, err := strconv.ParseFloat(b, 64)
		if err != nil {
			return fmt.Errorf("Failed to parse longitude on line %d, %w", line, err)
		}

		geos = append(geos, Geo{Lat: lat, Lon: lon})
		return nil
	})

	if err != nil {
		return nil, err
	}

	return geos, nil
}

// ReadPixelCSV parses "x,y" lines the same way ReadGeoCSV parses "lat,lon".
func ReadPixelCSV(r io.Reader) ([]Pixel, error) {
	pixels := make([]Pixel, 0)

	err := readPairs(r, func(line int, a string, b string) error {
		x, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return fmt.Errorf("Failed to parse x on line %d, %w", line, err)
		}

		y, err := strconv.ParseInt(b, 10, 64)
		if err != nil {
			return fmt.Errorf("Failed to parse y on line %d, %w", line, err)
		}

		pixels = append(pixels, Pixel{X: x, Y: y})
		return nil
	})

	if err != nil {
		return nil, err
	}

	return pixels, nil
}

func readPairs(r io.Reader, visitor func(line int, a string, b string) error) error {
	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		parts := strings.Split(text, ",")
		if len(parts) != 2 {
			return fmt.Errorf("Line %d must hold 2 comma-separated values", line)
		}

		err := visitor(line, strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}
	}

	return scanner.Err()
}
