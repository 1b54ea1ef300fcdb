package tilesystem

import (
	"log/slog"
	"math"

	"github.com/paulmach/orb"
)

type GeneratePixelRangesConsumerFunc func(min Pixel, max Pixel, level Level)

type GenerateRangesOptions struct {
	Bounds       orb.Bound
	Levels       []Level
	ConsumerFunc GeneratePixelRangesConsumerFunc
}

// GeneratePixelRanges reports the north-west and south-east pixels covering
// each box of opts.Bounds at every requested level.
func GeneratePixelRanges(opts *GenerateRangesOptions) {
	bounds := opts.Bounds
	consumer := opts.ConsumerFunc

	var boxes []orb.Bound
	if bounds.Min.X() > bounds.Max.X() {
		boxes = []orb.Bound{
			{
				Min: orb.Point{minLongitude, bounds.Min.Y()},
				Max: bounds.Max,
			},
			{
				Min: bounds.Min,
				Max: orb.Point{maxLongitude, bounds.Max.Y()},
			},
		}
	} else {
		boxes = []orb.Bound{bounds}
	}

	slog.Debug("RANGE", "boxes", boxes)

	for _, box := range boxes {
		// Clamp the individual boxes to web mercator limits
		clampedBox := orb.Bound{
			Min: orb.Point{
				math.Max(minLongitude, box.Min.X()),
				math.Max(minLatitude, box.Min.Y()),
			},
			Max: orb.Point{
				math.Min(maxLongitude, box.Max.X()),
				math.Min(maxLatitude, box.Max.Y()),
			},
		}

		slog.Debug("CLAMP", "box", box, "clamped", clampedBox)

		// Pixel Y grows southward, so the north-west corner is the minimum
		northWest := GeoFromPoint(orb.Point{clampedBox.Min.X(), clampedBox.Max.Y()})
		southEast := GeoFromPoint(orb.Point{clampedBox.Max.X(), clampedBox.Min.Y()})

		for _, level := range opts.Levels {
			consumer(GeoToPixel(northWest, level), GeoToPixel(southEast, level), level)
		}
	}
}

// CountPixels returns the number of pixels covered by bounds over levels.
func CountPixels(bounds orb.Bound, levels []Level) uint64 {
	var total uint64

	GeneratePixelRanges(&GenerateRangesOptions{
		Bounds: bounds,
		Levels: levels,
		ConsumerFunc: func(min Pixel, max Pixel, level Level) {
			total += uint64(max.X-min.X+1) * uint64(max.Y-min.Y+1)
		},
	})

	return total
}
