package tilesystem

// ConversionRequest asks for one point to be converted at Level. Exactly one
// of Geo or Pixel is set, depending on Reverse.
type ConversionRequest struct {
	Geo     Geo
	Pixel   Pixel
	Level   Level
	Reverse bool
}

// PixelResult is one finished conversion. Reverse results are keyed by
// Pixel, forward results by Geo.
type PixelResult struct {
	Geo     Geo
	Level   Level
	Pixel   Pixel
	Reverse bool
}

// Convert runs the projection the request asks for.
func (r *ConversionRequest) Convert() *PixelResult {
	if r.Reverse {
		return &PixelResult{
			Geo:     PixelToGeo(r.Pixel, r.Level),
			Level:   r.Level,
			Pixel:   r.Pixel,
			Reverse: true,
		}
	}

	return &PixelResult{
		Geo:   r.Geo,
		Level: r.Level,
		Pixel: GeoToPixel(r.Geo, r.Level),
	}
}

// ConversionWorker converts requests until jobs is closed.
func ConversionWorker(id int, jobs chan *ConversionRequest, results chan *PixelResult) {
	for request := range jobs {
		results <- request.Convert()
	}
}
