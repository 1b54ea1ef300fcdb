package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"

	"github.com/paulmach/orb"
	"github.com/schollz/progressbar/v3"

	"github.com/tilezen/go-tilesystem/tilesystem"
)

var zoomRangeRegex = regexp.MustCompile(`^\d+\-\d+$`)

func processResults(waitGroup *sync.WaitGroup, results chan *tilesystem.PixelResult, processor tilesystem.PixelOutputter, bar *progressbar.ProgressBar) {
	defer waitGroup.Done()

	counter := 0
	for result := range results {
		err := processor.Save(result)
		if err != nil {
			log.Printf("Couldn't save pixel %+v", err)
		}

		counter++
		bar.Add(1)
	}
	log.Printf("Saved %d conversions", counter)

	err := processor.Close()
	if err != nil {
		log.Printf("Error closing processor: %+v", err)
	}
}

// parseZooms accepts a comma-separated list of levels or a '{MIN}-{MAX}' range.
func parseZooms(zoomsStr string) ([]tilesystem.Level, error) {
	if zoomRangeRegex.MatchString(zoomsStr) {
		zoomRange := strings.Split(zoomsStr, "-")

		minZoom, err := strconv.ParseUint(zoomRange[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("Failed to parse min zoom (%s), %w", zoomRange[0], err)
		}

		maxZoom, err := strconv.ParseUint(zoomRange[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("Failed to parse max zoom (%s), %w", zoomRange[1], err)
		}

		if minZoom > maxZoom {
			return nil, fmt.Errorf("Invalid zoom range %s", zoomsStr)
		}

		zooms := make([]tilesystem.Level, 0)
		for z := minZoom; z <= maxZoom; z++ {
			zooms = append(zooms, tilesystem.Level(z))
		}
		return zooms, nil
	}

	zoomsStrSplit := strings.Split(zoomsStr, ",")
	zooms := make([]tilesystem.Level, len(zoomsStrSplit))
	for i, zoomStr := range zoomsStrSplit {
		z, err := strconv.ParseUint(strings.TrimSpace(zoomStr), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("Zoom list could not be parsed: %w", err)
		}

		zooms[i] = tilesystem.Level(z)
	}
	return zooms, nil
}

// buildRequests pairs every input point with every level.
func buildRequests(geos []tilesystem.Geo, pixels []tilesystem.Pixel, zooms []tilesystem.Level) []*tilesystem.ConversionRequest {
	requests := make([]*tilesystem.ConversionRequest, 0, (len(geos)+len(pixels))*len(zooms))

	for _, z := range zooms {
		for _, g := range geos {
			requests = append(requests, &tilesystem.ConversionRequest{Geo: g, Level: z})
		}
		for _, p := range pixels {
			requests = append(requests, &tilesystem.ConversionRequest{Pixel: p, Level: z, Reverse: true})
		}
	}

	return requests
}

// parseBounds reads a south,west,north,east bounding box.
func parseBounds(boundingBoxStr string) (orb.Bound, error) {
	boundingBoxStrSplit := strings.Split(boundingBoxStr, ",")
	if len(boundingBoxStrSplit) != 4 {
		return orb.Bound{}, fmt.Errorf("Bounding box string must be a comma-separated list of 4 numbers")
	}

	boundingBoxFloats := make([]float64, 4)
	for i, bboxStr := range boundingBoxStrSplit {
		bboxFloat, err := strconv.ParseFloat(strings.TrimSpace(bboxStr), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("Bounding box string could not be parsed as numbers, %w", err)
		}

		boundingBoxFloats[i] = bboxFloat
	}

	return orb.Bound{
		Min: orb.Point{boundingBoxFloats[1], boundingBoxFloats[0]},
		Max: orb.Point{boundingBoxFloats[3], boundingBoxFloats[2]},
	}, nil
}

// gridRequests asks for the coordinates of every step-th pixel inside bounds,
// starting from the north-west pixel of each box.
func gridRequests(bounds orb.Bound, zooms []tilesystem.Level, step int64) []*tilesystem.ConversionRequest {
	requests := make([]*tilesystem.ConversionRequest, 0)

	tilesystem.GeneratePixelRanges(&tilesystem.GenerateRangesOptions{
		Bounds: bounds,
		Levels: zooms,
		ConsumerFunc: func(min tilesystem.Pixel, max tilesystem.Pixel, level tilesystem.Level) {
			for x := min.X; x <= max.X; x += step {
				for y := min.Y; y <= max.Y; y += step {
					requests = append(requests, &tilesystem.ConversionRequest{
						Pixel:   tilesystem.Pixel{X: x, Y: y},
						Level:   level,
						Reverse: true,
					})
				}
			}
		},
	})

	return requests
}

func main() {
	inputStr := flag.String("input", "", "Path to a file of 'lat,lon' lines, or 'x,y' lines with -reverse. Defaults to stdin.")
	outputMode := flag.String("output-mode", "csv", "Valid modes are: csv, sqlite.")
	outputDSN := flag.String("dsn", "", "Path, or DSN string, to output files.")
	zoomsStr := flag.String("zooms", "0,1,2,3,4,5,6,7,8,9,10", "Comma-separated list of zoom levels or a '{MIN_ZOOM}-{MAX_ZOOM}' range string.")
	numWorkers := flag.Int("workers", 4, "Number of conversion workers to use.")
	reverse := flag.Bool("reverse", false, "Convert pixel coordinates to latitude and longitude.")
	boundingBoxStr := flag.String("bounds", "", "Comma-separated bounding box in south,west,north,east format. Converts a pixel grid over the box instead of reading -input.")
	step := flag.Int64("step", 256, "(For -bounds) Distance in pixels between converted grid pixels.")
	cpuProfile := flag.String("cpuprofile", "", "Enables CPU profiling. Saves the dump to the given path.")
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	if *outputDSN == "" {
		log.Fatalf("Output DSN (-dsn) is required")
	}

	zooms, err := parseZooms(*zoomsStr)
	if err != nil {
		log.Fatalf("%s", err)
	}

	var requests []*tilesystem.ConversionRequest

	if *boundingBoxStr != "" {
		if *step <= 0 {
			log.Fatalf("Step (-step) must be positive")
		}

		bounds, err := parseBounds(*boundingBoxStr)
		if err != nil {
			log.Fatalf("%s", err)
		}

		log.Printf("Bounds cover %d pixels, converting every %d", tilesystem.CountPixels(bounds, zooms), *step)
		requests = gridRequests(bounds, zooms, *step)
	} else {
		input := os.Stdin
		if *inputStr != "" {
			input, err = os.Open(*inputStr)
			if err != nil {
				log.Fatalf("Couldn't open input %s: %+v", *inputStr, err)
			}
			defer input.Close()
		}

		var geos []tilesystem.Geo
		var pixels []tilesystem.Pixel
		if *reverse {
			pixels, err = tilesystem.ReadPixelCSV(input)
		} else {
			geos, err = tilesystem.ReadGeoCSV(input)
		}
		if err != nil {
			log.Fatalf("Couldn't read input: %+v", err)
		}

		requests = buildRequests(geos, pixels, zooms)
	}

	var outputter tilesystem.PixelOutputter
	var outputterErr error

	switch *outputMode {
	case "csv":
		outputter, outputterErr = tilesystem.NewCSVOutputter(*outputDSN)
	case "sqlite":
		outputter, outputterErr = tilesystem.NewSqliteOutputter(*outputDSN)
	default:
		log.Fatalf("Unknown outputter: %s", *outputMode)
	}

	if outputterErr != nil {
		log.Fatalf("Couldn't create %s output: %+v", *outputMode, outputterErr)
	}

	err = outputter.CreatePixels()
	if err != nil {
		log.Fatalf("Failed to create %s output: %+v", *outputMode, err)
	}

	log.Printf("Created %s output\n", *outputMode)

	bar := progressbar.Default(int64(len(requests)), "converting")

	jobs := make(chan *tilesystem.ConversionRequest, 2000)
	results := make(chan *tilesystem.PixelResult, 2000)

	workerWG := &sync.WaitGroup{}
	for w := 0; w < *numWorkers; w++ {
		workerWG.Add(1)
		go func(id int) {
			defer workerWG.Done()
			tilesystem.ConversionWorker(id, jobs, results)
		}(w)
	}

	resultWG := &sync.WaitGroup{}
	resultWG.Add(1)
	go processResults(resultWG, results, outputter, bar)

	for _, request := range requests {
		jobs <- request
	}
	close(jobs)
	log.Print("Job queue closed")

	// When the workers are done, close the results channel
	workerWG.Wait()
	close(results)
	log.Print("Finished converting")

	// Wait for the results to be written out
	resultWG.Wait()
	bar.Finish()
	log.Print("Finished writing results")
}
