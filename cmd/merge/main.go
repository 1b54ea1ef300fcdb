package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/tilezen/go-tilesystem/tilesystem"
)

func pathExists(path string) bool {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return true
}

func main() {
	outputFilename := flag.String("output", "", "The output sqlite database to write to")
	flag.Parse()
	inputFilenames := flag.Args()

	if *outputFilename == "" {
		log.Fatalf("Must specify --output path")
	}

	if len(inputFilenames) == 0 {
		log.Fatalf("Must specify at least one input path")
	}

	log.Printf("Reading %s and writing them to %s", strings.Join(inputFilenames, ", "), *outputFilename)

	// If the output file exists already we shouldn't overwrite it
	if pathExists(*outputFilename) {
		log.Fatalf("Output path %s already exists and cannot be overwritten", *outputFilename)
	}

	output, err := tilesystem.NewSqliteOutputter(*outputFilename)
	if err != nil {
		log.Fatalf("Couldn't create output database: %+v", err)
	}

	err = output.CreatePixels()
	if err != nil {
		log.Fatalf("Couldn't create output database: %+v", err)
	}

	for _, inputFilename := range inputFilenames {
		reader, err := tilesystem.NewSqliteReader(inputFilename)
		if err != nil {
			log.Fatalf("Couldn't read input database %s: %+v", inputFilename, err)
		}

		err = reader.VisitAllPixels(func(r *tilesystem.PixelResult) {
			if err := output.Save(r); err != nil {
				log.Printf("Couldn't save %s at level %d: %+v", r.Geo, r.Level, err)
			}
		})
		if err != nil {
			log.Fatalf("Couldn't read pixels from %s: %+v", inputFilename, err)
		}
		reader.Close()
	}

	if err := output.Close(); err != nil {
		log.Fatalf("Couldn't close output database: %+v", err)
	}
}
