package tilesystem

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const csvHeader = "lat,lon,level,x,y\n"

type csvOutputter struct {
	PixelOutputter
	path      string
	fh        *os.File
	writer    *bufio.Writer
	hasPixels bool
}

func NewCSVOutputter(dsn string) (*csvOutputter, error) {

	path, err := filepath.Abs(dsn)

	if err != nil {
		return nil, err
	}

	o := csvOutputter{
		path: path,
	}

	return &o, nil
}

func (o *csvOutputter) Close() error {
	if o.fh == nil {
		return nil
	}

	err := o.writer.Flush()

	if err2 := o.fh.Close(); err2 != nil && err == nil {
		err = err2
	}

	o.fh = nil
	o.writer = nil
	o.hasPixels = false

	return err
}

func (o *csvOutputter) CreatePixels() error {
	if o.hasPixels {
		return nil
	}

	root := filepath.Dir(o.path)

	info, err := os.Stat(root)

	if err != nil {

		if os.IsNotExist(err) {

			err := os.MkdirAll(root, 0755)

			if err != nil {
				return err
			}
		} else {
			return err
		}

	} else {

		if !info.IsDir() {
			return errors.New("Parent of output path is a file")
		}
	}

	fh, err := os.OpenFile(o.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)

	if err != nil {
		return err
	}

	o.fh = fh
	o.writer = bufio.NewWriter(fh)

	_, err = o.writer.WriteString(csvHeader)

	if err != nil {
		return fmt.Errorf("Failed to write header, %w", err)
	}

	o.hasPixels = true
	return nil
}

func (o *csvOutputter) Save(result *PixelResult) error {
	if err := o.CreatePixels(); err != nil {
		return err
	}

	line := strconv.FormatFloat(result.Geo.Lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(result.Geo.Lon, 'f', -1, 64) + "," +
		strconv.FormatUint(uint64(result.Level), 10) + "," +
		strconv.FormatInt(result.Pixel.X, 10) + "," +
		strconv.FormatInt(result.Pixel.Y, 10) + "\n"

	_, err := o.writer.WriteString(line)
	return err
}
