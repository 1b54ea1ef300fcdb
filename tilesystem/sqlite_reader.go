package tilesystem

import (
	"database/sql"
	"log"

	_ "github.com/mattn/go-sqlite3" // Register sqlite3 database driver
)

type SqliteReader interface {
	Close() error
	GetPixel(geo Geo, level Level) (*PixelResult, error)
	GetGeo(pixel Pixel, level Level) (*PixelResult, error)
	VisitAllPixels(visitor func(*PixelResult)) error
}

func NewSqliteReader(dsn string) (SqliteReader, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	return NewSqliteReaderWithDatabase(db)
}

func NewSqliteReaderWithDatabase(db *sql.DB) (SqliteReader, error) {
	return &sqliteReader{db: db}, nil
}

type sqliteReader struct {
	SqliteReader
	db *sql.DB
}

// Close gracefully tears down the sqlite connection.
func (o *sqliteReader) Close() error {
	var err error

	if o.db != nil {
		if err2 := o.db.Close(); err2 != nil {
			err = err2
		}
	}

	return err
}

// GetPixel returns the stored forward conversion for geo at level, or nil
// when there is none.
func (o *sqliteReader) GetPixel(geo Geo, level Level) (*PixelResult, error) {
	var x, y int64

	result := o.db.QueryRow("SELECT x, y FROM pixels WHERE lat=? AND lon=? AND level=? AND reverse=0 LIMIT 1", geo.Lat, geo.Lon, uint64(level))
	err := result.Scan(&x, &y)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &PixelResult{Geo: geo, Level: level, Pixel: Pixel{X: x, Y: y}}, nil
}

// GetGeo returns the stored reverse conversion for pixel at level, or nil
// when there is none.
func (o *sqliteReader) GetGeo(pixel Pixel, level Level) (*PixelResult, error) {
	var lat, lon float64

	result := o.db.QueryRow("SELECT lat, lon FROM pixels WHERE level=? AND x=? AND y=? AND reverse=1 LIMIT 1", uint64(level), pixel.X, pixel.Y)
	err := result.Scan(&lat, &lon)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &PixelResult{Geo: Geo{Lat: lat, Lon: lon}, Level: level, Pixel: pixel, Reverse: true}, nil
}

// VisitAllPixels runs the given function on every stored conversion.
func (o *sqliteReader) VisitAllPixels(visitor func(*PixelResult)) error {
	rows, err := o.db.Query("SELECT lat, lon, level, x, y, reverse FROM pixels")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var r PixelResult
		var level uint64
		err := rows.Scan(&r.Geo.Lat, &r.Geo.Lon, &level, &r.Pixel.X, &r.Pixel.Y, &r.Reverse)
		if err != nil {
			log.Printf("Couldn't scan row: %+v", err)
			continue
		}

		r.Level = Level(level)
		visitor(&r)
	}
	return rows.Err()
}
