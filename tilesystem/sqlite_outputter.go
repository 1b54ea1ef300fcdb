package tilesystem

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3" // Register sqlite3 database driver
)

const (
	batchSize = 1000
)

func NewSqliteOutputter(dsn string) (*sqliteOutputter, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	return &sqliteOutputter{db: db}, nil
}

type sqliteOutputter struct {
	PixelOutputter
	db         *sql.DB
	txn        *sql.Tx
	batchCount int
	hasPixels  bool
}

func (o *sqliteOutputter) Close() error {
	var err error

	if o.txn != nil {
		err = o.txn.Commit()
		o.txn = nil
	}

	if o.db != nil {
		if err2 := o.db.Close(); err2 != nil {
			err = err2
		}
	}

	return err
}

func (o *sqliteOutputter) CreatePixels() error {
	if o.hasPixels {
		return nil
	}
	if _, err := o.db.Exec(`
		BEGIN TRANSACTION;
		CREATE TABLE IF NOT EXISTS pixels (
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			level INTEGER NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			reverse INTEGER NOT NULL DEFAULT 0
		);
		CREATE UNIQUE INDEX IF NOT EXISTS pixels_geo ON pixels (lat, lon, level) WHERE reverse = 0;
		CREATE UNIQUE INDEX IF NOT EXISTS pixels_xy ON pixels (level, x, y) WHERE reverse = 1;
		COMMIT;
	    PRAGMA synchronous=OFF;
	`); err != nil {
		return err
	}
	o.hasPixels = true
	return nil
}

func (o *sqliteOutputter) Save(result *PixelResult) error {
	if err := o.CreatePixels(); err != nil {
		return err
	}

	if o.txn == nil {
		tx, err := o.db.Begin()
		if err != nil {
			return err
		}
		o.txn = tx
	}

	// Each direction replaces only on its own input key
	_, err := o.txn.Exec("INSERT OR REPLACE INTO pixels (lat, lon, level, x, y, reverse) VALUES (?, ?, ?, ?, ?, ?);",
		result.Geo.Lat, result.Geo.Lon, uint64(result.Level), result.Pixel.X, result.Pixel.Y, result.Reverse)
	if err != nil {
		return err
	}

	o.batchCount++

	if o.batchCount%batchSize == 0 {
		err := o.txn.Commit()
		if err != nil {
			return err
		}
		o.batchCount = 0
		o.txn = nil
	}

	return err
}
