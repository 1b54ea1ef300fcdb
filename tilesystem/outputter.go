package tilesystem

type PixelOutputter interface {
	CreatePixels() error
	Save(result *PixelResult) error
	Close() error
}
