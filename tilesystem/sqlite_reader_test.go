package tilesystem

import (
	"path/filepath"
	"testing"
)

func TestSqliteReader(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "pixels.db")

	o, err := NewSqliteOutputter(dsn)
	if err != nil {
		t.Fatalf("NewSqliteOutputter() error = %v", err)
	}
	reverse := adjacentReverseResults(3, 20)
	for _, r := range append(append([]*PixelResult{}, sampleResults...), reverse...) {
		if err := o.Save(r); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}
	if err := o.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reader, err := NewSqliteReader(dsn)
	if err != nil {
		t.Fatalf("NewSqliteReader() error = %v", err)
	}
	defer reader.Close()

	got, err := reader.GetPixel(Geo{40.0, -105.0}, 7)
	if err != nil {
		t.Fatalf("GetPixel() error = %v", err)
	}
	if got == nil || *got != *sampleResults[0] {
		t.Errorf("GetPixel() = %+v, want %+v", got, sampleResults[0])
	}

	missing, err := reader.GetPixel(Geo{40.0, -105.0}, 8)
	if err != nil || missing != nil {
		t.Errorf("GetPixel() for missing row = %+v, %v", missing, err)
	}

	geo, err := reader.GetGeo(reverse[1].Pixel, 20)
	if err != nil {
		t.Fatalf("GetGeo() error = %v", err)
	}
	if geo == nil || *geo != *reverse[1] {
		t.Errorf("GetGeo() = %+v, want %+v", geo, reverse[1])
	}

	// Forward rows are not returned as reverse conversions
	forward, err := reader.GetGeo(Pixel{6827, 12405}, 7)
	if err != nil || forward != nil {
		t.Errorf("GetGeo() for forward row = %+v, %v", forward, err)
	}

	seen := 0
	err = reader.VisitAllPixels(func(r *PixelResult) {
		seen++
		if r.Reverse && r.Geo != PixelToGeo(r.Pixel, r.Level) {
			t.Errorf("stored %+v does not match inverse projection", r)
		}
		if !r.Reverse && r.Pixel != GeoToPixel(r.Geo, r.Level) {
			t.Errorf("stored %+v does not match projection", r)
		}
	})
	if err != nil {
		t.Fatalf("VisitAllPixels() error = %v", err)
	}
	if want := len(sampleResults) + len(reverse); seen != want {
		t.Errorf("visited %d rows, want %d", seen, want)
	}
}
