package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/avelent/mingle/internal/recorder"
)

type ExportRecord struct {
	Tick    int     `json:"tick"`
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Greeted bool    `json:"greeted"`
}

type ExportData struct {
	Meta    RunMetadata    `json:"meta"`
	Records []ExportRecord `json:"records"`
}

// ExportJSON writes a saved run as a single JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, records []recorder.Record) error {
	data := ExportData{
		Meta:    meta,
		Records: make([]ExportRecord, len(records)),
	}
	for i, r := range records {
		data.Records[i] = ExportRecord{
			Tick:    r.Tick,
			ID:      r.ID,
			X:       r.X,
			Y:       r.Y,
			Greeted: r.Greeted,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONFile writes the export to path.
func ExportJSONFile(path string, meta RunMetadata, records []recorder.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, records)
}
