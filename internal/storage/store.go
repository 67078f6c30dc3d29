// Package storage persists completed runs: one directory per run with
// JSON metadata and CSV record tables.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/avelent/mingle/internal/recorder"
	"github.com/avelent/mingle/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Agents      int                `json:"agents"`
	Ticks       int                `json:"ticks"`
	GreetRadius float64            `json:"greet_radius"`
	MoveMin     float64            `json:"move_min"`
	MoveMax     float64            `json:"move_max"`
	Index       string             `json:"index"`
	Greets      int                `json:"greets"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes one run directory: metadata.json, records.csv with one
// row per agent per tick, and greets.csv with the greet event log.
func (s *Store) Save(cfg sim.Config, ticks int, metrics map[string]float64, records []recorder.Record, greets []sim.GreetEvent) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Timestamp:   time.Now(),
		Seed:        cfg.Seed,
		Agents:      cfg.Agents,
		Ticks:       ticks,
		GreetRadius: cfg.GreetRadius,
		MoveMin:     cfg.Move.Min,
		MoveMax:     cfg.Move.Max,
		Index:       cfg.Index,
		Greets:      len(greets),
		Metrics:     metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeRecords(filepath.Join(runDir, "records.csv"), records); err != nil {
		return "", err
	}
	if err := writeGreets(filepath.Join(runDir, "greets.csv"), greets); err != nil {
		return "", err
	}

	return runID, nil
}

func writeRecords(path string, records []recorder.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"tick", "id", "x", "y", "greeted"}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Tick),
			r.ID,
			strconv.FormatFloat(r.X, 'f', 6, 64),
			strconv.FormatFloat(r.Y, 'f', 6, 64),
			strconv.FormatBool(r.Greeted),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeGreets(path string, greets []sim.GreetEvent) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"tick", "from", "to"}); err != nil {
		return err
	}
	for _, g := range greets {
		row := []string{strconv.Itoa(g.Tick), string(g.From), string(g.To)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadRecords(runID string) ([]recorder.Record, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "records.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return []recorder.Record{}, nil
	}

	records := make([]recorder.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 5 {
			continue
		}
		tick, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		x, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			continue
		}
		y, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			continue
		}
		greeted, err := strconv.ParseBool(row[4])
		if err != nil {
			continue
		}
		records = append(records, recorder.Record{
			Tick:    tick,
			ID:      row[1],
			X:       x,
			Y:       y,
			Greeted: greeted,
		})
	}
	return records, nil
}
