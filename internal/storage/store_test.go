package storage

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/avelent/mingle/internal/recorder"
	"github.com/avelent/mingle/internal/sim"
)

func testRun() (sim.Config, []recorder.Record, []sim.GreetEvent) {
	cfg := sim.DefaultConfig()
	cfg.Seed = 7
	cfg.Agents = 2

	records := []recorder.Record{
		{Tick: 1, ID: "agent-0", X: 0.5, Y: -1.25, Greeted: false},
		{Tick: 1, ID: "agent-1", X: 2, Y: 3, Greeted: true},
		{Tick: 2, ID: "agent-0", X: 1.5, Y: 0, Greeted: true},
		{Tick: 2, ID: "agent-1", X: 2.5, Y: 3.5, Greeted: true},
	}
	greets := []sim.GreetEvent{
		{Tick: 1, From: "agent-1", To: "agent-0"},
		{Tick: 2, From: "agent-0", To: "agent-1"},
	}
	return cfg, records, greets
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	cfg, records, greets := testRun()
	metricVals := map[string]float64{"greeted_fraction": 1.0}

	runID, err := st.Save(cfg, 2, metricVals, records, greets)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("expected id %s, got %s", runID, meta.ID)
	}
	if meta.Seed != 7 || meta.Agents != 2 || meta.Ticks != 2 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Greets != 2 {
		t.Errorf("expected 2 greets, got %d", meta.Greets)
	}
	if meta.Metrics["greeted_fraction"] != 1.0 {
		t.Errorf("metrics not round-tripped: %v", meta.Metrics)
	}

	loaded, err := st.LoadRecords(runID)
	if err != nil {
		t.Fatalf("load records: %v", err)
	}
	if len(loaded) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(loaded))
	}
	for i, r := range loaded {
		if r != records[i] {
			t.Errorf("record %d mismatch: %+v vs %+v", i, r, records[i])
		}
	}
}

func TestListRuns(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	cfg, records, greets := testRun()
	if _, err := st.Save(cfg, 2, nil, records, greets); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
}

func TestListMissingDir(t *testing.T) {
	st := New(t.TempDir() + "/does-not-exist")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("missing base dir should not error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	_, records, _ := testRun()
	meta := RunMetadata{ID: "run_1", Agents: 2, Ticks: 2}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, records); err != nil {
		t.Fatalf("export: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid json: %v", err)
	}
	if data.Meta.ID != "run_1" {
		t.Errorf("expected id run_1, got %s", data.Meta.ID)
	}
	if len(data.Records) != 4 {
		t.Errorf("expected 4 records, got %d", len(data.Records))
	}
	if data.Records[1].Greeted != true {
		t.Errorf("record greeted flag lost: %+v", data.Records[1])
	}
}
