package storage

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close error: %v", err)
		}
	})
	return s
}

func TestLoadOptionsDefaults(t *testing.T) {
	s := openTestStorage(t)

	opts, err := s.LoadOptions()
	if err != nil {
		t.Fatalf("LoadOptions error: %v", err)
	}
	if diff := cmp.Diff(DefaultOptions(), opts); diff != "" {
		t.Errorf("unsaved options differ from defaults (-want +got):\n%s", diff)
	}
}

func TestSaveLoadOptions(t *testing.T) {
	s := openTestStorage(t)

	want := &EngineOptions{
		HashSizeMB:  128,
		SearchDepth: 9,
		MoveTime:    30 * time.Second,
	}
	if err := s.SaveOptions(want); err != nil {
		t.Fatalf("SaveOptions error: %v", err)
	}

	got, err := s.LoadOptions()
	if err != nil {
		t.Fatalf("LoadOptions error: %v", err)
	}
	ignoreStamp := cmpopts.IgnoreFields(EngineOptions{}, "LastAnalyzed")
	if diff := cmp.Diff(want, got, ignoreStamp); diff != "" {
		t.Errorf("options round trip (-want +got):\n%s", diff)
	}
	if got.LastAnalyzed.IsZero() {
		t.Error("LastAnalyzed not stamped on save")
	}
}

func TestLoadStatsEmpty(t *testing.T) {
	s := openTestStorage(t)

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats error: %v", err)
	}
	if diff := cmp.Diff(&AnalyzeStats{}, stats); diff != "" {
		t.Errorf("unsaved stats not empty (-want +got):\n%s", diff)
	}
}

func TestRecordAnalysisAccumulates(t *testing.T) {
	s := openTestStorage(t)

	records := []AnalyzeRecord{
		{Depth: 6, Nodes: 120_000, Elapsed: 2 * time.Second},
		{Depth: 8, Nodes: 900_000, Elapsed: 7 * time.Second, Mate: true},
		{Depth: 4, Nodes: 15_000, Elapsed: 300 * time.Millisecond},
	}
	for _, rec := range records {
		if err := s.RecordAnalysis(rec); err != nil {
			t.Fatalf("RecordAnalysis error: %v", err)
		}
	}

	got, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats error: %v", err)
	}
	want := &AnalyzeStats{
		Analyses:      3,
		TotalNodes:    1_035_000,
		TotalTime:     9*time.Second + 300*time.Millisecond,
		DeepestSearch: 8,
		MatesFound:    1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("accumulated stats (-want +got):\n%s", diff)
	}
}

func TestStatsSurviveReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if err := s.RecordAnalysis(AnalyzeRecord{Depth: 5, Nodes: 42, Elapsed: time.Second}); err != nil {
		t.Fatalf("RecordAnalysis error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer s.Close()

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats error: %v", err)
	}
	if stats.Analyses != 1 || stats.TotalNodes != 42 {
		t.Errorf("stats lost across reopen: %+v", stats)
	}
}
