package runledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	ledger, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = ledger.Close() })
	return ledger
}

func TestRecordAndList(t *testing.T) {
	ledger := openTestLedger(t)
	ctx := context.Background()
	runID := uuid.NewString()

	entries := []Entry{
		{RunID: runID, Observation: "00032766002", Filter: "w2", Status: StatusProcessed, Snapshots: 3},
		{RunID: runID, Observation: "00032766002", Filter: "m2", Status: StatusSkippedNoTemplate, Detail: "no scattered light image"},
		{RunID: runID, Observation: "00099999001", Status: StatusNoImages},
	}
	for _, e := range entries {
		if err := ledger.Record(ctx, e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := ledger.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	// Newest first.
	if got[0].Observation != "00099999001" || got[0].Status != StatusNoImages {
		t.Errorf("unexpected newest entry: %+v", got[0])
	}
	if got[2].Snapshots != 3 || got[2].Status != StatusProcessed {
		t.Errorf("unexpected oldest entry: %+v", got[2])
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("created_at should round trip")
	}
}

func TestListLimit(t *testing.T) {
	ledger := openTestLedger(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		e := Entry{RunID: "r", Observation: "00032766002", Filter: "w2", Status: StatusProcessed}
		if err := ledger.Record(ctx, e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := ledger.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 entries with limit, got %d", len(got))
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	if err := first.Record(context.Background(), Entry{RunID: "r", Observation: "x", Status: StatusFailed}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("re-Open failed: %v", err)
	}
	defer second.Close()

	got, err := second.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("entries should survive reopen, got %d", len(got))
	}
}
