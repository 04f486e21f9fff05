package outline

import (
	"testing"

	"github.com/dshills/editkit/internal/editor/buffer"
)

func TestCollapseExpand(t *testing.T) {
	tr := NewTracker()

	if !tr.Collapse(buffer.NewRange(5, 20), "body") {
		t.Fatal("collapse failed")
	}
	if tr.Collapse(buffer.NewRange(5, 20), "body") {
		t.Error("double collapse should fail")
	}
	if tr.Collapse(buffer.NewRange(3, 3), "") {
		t.Error("empty span should not collapse")
	}

	got := tr.CollapsedInRange(buffer.NewRange(0, 10))
	if len(got) != 1 || got[0].Tag != "body" {
		t.Errorf("got %v", got)
	}
	if len(tr.CollapsedInRange(buffer.NewRange(21, 30))) != 0 {
		t.Error("non-intersecting query should be empty")
	}

	if !tr.Expand(buffer.NewRange(5, 20)) {
		t.Error("expand failed")
	}
	if tr.Expand(buffer.NewRange(5, 20)) {
		t.Error("expanding a missing region should fail")
	}
}

func TestCaptureRestore(t *testing.T) {
	tr := NewTracker()
	tr.Collapse(buffer.NewRange(10, 30), "a")
	tr.Collapse(buffer.NewRange(50, 60), "b")

	records := Capture(tr, buffer.NewRange(0, 40))
	if len(records) != 1 {
		t.Fatalf("expected 1 captured region, got %d", len(records))
	}
	if len(tr.Regions()) != 1 {
		t.Error("captured region should be expanded")
	}

	Restore(tr, records, -7)
	regions := tr.Regions()
	if len(regions) != 2 {
		t.Fatalf("expected 2 regions after restore, got %d", len(regions))
	}
	found := false
	for _, r := range regions {
		if r.Span == buffer.NewRange(3, 23) && r.Tag == "a" {
			found = true
		}
	}
	if !found {
		t.Errorf("restored region missing, got %v", regions)
	}
	if !tr.UndoEnabled() {
		t.Error("undo hook should be re-enabled after restore")
	}
}
