package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/joedomabylv/QuickSched/internal/model"
)

func nodes(seqs ...int) []model.HistoryNode {
	scheduleID := uuid.New()
	out := make([]model.HistoryNode, len(seqs))
	for i, s := range seqs {
		out[i] = model.HistoryNode{ScheduleID: scheduleID, Seq: s}
	}
	return out
}

func TestNextSeq(t *testing.T) {
	if got := NextSeq(nil); got != 1 {
		t.Errorf("NextSeq(empty) = %d, want 1", got)
	}
	if got := NextSeq(nodes(1, 2, 3)); got != 4 {
		t.Errorf("NextSeq = %d, want 4", got)
	}
}

func TestTrimHistoryUnderCap(t *testing.T) {
	kept, evicted := TrimHistory(nodes(1, 2, 3), 10)
	if len(kept) != 3 || len(evicted) != 0 {
		t.Errorf("kept %d evicted %d, want 3 and 0", len(kept), len(evicted))
	}
}

func TestTrimHistoryCapKeepsNewest(t *testing.T) {
	all := nodes(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)
	kept, evicted := TrimHistory(all, 10)
	if len(kept) != 10 {
		t.Fatalf("kept %d nodes, want 10", len(kept))
	}
	if kept[0].Seq != 3 || kept[len(kept)-1].Seq != 12 {
		t.Errorf("kept window [%d..%d], want [3..12]", kept[0].Seq, kept[len(kept)-1].Seq)
	}
	if len(evicted) != 2 || evicted[0].Seq != 1 || evicted[1].Seq != 2 {
		t.Errorf("evicted %v, want the two oldest", evicted)
	}
}

func TestNewest(t *testing.T) {
	if Newest(nil) != nil {
		t.Error("Newest(empty) should be nil")
	}
	if got := Newest(nodes(2, 5, 3)); got.Seq != 5 {
		t.Errorf("Newest.Seq = %d, want 5", got.Seq)
	}
}
