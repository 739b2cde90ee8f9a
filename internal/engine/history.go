package engine

import "github.com/joedomabylv/QuickSched/internal/model"

// NextSeq returns the sequence number for the next history node appended to
// a schedule: one past the highest existing, starting at 1.
func NextSeq(nodes []model.HistoryNode) int {
	max := 0
	for i := range nodes {
		if nodes[i].Seq > max {
			max = nodes[i].Seq
		}
	}
	return max + 1
}

// TrimHistory enforces the FIFO cap on a schedule's history window. Nodes
// must be in ascending sequence order. It returns the retained window and
// the evicted oldest nodes (empty when under the cap).
func TrimHistory(nodes []model.HistoryNode, limit int) (kept, evicted []model.HistoryNode) {
	if limit <= 0 || len(nodes) <= limit {
		return nodes, nil
	}
	cut := len(nodes) - limit
	return nodes[cut:], nodes[:cut]
}

// Newest returns the most recent history node, or nil when the window is
// empty. Undo pops this node.
func Newest(nodes []model.HistoryNode) *model.HistoryNode {
	if len(nodes) == 0 {
		return nil
	}
	latest := &nodes[0]
	for i := 1; i < len(nodes); i++ {
		if nodes[i].Seq > latest.Seq {
			latest = &nodes[i]
		}
	}
	return latest
}
