package model

import (
	"time"

	"github.com/google/uuid"
)

// HistoryNode records one confirmed switch or direct assignment for undo.
// Nodes are scoped to a schedule with a strictly increasing sequence number
// and kept as a rolling FIFO window, not a full log.
type HistoryNode struct {
	ID         int64     `json:"id"`
	ScheduleID uuid.UUID `json:"schedule_id"`
	Seq        int       `json:"seq"`
	TAID       int       `json:"ta_id"`
	LabID      int       `json:"lab_id"`
	// OtherTAID and OtherLabID are set only for swap nodes.
	OtherTAID  *int `json:"other_ta_id,omitempty"`
	OtherLabID *int `json:"other_lab_id,omitempty"`
	// PriorTAID records who held the lab before a direct assignment, when
	// anyone did. Undo restores it; nil means the lab was empty.
	PriorTAID    *int      `json:"prior_ta_id,omitempty"`
	IsAssignment bool      `json:"is_assignment"`
	CreatedAt    time.Time `json:"created_at"`
}
