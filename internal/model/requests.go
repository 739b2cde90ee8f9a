package model

// PriorityLevel selects the uniform bonus added to every score computed for
// a generation run: none, low, or high. The point values come from config.
type PriorityLevel string

const (
	PriorityNone PriorityLevel = "NONE"
	PriorityLow  PriorityLevel = "LOW"
	PriorityHigh PriorityLevel = "HIGH"
)

// GenerateScheduleRequest asks for a new template schedule version built
// from the selected TAs.
type GenerateScheduleRequest struct {
	TAIDs         []int  `json:"ta_ids" binding:"required"`
	PriorityBonus string `json:"priority_bonus" binding:"omitempty,oneof=NONE LOW HIGH"`
}

// ManualAssignRequest places one TA into one lab on a schedule.
type ManualAssignRequest struct {
	TAID  int `json:"ta_id" binding:"required"`
	LabID int `json:"lab_id" binding:"required"`
}

// UnassignRequest clears a lab's assignment on a schedule.
type UnassignRequest struct {
	LabID int `json:"lab_id" binding:"required"`
}

// ConfirmSwitchRequest applies a previously recommended switch: the TA on
// the selected lab and the TA on the other lab exchange places.
type ConfirmSwitchRequest struct {
	SelectedLabID int `json:"selected_lab_id" binding:"required"`
	OtherLabID    int `json:"other_lab_id" binding:"required"`
}
