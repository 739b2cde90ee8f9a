package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"

	// ─── Scheduling ────────────────────────────────────────────────────
	ErrSemesterExists    ErrCode = "SEMESTER_EXISTS"
	ErrLabExists         ErrCode = "LAB_EXISTS"
	ErrLabTimeOrder      ErrCode = "LAB_TIME_ORDER"
	ErrNoTAsSelected     ErrCode = "NO_TAS_SELECTED"
	ErrNoLabsInSemester  ErrCode = "NO_LABS_IN_SEMESTER"
	ErrLabUnassigned     ErrCode = "LAB_UNASSIGNED"
	ErrNothingToUndo     ErrCode = "NOTHING_TO_UNDO"
	ErrEmptySchedule     ErrCode = "EMPTY_SCHEDULE"
	ErrTANotEligible     ErrCode = "TA_NOT_ELIGIBLE"
	ErrSwitchUnavailable ErrCode = "SWITCH_UNAVAILABLE"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal          ErrCode = "INTERNAL_ERROR"
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrTokenExpired:
		return "The authentication token has expired."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrDependencyExists:
		return "This record is still referenced by other data and cannot be deleted."

	// ─── Scheduling ────────────────────────────────────────────────────
	case ErrSemesterExists:
		return "This semester already exists!"
	case ErrLabExists:
		return "A lab with this course ID already exists in the semester."
	case ErrLabTimeOrder:
		return "Lab start time must be before its end time."
	case ErrNoTAsSelected:
		return "No TAs selected for scheduling."
	case ErrNoLabsInSemester:
		return "No labs in the selected semester!"
	case ErrLabUnassigned:
		return "No TA is currently assigned to this lab."
	case ErrNothingToUndo:
		return "There is nothing to undo for this schedule."
	case ErrEmptySchedule:
		return "A schedule with no assignments cannot be propagated."
	case ErrTANotEligible:
		return "This TA is not eligible for the selected semester."
	case ErrSwitchUnavailable:
		return "No switch candidates are available for this lab."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	case ErrRateLimitExceeded:
		return "Too many requests. Please slow down."
	default:
		return "An unexpected error occurred."
	}
}
