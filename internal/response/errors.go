package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Visitor tokens ────────────────────────────────────────────────
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid  ErrCode = "TOKEN_INVALID"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── GPA calculator ────────────────────────────────────────────────
	ErrEmptyBatch         ErrCode = "EMPTY_BATCH"
	ErrLastRow            ErrCode = "LAST_ROW"
	ErrRowNotFound        ErrCode = "ROW_NOT_FOUND"
	ErrInvalidSpreadsheet ErrCode = "INVALID_SPREADSHEET"

	// ─── Uploads ───────────────────────────────────────────────────────
	ErrFileRequired ErrCode = "FILE_REQUIRED"
	ErrFileTooLarge ErrCode = "FILE_TOO_LARGE"

	// ─── Contact ───────────────────────────────────────────────────────
	ErrDuplicateSubmission ErrCode = "DUPLICATE_SUBMISSION"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrTokenRequired:
		return "A visitor token is required."
	case ErrTokenInvalid:
		return "The visitor token is invalid or has expired."

	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "The request payload is invalid."

	case ErrEmptyBatch:
		return "Add at least one course before calculating."
	case ErrLastRow:
		return "You must have at least one course!"
	case ErrRowNotFound:
		return "That course row no longer exists."
	case ErrInvalidSpreadsheet:
		return "The uploaded file is not a readable .xlsx spreadsheet."

	case ErrFileRequired:
		return "A file upload is required."
	case ErrFileTooLarge:
		return "The uploaded file exceeds the size limit."

	case ErrDuplicateSubmission:
		return "This message was already sent. Please wait before sending it again."

	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
