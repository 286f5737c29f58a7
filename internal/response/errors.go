package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrUnauthenticated    ErrCode = "UNAUTHENTICATED"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrPasswordIncorrect  ErrCode = "PASSWORD_INCORRECT"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrRoleTooLow       ErrCode = "ROLE_TOO_LOW"
	ErrTargetOutranks   ErrCode = "TARGET_OUTRANKS_ACTOR"
	ErrCannotDeleteSelf ErrCode = "CANNOT_DELETE_SELF"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation  ErrCode = "VALIDATION_ERROR"
	ErrInvalidID   ErrCode = "INVALID_ID"
	ErrInvalidRole ErrCode = "INVALID_ROLE"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrEmailExists      ErrCode = "EMAIL_EXISTS"
	ErrSlugExists       ErrCode = "SLUG_EXISTS"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"

	// ─── Files ─────────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
// Authentication messages stay deliberately generic; they never disclose
// whether the email, password, token, or session was at fault.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "Invalid email or password."
	case ErrUnauthenticated:
		return "Authentication required."
	case ErrSessionInvalidated:
		return "Your session has ended. Please log in again."
	case ErrPasswordIncorrect:
		return "Current password is incorrect."

	case ErrForbidden:
		return "You do not have permission to perform this action."
	case ErrRoleTooLow:
		return "Your role does not allow this operation."
	case ErrTargetOutranks:
		return "Cannot act on a user with an equal or higher role."
	case ErrCannotDeleteSelf:
		return "You cannot delete your own account."

	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidRole:
		return "Invalid role."

	case ErrNotFound:
		return "Resource not found."
	case ErrEmailExists:
		return "Email is already in use."
	case ErrSlugExists:
		return "Slug is already in use."
	case ErrDependencyExists:
		return "Cannot delete because other records still reference it."

	case ErrFileRequired:
		return "A file upload is required."
	case ErrUnsupportedFile:
		return "Unsupported file type."
	case ErrFileTooLarge:
		return "File size exceeds the limit."

	case ErrRateLimitExceeded:
		return "Too many attempts. Please try again later."

	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
