package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated is returned when no valid identity could be
	// established from a bearer token. Decode failures and tokens whose
	// subject no longer exists deliberately share this one value.
	ErrUnauthenticated = errors.New("could not validate credentials")
	// ErrForbidden is returned when an authenticated user lacks the admin flag.
	ErrForbidden = errors.New("admins only")
	// ErrInvalidCredentials is returned when login email or password is
	// incorrect. Unknown email and wrong password are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering with an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound is returned when a user lookup by id fails.
	ErrUserNotFound = errors.New("user not found")
	// ErrTaskNotFound is returned when a task is absent or owned by someone else.
	ErrTaskNotFound = errors.New("task not found")
	// ErrTaskNotOwned is returned when deleting a task owned by another user.
	ErrTaskNotOwned = errors.New("not authorized to modify this task")
	// ErrEmptyTitle is returned when a task title is blank.
	ErrEmptyTitle = errors.New("task title cannot be empty")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unmapped
// becomes a generic 500 so that internal detail never crosses the boundary.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthenticated.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, ErrEmailTaken.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, ErrTaskNotFound.Error(), "TASK_NOT_FOUND")
	case errors.Is(err, ErrTaskNotOwned):
		return NewHTTPError(http.StatusForbidden, ErrTaskNotOwned.Error(), "TASK_NOT_OWNED")
	case errors.Is(err, ErrEmptyTitle):
		return NewHTTPError(http.StatusBadRequest, ErrEmptyTitle.Error(), "EMPTY_TITLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
