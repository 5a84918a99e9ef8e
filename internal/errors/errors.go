package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrLoginDataIncorrect is returned when login fields are missing or too long.
	ErrLoginDataIncorrect = errors.New("Incorrect login or password.")
	// ErrNoSuchUser is returned when no user matches the given username.
	ErrNoSuchUser = errors.New("No such user")
	// ErrIncorrectPassword is returned when the password does not verify.
	ErrIncorrectPassword = errors.New("Incorrect password")
	// ErrRegisterDataIncorrect is returned when registration fields are missing or too long.
	ErrRegisterDataIncorrect = errors.New("Incorrect data. Max login and password length 40 characters. Max email length 100 characters")
	// ErrIncorrectEmail is returned when the email address is malformed or too long.
	ErrIncorrectEmail = errors.New("Incorrect email address")
	// ErrUserAlreadyExists is returned when the username or email is already taken.
	ErrUserAlreadyExists = errors.New("Login or email already exists")
	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("Passwords do not match")
	// ErrTaskTextInvalid is returned when task text is empty or too long.
	ErrTaskTextInvalid = errors.New("Error: Task is empty or is too long. Max length 255 characters!")
	// ErrTaskNotFound is returned when a task does not exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrTaskNotOwned is returned when a task belongs to another user.
	ErrTaskNotOwned = errors.New("task belongs to another user")
	// ErrPageNotFound is returned when a requested page is past the last one.
	ErrPageNotFound = errors.New("page not found")
	// ErrInvalidNumber is returned when the page size is not a positive number.
	ErrInvalidNumber = errors.New("Invalid number!")
	// ErrNumberTooBig is returned when the page size exceeds the maximum.
	ErrNumberTooBig = errors.New("Invalid number! Max value 100")
	// ErrEmailExists is returned when changing to an email already in use.
	ErrEmailExists = errors.New("email address already exists")
	// ErrLoginChangeInvalid is returned when a new username is taken or too long.
	ErrLoginChangeInvalid = errors.New("login already exists or login too long. Max 40 characters")
	// ErrPasswordChangeInvalid is returned when a new password mismatches or is too long.
	ErrPasswordChangeInvalid = errors.New("Passwords do not match or password too long. Max 40 characters")
	// ErrNoUserWithEmail is returned when no user matches the reset email.
	ErrNoUserWithEmail = errors.New("No user with given email address or address is wrong!")
	// ErrChoicesMissing is returned when a vote omits one of the questions.
	ErrChoicesMissing = errors.New("You did not select a choice in all questions.")
	// ErrChoiceNotFound is returned when a voted choice does not exist.
	ErrChoiceNotFound = errors.New("choice not found")
	// ErrOpinionTooLong is returned when opinion or bug text exceeds the limit.
	ErrOpinionTooLong = errors.New("Max 255 characters!")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrMailDispatch is returned when the notification email cannot be sent.
	ErrMailDispatch = errors.New("There was a problem with resetting Your email address. Password was not reset. Problem may be connected with email server. Try again in few minutes.")
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

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrLoginDataIncorrect, ErrRegisterDataIncorrect, ErrIncorrectEmail,
		ErrTaskTextInvalid, ErrInvalidNumber, ErrNumberTooBig,
		ErrChoicesMissing, ErrOpinionTooLong:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case ErrPasswordMismatch:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISMATCH")
	case ErrPasswordChangeInvalid:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISMATCH")
	case ErrUserAlreadyExists, ErrEmailExists, ErrLoginChangeInvalid:
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE")
	case ErrIncorrectPassword, ErrTaskNotOwned, ErrInvalidRefreshToken:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "AUTH_ERROR")
	case ErrNoSuchUser, ErrNoUserWithEmail, ErrTaskNotFound, ErrPageNotFound, ErrChoiceNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case ErrMailDispatch:
		return NewHTTPError(http.StatusBadGateway, err.Error(), "TRANSPORT_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
