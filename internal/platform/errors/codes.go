// Package errors provides structured error handling with stable codes.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// User errors
	CodeUserCredentialsRequired Code = "USER_CREDENTIALS_REQUIRED"
	CodeUserUsernameInvalid     Code = "USER_USERNAME_INVALID"
	CodeUserPasswordTooShort    Code = "USER_PASSWORD_TOO_SHORT"
	CodeUserAlreadyExists       Code = "USER_ALREADY_EXISTS"
	CodeUserInvalidCredentials  Code = "USER_INVALID_CREDENTIALS"

	// Commitment errors
	CodeCommitmentTextRequired    Code = "COMMITMENT_TEXT_REQUIRED"
	CodeCommitmentDeadlineInvalid Code = "COMMITMENT_DEADLINE_INVALID"
	CodeCommitmentUserMissing     Code = "COMMITMENT_USER_MISSING"
	CodeCommitmentNotOpen         Code = "COMMITMENT_NOT_OPEN"
	CodeCommitmentStatusInvalid   Code = "COMMITMENT_STATUS_INVALID"

	// Session errors
	CodeSessionInvalid Code = "SESSION_INVALID"
	CodeSessionExpired Code = "SESSION_EXPIRED"

	// Storage errors
	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"
	CodeUnavailable   Code = "UNAVAILABLE"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - validation failures, bad input
	case CodeUserCredentialsRequired,
		CodeUserUsernameInvalid,
		CodeUserPasswordTooShort,
		CodeCommitmentTextRequired,
		CodeCommitmentDeadlineInvalid,
		CodeCommitmentUserMissing,
		CodeCommitmentStatusInvalid:
		return http.StatusBadRequest

	// Unauthorized - authentication failures
	case CodeUserInvalidCredentials,
		CodeSessionInvalid,
		CodeSessionExpired:
		return http.StatusUnauthorized

	// Not found - resource doesn't exist
	case CodeNotFound:
		return http.StatusNotFound

	// Conflict - unique constraint or state doesn't allow operation
	case CodeUserAlreadyExists,
		CodeAlreadyExists,
		CodeCommitmentNotOpen:
		return http.StatusConflict

	// Service unavailable - dependency unreachable
	case CodeUnavailable:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// HTTPStatus resolves the HTTP status for any error chain.
// Errors outside the domain map to 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return CodeOf(err).HTTPStatus()
}
