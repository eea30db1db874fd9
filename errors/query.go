package errors

import (
	"errors"
	"fmt"
)

// Code identifies a caller-visible query failure category. Server-side codes
// mirror the Gremlin server status codes; CodeConnectionUnavailable is raised
// locally when a query is attempted while the worker has no websocket.
type Code string

// Caller-visible query error codes
const (
	CodeConnectionUnavailable    Code = "CONNECTION_UNAVAILABLE"
	CodeUnauthorized             Code = "UNAUTHORIZED"
	CodeMalformedRequest         Code = "MALFORMED_REQUEST"
	CodeInvalidRequestArguments  Code = "INVALID_REQUEST_ARGUMENTS"
	CodeServerError              Code = "SERVER_ERROR"
	CodeScriptEvaluationError    Code = "SCRIPT_EVALUATION_ERROR"
	CodeServerTimeout            Code = "SERVER_TIMEOUT"
	CodeServerSerializationError Code = "SERVER_SERIALIZATION_ERROR"
)

// QueryError is the typed error returned to callers when a query fails with a
// recognized status. The Message carries the server's own description when one
// was provided.
type QueryError struct {
	Code    Code
	Message string
}

// Error implements the error interface
func (qe *QueryError) Error() string {
	if qe.Message == "" {
		return string(qe.Code)
	}
	return fmt.Sprintf("%s: %s", qe.Code, qe.Message)
}

// NewQueryError creates a QueryError with the given code and message
func NewQueryError(code Code, message string) *QueryError {
	return &QueryError{Code: code, Message: message}
}

// AsQueryError extracts a QueryError from an error chain, or returns nil
func AsQueryError(err error) *QueryError {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe
	}
	return nil
}
