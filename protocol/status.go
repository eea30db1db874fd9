package protocol

import "github.com/coingaming/gremlex/errors"

// Gremlin server response status codes
const (
	StatusSuccess            = 200
	StatusNoContent          = 204
	StatusPartialContent     = 206
	StatusUnauthorized       = 401
	StatusMalformedRequest   = 409
	StatusInvalidArguments   = 499
	StatusServerError        = 500
	StatusScriptEvaluation   = 597
	StatusServerTimeout      = 598
	StatusServerSerializeErr = 599
)

// errorCodePriority is the order in which error codes are considered when a
// batch carries more than one. Terminal 200/204 always win over errors; among
// errors the first present in this order decides the outcome.
var errorCodePriority = []int{
	StatusUnauthorized,
	StatusMalformedRequest,
	StatusInvalidArguments,
	StatusServerError,
	StatusScriptEvaluation,
	StatusServerTimeout,
	StatusServerSerializeErr,
}

// errorCodes maps server status codes to the caller-visible error taxonomy.
var errorCodes = map[int]errors.Code{
	StatusUnauthorized:       errors.CodeUnauthorized,
	StatusMalformedRequest:   errors.CodeMalformedRequest,
	StatusInvalidArguments:   errors.CodeInvalidRequestArguments,
	StatusServerError:        errors.CodeServerError,
	StatusScriptEvaluation:   errors.CodeScriptEvaluationError,
	StatusServerTimeout:      errors.CodeServerTimeout,
	StatusServerSerializeErr: errors.CodeServerSerializationError,
}
