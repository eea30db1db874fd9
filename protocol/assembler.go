package protocol

import (
	"log/slog"
	"strings"

	"github.com/coingaming/gremlex/errors"
	"github.com/coingaming/gremlex/graphson"
)

// Outcome is the terminal result of one logical query: either a list of
// decoded values or a typed query error.
type Outcome struct {
	Values []any
	Err    *errors.QueryError
}

// Assembler reduces the websocket frames of one logical Gremlin response to a
// single outcome. A response may span several text frames (206 continuations
// terminated by 200 or 204) interleaved with control frames and stale frames
// from abandoned requests; the assembler carries the accumulated results
// across drain iterations and decides continue-vs-terminate per batch.
type Assembler struct {
	requestID string
	logger    *slog.Logger
	acc       []any
}

// NewAssembler creates an assembler correlated to the given request id.
func NewAssembler(requestID string, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{requestID: requestID, logger: logger}
}

// ProcessBatch consumes one batch of frames from the passive drain loop.
// It returns (nil, nil) when the drain should continue, a terminal Outcome
// when the response is complete, or an error when the connection must be
// treated as lost.
func (a *Assembler) ProcessBatch(frames []Frame) (*Outcome, error) {
	var texts [][]byte
	closed := false
	for _, frame := range frames {
		switch frame.Kind {
		case FrameText:
			texts = append(texts, frame.Data)
		case FrameClose:
			closed = true
		case FramePing, FramePong:
			// Keep-alive traffic carries no response data
		}
	}

	if len(texts) == 0 {
		if closed {
			return nil, errors.WrapTransient(errors.ErrConnectionLost, "Assembler", "ProcessBatch",
				"read response frame")
		}
		return nil, nil
	}

	matching := make([]Response, 0, len(texts))
	for _, payload := range texts {
		resp, err := ParseResponse(payload)
		if err != nil {
			return nil, err
		}
		if resp.RequestID != a.requestID {
			a.logger.Warn("discarding response for unexpected request id",
				"expected", a.requestID,
				"received", resp.RequestID,
				"status", resp.Status.Code)
			continue
		}
		matching = append(matching, resp)
	}
	if len(matching) == 0 {
		return nil, nil
	}

	batchValues, codes, err := a.decodeBatch(matching)
	if err != nil {
		return nil, err
	}

	switch {
	case codes[StatusSuccess]:
		return &Outcome{Values: append(a.acc, batchValues...)}, nil
	case codes[StatusNoContent]:
		// 204 means no content; accumulated partials are discarded
		return &Outcome{Values: []any{}}, nil
	case codes[StatusPartialContent]:
		a.acc = append(a.acc, batchValues...)
		return nil, nil
	default:
		return a.errorOutcome(matching, codes), nil
	}
}

// decodeBatch deserializes every matching frame's result data in frame order
// and collects the set of status codes present.
func (a *Assembler) decodeBatch(matching []Response) ([]any, map[int]bool, error) {
	var values []any
	codes := make(map[int]bool, len(matching))
	for _, resp := range matching {
		codes[resp.Status.Code] = true
		decoded, err := graphson.DecodeList(resp.Result.Data)
		if err != nil {
			return nil, nil, errors.Wrap(err, "Assembler", "decodeBatch", "decode result data")
		}
		values = append(values, decoded...)
	}
	return values, codes, nil
}

// errorOutcome picks the highest-priority error code present and joins the
// matching frames' status messages.
func (a *Assembler) errorOutcome(matching []Response, codes map[int]bool) *Outcome {
	code := errors.CodeServerError
	for _, candidate := range errorCodePriority {
		if codes[candidate] {
			code = errorCodes[candidate]
			break
		}
	}

	var messages []string
	for _, resp := range matching {
		if desc := resp.Status.Description(); desc != "" {
			messages = append(messages, desc)
		}
	}
	return &Outcome{Err: errors.NewQueryError(code, strings.Join(messages, ", "))}
}
