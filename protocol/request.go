// Package protocol implements the Gremlin server wire protocol: the request
// envelope, response frame parsing, status code mapping, and the assembler
// that reduces one or more response frames to a single query outcome.
package protocol

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/coingaming/gremlex/errors"
	"github.com/coingaming/gremlex/traversal"
)

// RequestArgs carries the script payload of a request envelope.
type RequestArgs struct {
	Gremlin  string `json:"gremlin"`
	Language string `json:"language"`
}

// Request is the envelope the server recognizes for script evaluation. Each
// submission carries a fresh v4 UUID so responses can be correlated.
type Request struct {
	RequestID string      `json:"requestId"`
	Op        string      `json:"op"`
	Processor string      `json:"processor"`
	Args      RequestArgs `json:"args"`
}

// NewRequest wraps a Gremlin-Groovy source string in a request envelope with
// a fresh request id.
func NewRequest(gremlin string) Request {
	return Request{
		RequestID: uuid.NewString(),
		Op:        "eval",
		Processor: "",
		Args: RequestArgs{
			Gremlin:  gremlin,
			Language: "gremlin-groovy",
		},
	}
}

// NewTraversalRequest encodes a rooted traversal and wraps it in a request
// envelope. Anonymous traversals are rejected by the encoder.
func NewTraversalRequest(t traversal.Traversal) (Request, error) {
	gremlin, err := traversal.Encode(t)
	if err != nil {
		return Request{}, err
	}
	return NewRequest(gremlin), nil
}

// Marshal serializes the envelope as JSON for transmission as one text frame.
func (r Request) Marshal() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Request", "Marshal", "serialize envelope")
	}
	return data, nil
}
