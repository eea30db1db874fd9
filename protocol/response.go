package protocol

import (
	"encoding/json"

	"github.com/coingaming/gremlex/errors"
)

// Status carries the status block of a response frame. Depending on server
// version the human-readable description arrives under message or
// error_message; Description() resolves the one present.
type Status struct {
	Code         int            `json:"code"`
	Message      string         `json:"message"`
	ErrorMessage string         `json:"error_message"`
	Attributes   map[string]any `json:"attributes"`
}

// Description returns the status message, preferring message over
// error_message.
func (s Status) Description() string {
	if s.Message != "" {
		return s.Message
	}
	return s.ErrorMessage
}

// Result carries the result block of a response frame. Data is kept raw so
// the GraphSON codec decides how to decode it; it is null in the 204 case.
type Result struct {
	Data json.RawMessage `json:"data"`
	Meta map[string]any  `json:"meta"`
}

// Response is one decoded text frame of a Gremlin server response.
type Response struct {
	RequestID string `json:"requestId"`
	Status    Status `json:"status"`
	Result    Result `json:"result"`
}

// ParseResponse decodes one text frame payload.
func ParseResponse(data []byte) (Response, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return Response{}, errors.WrapInvalid(errors.ErrMalformedFrame, "protocol", "ParseResponse", "decode frame JSON")
	}
	return resp, nil
}
