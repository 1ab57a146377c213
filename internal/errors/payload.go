package errors

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ContentTypeMsgpack identifies the boundary payload encoding.
const ContentTypeMsgpack = "application/msgpack"

// Payload is the wire envelope returned for every error at the system
// boundary: a two-field msgpack map with a literal "error" status and the
// policy-filtered user message.
type Payload struct {
	Status  string `msgpack:"status"`
	Message string `msgpack:"message"`
}

func (p Payload) String() string {
	return fmt.Sprintf("status: %s, message: %s", p.Status, p.Message)
}

// EncodePayload serializes the error into its msgpack envelope. The debug
// flag controls how much detail infra kinds leak into the message.
func EncodePayload(e *Error, debug bool) ([]byte, error) {
	body, err := msgpack.Marshal(Payload{
		Status:  "error",
		Message: e.UserMessage(debug),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode error payload: %w", err)
	}
	return body, nil
}

// DecodePayload parses a msgpack error envelope.
func DecodePayload(data []byte) (Payload, error) {
	var p Payload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("failed to decode error payload: %w", err)
	}
	return p, nil
}
