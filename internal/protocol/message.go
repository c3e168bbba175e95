package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Errors
var (
	ErrMalformed    = errors.New("malformed frame")
	ErrMissingField = errors.New("missing field")
	ErrUnknownLabel = errors.New("unknown label")
)

// StatusMessage is sent by the device to report which indicator is lit.
type StatusMessage struct {
	Status string `json:"status"`
}

// CommandMessage asks the device to toggle an indicator.
type CommandMessage struct {
	Action Label `json:"action"`
}

// DecodeStatus parses an inbound frame. The payload must be a JSON object
// carrying a string "status" field; its value is not checked against the
// label set.
func DecodeStatus(data []byte) (StatusMessage, error) {
	value, err := decodeField(data, "status")
	if err != nil {
		return StatusMessage{}, err
	}
	return StatusMessage{Status: value}, nil
}

// EncodeStatus builds an outbound status frame (device side).
func EncodeStatus(status string) ([]byte, error) {
	return json.Marshal(StatusMessage{Status: status})
}

// EncodeCommand builds an outbound command frame for a valid label.
func EncodeCommand(label Label) ([]byte, error) {
	if !label.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLabel, string(label))
	}
	return json.Marshal(CommandMessage{Action: label})
}

// DecodeCommand parses a command frame (device side). An action outside the
// label set is returned as-is; callers decide what to do with it.
func DecodeCommand(data []byte) (CommandMessage, error) {
	value, err := decodeField(data, "action")
	if err != nil {
		return CommandMessage{}, err
	}
	return CommandMessage{Action: Label(value)}, nil
}

// decodeField extracts a single string field from a JSON object.
func decodeField(data []byte, name string) (string, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if obj == nil {
		return "", fmt.Errorf("%w: not an object", ErrMalformed)
	}

	raw, ok := obj[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingField, name)
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", fmt.Errorf("%w: %s is not a string", ErrMissingField, name)
	}
	return value, nil
}
