package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SessionID is the opaque identifier the wallet service issues for a pending
// payment.
type SessionID string

// String returns the string form of the session identifier.
func (id SessionID) String() string { return string(id) }

// UnmarshalJSON accepts the id as a JSON string or a JSON number; services
// that number their sessions send the latter.
func (id *SessionID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = SessionID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("session id: want string or number, got %s", b)
	}
	*id = SessionID(n.String())
	return nil
}

// ErrorCode is a machine-readable failure code carried by a Result.
type ErrorCode string

// String returns the string form of the error code.
func (c ErrorCode) String() string { return string(c) }

// Client-side codes are produced before any network call. NETWORK_ERROR and
// UNKNOWN_ERROR are synthesized by the transport client; any other code comes
// from the wallet service unchanged.
const (
	CodeMissingPayload   ErrorCode = "MISSING_PAYLOAD"
	CodeMissingDocumento ErrorCode = "MISSING_DOCUMENTO"
	CodeMissingCelular   ErrorCode = "MISSING_CELULAR"
	CodeMissingNombres   ErrorCode = "MISSING_NOMBRES"
	CodeInvalidEmail     ErrorCode = "INVALID_EMAIL"
	CodeInvalidAmount    ErrorCode = "INVALID_AMOUNT"
	CodeMissingParams    ErrorCode = "MISSING_PARAMS"
	CodeNetworkError     ErrorCode = "NETWORK_ERROR"
	CodeUnknownError     ErrorCode = "UNKNOWN_ERROR"
)
