package progress

import (
	"bytes"
	"encoding/json"
	"time"
)

// ExportVersion tags the export envelope format.
const ExportVersion = 2

// Export is the full-record envelope produced by export and accepted by
// import.
type Export struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	Record     *Record   `json:"record"`
}

// NewExport wraps rec for export.
func NewExport(rec *Record, now time.Time) *Export {
	return &Export{Version: ExportVersion, ExportedAt: now, Record: rec}
}

// ParseImport validates an import payload and returns the record that
// should replace the current one wholesale. raw may be an Export envelope
// or a bare record. The payload's userId is kept as PreviousUserID; when
// currentUserID is set the record is re-homed to it.
func ParseImport(raw []byte, currentUserID string, now time.Time) (*Record, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, &ValidationError{Reason: "empty payload"}
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, &ValidationError{Reason: "payload is not a JSON object", Err: err}
	}
	if inner, ok := top["record"]; ok {
		top = nil
		if err := json.Unmarshal(inner, &top); err != nil {
			return nil, &ValidationError{Field: "record", Reason: "not a JSON object", Err: err}
		}
		raw = inner
	}

	var userID string
	if v, ok := top["userId"]; !ok || json.Unmarshal(v, &userID) != nil || userID == "" {
		return nil, &ValidationError{Field: "userId", Reason: "missing identity"}
	}
	if v, ok := top["overallStats"]; !ok || !isJSONObject(v) {
		return nil, &ValidationError{Field: "overallStats", Reason: "missing overall stats block"}
	}

	rec, err := Decode(raw)
	if err != nil {
		return nil, err
	}

	imported := now
	rec.ImportedAt = &imported
	rec.PreviousUserID = userID
	if currentUserID != "" {
		rec.UserID = currentUserID
	}
	return rec, nil
}

func isJSONObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}
