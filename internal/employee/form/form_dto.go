package form

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type SetFieldRequest struct {
	Field string          `json:"field" binding:"required"`
	Value json.RawMessage `json:"value"`
}

// FormResponse carries the form and the notifications raised since the last
// response to this profile.
type FormResponse struct {
	Form          Snapshot       `json:"form"`
	Notifications []Notification `json:"notifications"`
}

type FieldsResponse struct {
	Fields []Field `json:"fields"`
}

// rawText reads a JSON string or number as text. null or a missing value
// reads as empty.
func rawText(v json.RawMessage) (string, bool) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return "", true
	}

	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s, true
	}

	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		if _, err := strconv.ParseFloat(n.String(), 64); err == nil {
			return n.String(), true
		}
	}
	return "", false
}
