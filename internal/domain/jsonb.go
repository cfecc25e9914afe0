package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UUIDList is a JSONB-backed list of user IDs.
type UUIDList []uuid.UUID

// Value implements driver.Valuer.
func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *UUIDList) Scan(src interface{}) error {
	return scanJSONB(src, l)
}

// UnmarshalJSON accepts either a JSON array of UUID strings or a single
// comma-separated string (possibly itself containing a JSON array).
// Clients send both shapes; the lenient parsing is part of the API contract.
func (l *UUIDList) UnmarshalJSON(data []byte) error {
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("assigned users must be a list or string")
		}
		parts = splitFlexible(s)
	}
	out := make(UUIDList, 0, len(parts))
	for _, p := range parts {
		id, err := uuid.Parse(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("invalid user id %q", p)
		}
		out = append(out, id)
	}
	*l = out
	return nil
}

// Contains reports whether id is in the list.
func (l UUIDList) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// StringList is a JSONB-backed list of tags.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	return scanJSONB(src, l)
}

// UnmarshalJSON accepts either a JSON array of strings or a single
// comma-separated string, mirroring UUIDList.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("tags must be a list or string")
		}
		parts = splitFlexible(s)
	}
	out := make(StringList, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	*l = out
	return nil
}

// splitFlexible parses a string that is either an embedded JSON array or
// a comma-separated list.
func splitFlexible(s string) []string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(trimmed), &arr); err == nil {
			return arr
		}
	}
	return strings.Split(trimmed, ",")
}

// ProfileInfo holds optional user profile fields.
type ProfileInfo struct {
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
}

// Value implements driver.Valuer.
func (p ProfileInfo) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner.
func (p *ProfileInfo) Scan(src interface{}) error {
	return scanJSONB(src, p)
}

// PaymentInfo holds payment details recorded when a bill is settled.
type PaymentInfo struct {
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	PaymentDate   *time.Time `json:"paymentDate,omitempty"`
	TransactionID string     `json:"transactionId,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// Value implements driver.Valuer.
func (p PaymentInfo) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner.
func (p *PaymentInfo) Scan(src interface{}) error {
	return scanJSONB(src, p)
}

// DetailsMap is a free-form JSONB map attached to audit log entries.
type DetailsMap map[string]interface{}

// Value implements driver.Valuer.
func (m DetailsMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *DetailsMap) Scan(src interface{}) error {
	return scanJSONB(src, m)
}

func scanJSONB(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
