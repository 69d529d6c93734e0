package models

import (
	"database/sql/driver"
	"fmt"
)

// JSONText carries a raw JSON column or aggregate value between the database
// and the response body without re-encoding. A NULL column marshals as JSON
// null, never as an empty object.
type JSONText []byte

// MarshalJSON writes the stored JSON verbatim, or null when empty.
func (j JSONText) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON stores a copy of the raw JSON.
func (j *JSONText) UnmarshalJSON(data []byte) error {
	*j = append((*j)[:0], data...)
	return nil
}

// Scan implements sql.Scanner for JSON and JSONB columns.
func (j *JSONText) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = JSONText(v)
	default:
		return fmt.Errorf("unsupported type %T for JSONText", value)
	}
	return nil
}

// Value implements driver.Valuer; an empty value stores as NULL.
func (j JSONText) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return []byte(j), nil
}
