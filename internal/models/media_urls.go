package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MediaURLs is an ordered list of uploaded media URLs stored as a JSON text
// column. Order is preserved exactly as appended.
type MediaURLs []string

func (m MediaURLs) Value() (driver.Value, error) {
	if m == nil {
		m = MediaURLs{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode media urls: %w", err)
	}
	return string(b), nil
}

func (m *MediaURLs) Scan(value interface{}) error {
	if value == nil {
		*m = MediaURLs{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported media urls column type %T", value)
	}

	if len(raw) == 0 {
		*m = MediaURLs{}
		return nil
	}

	return json.Unmarshal(raw, m)
}
