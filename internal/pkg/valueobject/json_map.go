package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// JSONMap maps a jsonb column to a Go map. It implements sql.Scanner and
// driver.Valuer so it can be used directly in query arguments.
type JSONMap map[string]any

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}

	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(src any) error {
	if src == nil {
		*m = nil

		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("jsonmap: cannot scan %T", src)
	}

	if len(raw) == 0 {
		*m = nil

		return nil
	}

	if err := json.Unmarshal(raw, m); err != nil {
		return errors.Join(errors.New("jsonmap: invalid json"), err)
	}

	return nil
}
