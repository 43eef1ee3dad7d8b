package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexFloat accepts a JSON number or a numeric-looking string. Form clients
// submit weight, startKms and tareWeight as strings; the API stores and
// re-emits them as numbers.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("FlexFloat.UnmarshalJSON: %q is not numeric", s)
	}
	*f = FlexFloat(v)
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

func (f FlexFloat) Value() (driver.Value, error) {
	return float64(f), nil
}

func (f *FlexFloat) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*f = 0
	case float64:
		*f = FlexFloat(v)
	case int64:
		*f = FlexFloat(v)
	case []byte:
		parsed, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return fmt.Errorf("FlexFloat.Scan: parse %q: %w", string(v), err)
		}
		*f = FlexFloat(parsed)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("FlexFloat.Scan: parse %q: %w", v, err)
		}
		*f = FlexFloat(parsed)
	default:
		return fmt.Errorf("FlexFloat.Scan: unsupported type %T", src)
	}
	return nil
}
