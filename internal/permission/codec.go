package permission

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Older rows store switches as the strings "true"/"false"; both encodings decode.

func (g *Grid) UnmarshalJSON(data []byte) error {
	var raw map[string]map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Grid, len(raw))
	for page, actions := range raw {
		m := make(map[Action]bool, len(actions))
		for action, v := range actions {
			b, err := toBool(v)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", page, action, err)
			}
			m[Action(action)] = b
		}
		out[Page(page)] = m
	}
	*g = out
	return nil
}

func (f *FlatMap) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(FlatMap, len(raw))
	for page, v := range raw {
		b, err := toBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", page, err)
		}
		out[Page(page)] = b
	}
	*f = out
	return nil
}

func (g Grid) Value() (driver.Value, error) {
	if g == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[Page]map[Action]bool(g))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan never fails on bad content: an unreadable blob is an empty grid.
func (g *Grid) Scan(src interface{}) error {
	data, ok := scanBytes(src)
	if !ok {
		*g = Grid{}
		return nil
	}
	var out Grid
	if err := json.Unmarshal(data, &out); err != nil || out == nil {
		*g = Grid{}
		return nil
	}
	*g = out
	return nil
}

func (f FlatMap) Value() (driver.Value, error) {
	if f == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[Page]bool(f))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan never fails on bad content: an unreadable blob grants nothing.
func (f *FlatMap) Scan(src interface{}) error {
	data, ok := scanBytes(src)
	if !ok {
		*f = FlatMap{}
		return nil
	}
	var out FlatMap
	if err := json.Unmarshal(data, &out); err != nil || out == nil {
		*f = FlatMap{}
		return nil
	}
	*f = out
	return nil
}

func scanBytes(src interface{}) ([]byte, bool) {
	switch v := src.(type) {
	case []byte:
		if len(v) == 0 {
			return nil, false
		}
		return v, true
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, false
		}
		return []byte(v), true
	default:
		return nil, false
	}
}

func toBool(v interface{}) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "on", "yes":
			return true, nil
		case "false", "off", "no", "":
			return false, nil
		}
		return false, fmt.Errorf("invalid switch value %q", b)
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("invalid switch value %v", v)
	}
}
