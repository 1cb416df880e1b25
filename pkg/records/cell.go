package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Cell is a scalar value that may arrive as a JSON or YAML number or string.
// Tablet exports store ids and ratings as strings while spreadsheet exports
// and hand-edited files often use numbers; both are kept as their text.
// The empty Cell means no value.
type Cell string

// String returns the cell text.
func (c Cell) String() string {
	return string(c)
}

// IsBlank reports whether the cell holds no value.
func (c Cell) IsBlank() bool {
	return c == ""
}

// UnmarshalJSON accepts any JSON value. Strings and numbers keep their text
// and null is blank. Anything else, such as true or an object, keeps its
// compact JSON text so the compiler rejects it as an invalid value instead
// of the whole file failing to decode.
func (c *Cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*c = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Cell(s)
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return fmt.Errorf("cell is not valid JSON: %w", err)
		}
		*c = Cell(buf.String())
	}
	return nil
}

// UnmarshalYAML accepts any YAML value. Strings and numbers keep their text
// and null is blank; other values keep a printed form.
func (c *Cell) UnmarshalYAML(unmarshal func(any) error) error {
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*c = ""
	case string:
		*c = Cell(t)
	case int:
		*c = Cell(strconv.Itoa(t))
	case int64:
		*c = Cell(strconv.FormatInt(t, 10))
	case uint64:
		*c = Cell(strconv.FormatUint(t, 10))
	case float64:
		*c = Cell(strconv.FormatFloat(t, 'f', -1, 64))
	case bool:
		*c = Cell(strconv.FormatBool(t))
	default:
		*c = Cell(fmt.Sprint(t))
	}
	return nil
}

// MarshalYAML writes the cell as a string so ids like "034" survive a round trip.
func (c Cell) MarshalYAML() (any, error) {
	return string(c), nil
}
