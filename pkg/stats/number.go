package stats

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var jsonNull = []byte("null")

// Number keeps a user supplied numeric value as raw JSON.
// Numbers and numeric strings are both accepted, anything else reads as absent.
type Number struct {
	raw json.RawMessage
}

// NumberFromInt wraps an integer.
func NumberFromInt(v int) Number {
	return Number{raw: json.RawMessage(strconv.Itoa(v))}
}

// NumberFromString wraps a user supplied string.
// Empty strings are treated as absent.
func NumberFromString(s string) Number {
	if strings.TrimSpace(s) == "" {
		return Number{}
	}
	raw, _ := json.Marshal(s)
	return Number{raw: raw}
}

// NumberFromRaw wraps raw JSON as received on a request body.
func NumberFromRaw(raw json.RawMessage) Number {
	var n Number
	_ = n.UnmarshalJSON(raw)
	return n
}

// Present reports whether a non null value is set.
func (n Number) Present() bool {
	return len(n.raw) > 0 && !bytes.Equal(n.raw, jsonNull)
}

// Int parses the value the way a permissive integer parser would:
// leading integer digits of a string or the truncated number.
func (n Number) Int() (int, bool) {
	if !n.Present() {
		return 0, false
	}

	var value any
	if err := json.Unmarshal(n.raw, &value); err != nil {
		return 0, false
	}

	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) {
			return 0, false
		}
		return saturate(v), true
	case string:
		return parseLeadingInt(v)
	}

	return 0, false
}

// MarshalJSON writes the raw value or null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Present() {
		return jsonNull, nil
	}
	return n.raw, nil
}

// UnmarshalJSON keeps a copy of the raw value.
func (n *Number) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull) {
		n.raw = nil
		return nil
	}
	n.raw = append(json.RawMessage(nil), trimmed...)
	return nil
}

// Leading optional sign and digits, ignoring surrounding whitespace and trailing garbage.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	v, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		// Out of range digits saturate instead of wrapping.
		if s[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	if err != nil {
		return 0, false
	}
	return v, true
}

// Truncates a float, values past the int range saturate.
func saturate(v float64) int {
	if v >= math.MaxInt {
		return math.MaxInt
	}
	if v <= math.MinInt {
		return math.MinInt
	}
	return int(v)
}
