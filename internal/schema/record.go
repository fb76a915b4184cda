package schema

import "time"

// Accessors for reading typed values out of a validated record. They
// assume Validate already coerced the value; a missing or mistyped key
// reads as the zero value (or nil for the Opt variants).

// Str returns the string at key, or "".
func Str(record map[string]any, key string) string {
	s, _ := record[key].(string)
	return s
}

// OptStr returns a pointer to the string at key, or nil when absent.
func OptStr(record map[string]any, key string) *string {
	if v, ok := record[key].(string); ok {
		return &v
	}
	return nil
}

// OptInt returns the integer at key, or nil when absent.
func OptInt(record map[string]any, key string) *int {
	if v, ok := record[key].(float64); ok {
		n := int(v)
		return &n
	}
	return nil
}

// Time parses the RFC 3339 date-time at key. ok is false when the key is
// absent or unparseable (Validate rejects malformed date-times earlier).
func Time(record map[string]any, key string) (time.Time, bool) {
	s, present := record[key].(string)
	if !present || s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// OptTime returns a pointer to the parsed date-time at key, or nil.
func OptTime(record map[string]any, key string) *time.Time {
	if t, ok := Time(record, key); ok {
		return &t
	}
	return nil
}
