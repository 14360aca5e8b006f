package envoyutil

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Object is a mapping node of a parsed configuration document.
type Object = map[string]interface{}

// AsObject returns v as an Object. YAML decoders may hand back
// map[interface{}]interface{} for mappings with non-string keys; those are
// converted with their keys stringified.
func AsObject(v interface{}) (Object, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(Object, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

func AsList(v interface{}) ([]interface{}, bool) {
	l, ok := v.([]interface{})
	return l, ok
}

func Has(obj Object, key string) bool {
	_, ok := obj[key]
	return ok
}

// GetObject returns the mapping stored under key, or nil when it is absent or
// not a mapping.
func GetObject(obj Object, key string) Object {
	m, _ := AsObject(obj[key])
	return m
}

// GetObjects returns the mappings stored in the sequence under key. Elements
// that are not mappings are skipped.
func GetObjects(obj Object, key string) []Object {
	l, _ := AsList(obj[key])
	out := make([]Object, 0, len(l))
	for _, v := range l {
		if m, ok := AsObject(v); ok {
			out = append(out, m)
		}
	}
	return out
}

// GetString renders the scalar under key, or def when the key is absent.
func GetString(obj Object, key, def string) string {
	v, ok := obj[key]
	if !ok {
		return def
	}
	return Scalar(v)
}

func GetStrings(obj Object, key string) []string {
	l, _ := AsList(obj[key])
	out := make([]string, 0, len(l))
	for _, v := range l {
		out = append(out, Scalar(v))
	}
	return out
}

// GetInt returns the integer under key. Protobuf JSON may encode 64 bit
// integers as strings, so numeric strings are accepted.
func GetInt(obj Object, key string) (int64, bool) {
	switch v := obj[key].(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case uint64:
		return int64(v), true
	case float64:
		return int64(v), true
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
		if f, err := v.Float64(); err == nil {
			return int64(f), true
		}
	case string:
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i, true
		}
	case Object:
		// google.protobuf.UInt32Value in its long form.
		return GetInt(v, "value")
	}
	return 0, false
}

// Scalar renders a leaf value the way it was written in the source document.
func Scalar(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprint(s)
	}
}
