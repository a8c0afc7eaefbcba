package value

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Iron-Ham/cellgrid/internal/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// FieldAccessor is implemented by row data types that resolve fields
// themselves.
type FieldAccessor interface {
	Field(path string) (any, bool)
	SetField(path string, value any) error
}

// Field reads the dotted path from data. Supported data shapes are
// map[string]any (nested maps are walked), raw JSON as json.RawMessage or
// []byte, and FieldAccessor.
func Field(data any, path string) (any, bool) {
	if data == nil || path == "" {
		return nil, false
	}
	switch d := data.(type) {
	case FieldAccessor:
		return d.Field(path)
	case map[string]any:
		return mapField(d, path)
	case json.RawMessage:
		return jsonField(d, path)
	case []byte:
		return jsonField(d, path)
	default:
		return nil, false
	}
}

func mapField(m map[string]any, path string) (any, bool) {
	var cur any = m
	for _, part := range strings.Split(path, ".") {
		node, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = node[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func jsonField(raw []byte, path string) (any, bool) {
	res := gjson.GetBytes(raw, path)
	if !res.Exists() {
		return nil, false
	}
	return res.Value(), true
}

// SetField writes value at the dotted path and returns the row data to keep.
// Maps and accessors are updated in place; raw JSON is immutable, so a new
// document of the same type is returned.
func SetField(data any, path string, value any) (any, error) {
	if path == "" {
		return data, errors.Wrap(errors.ErrInvalidInput, "empty field path")
	}
	switch d := data.(type) {
	case FieldAccessor:
		return d, d.SetField(path, value)
	case map[string]any:
		setMapField(d, path, value)
		return d, nil
	case json.RawMessage:
		out, err := sjson.SetBytes(d, path, value)
		if err != nil {
			return data, fmt.Errorf("set %s: %w", path, err)
		}
		return json.RawMessage(out), nil
	case []byte:
		out, err := sjson.SetBytes(d, path, value)
		if err != nil {
			return data, fmt.Errorf("set %s: %w", path, err)
		}
		return out, nil
	default:
		return data, fmt.Errorf("%w: cannot set %s on %T", errors.ErrInvalidRowData, path, data)
	}
}

func setMapField(m map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	node := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := node[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			node[part] = next
		}
		node = next
	}
	node[parts[len(parts)-1]] = value
}
