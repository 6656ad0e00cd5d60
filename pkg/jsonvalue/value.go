// Package jsonvalue models decoded JSON documents as a closed sum type.
//
// Unlike encoding/json's map[string]any representation, a [Value] preserves
// the original key order of objects, which the tree builder and every
// rendering surface depend on. Values are immutable after decoding: the
// builder in pkg/doctree and the renderers in pkg/render only ever read them.
//
// # Usage
//
//	v, err := jsonvalue.DecodeString(`{"name":"app","deps":[1,2]}`)
//	if err != nil {
//	    return err
//	}
//	if m, ok := v.Member("deps"); ok {
//	    fmt.Println(len(m.Elems)) // 2
//	}
package jsonvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the concrete JSON type stored in a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// String returns the lowercase JSON name of the kind.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// IsContainer reports whether the kind is an object or array.
func (k Kind) IsContainer() bool {
	return k == Object || k == Array
}

// Member is a single key/value entry of a JSON object.
type Member struct {
	Key   string
	Value *Value
}

// Value represents an arbitrary decoded JSON value.
//
// Exactly one of the payload fields is meaningful, selected by Kind:
// BoolVal for Bool, NumberVal for Number, StringVal for String, Elems for
// Array, Members for Object. Null carries no payload. Members keep the
// key order of the source document; keys are unique within a node.
//
// The zero value is the JSON null value.
type Value struct {
	Kind      Kind
	BoolVal   bool
	NumberVal float64
	StringVal string
	Elems     []*Value // Array: index-ordered elements
	Members   []Member // Object: insertion-ordered entries
}

// IsNull reports whether the value is JSON null.
func (v *Value) IsNull() bool { return v == nil || v.Kind == Null }

// Len returns the number of children for containers and 0 otherwise.
func (v *Value) Len() int {
	switch v.Kind {
	case Array:
		return len(v.Elems)
	case Object:
		return len(v.Members)
	default:
		return 0
	}
}

// Member looks up an object entry by exact key comparison.
// Returns false when the value is not an object or the key is absent.
func (v *Value) Member(key string) (*Value, bool) {
	if v == nil || v.Kind != Object {
		return nil, false
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Preview returns a short single-line rendition of the value for display.
// Containers render as a child-count summary, strings are quoted and
// truncated to maxLen runes.
func (v *Value) Preview(maxLen int) string {
	switch v.Kind {
	case Null:
		return "null"
	case Bool:
		return strconv.FormatBool(v.BoolVal)
	case Number:
		return FormatNumber(v.NumberVal)
	case String:
		s := strconv.Quote(v.StringVal)
		if maxLen > 1 && len([]rune(s)) > maxLen {
			r := []rune(s)
			s = string(r[:maxLen-1]) + "…"
		}
		return s
	case Array:
		if len(v.Elems) == 1 {
			return "[1 item]"
		}
		return fmt.Sprintf("[%d items]", len(v.Elems))
	case Object:
		if len(v.Members) == 1 {
			return "{1 key}"
		}
		return fmt.Sprintf("{%d keys}", len(v.Members))
	default:
		return ""
	}
}

// FormatNumber renders a float64 the way JSON does: integral values without
// a decimal point, everything else in the shortest round-trip form.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// MarshalJSON encodes the value back to JSON, preserving object key order.
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *Value) encode(buf *bytes.Buffer) error {
	if v == nil {
		buf.WriteString("null")
		return nil
	}
	switch v.Kind {
	case Null:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(strconv.FormatBool(v.BoolVal))
	case Number:
		buf.WriteString(FormatNumber(v.NumberVal))
	case String:
		b, err := json.Marshal(v.StringVal)
		if err != nil {
			return err
		}
		buf.Write(b)
	case Array:
		buf.WriteByte('[')
		for i, e := range v.Elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		for i, m := range v.Members {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			buf.Write(b)
			buf.WriteByte(':')
			if err := m.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unknown kind %d", v.Kind)
	}
	return nil
}

// Path formats a root-relative node path ("deps[0].name") from the given
// key/index steps. Used by the TUI status bar and the server API.
func Path(steps []string) string {
	var b strings.Builder
	b.WriteByte('$')
	for _, s := range steps {
		if strings.HasPrefix(s, "[") {
			b.WriteString(s)
		} else {
			b.WriteByte('.')
			b.WriteString(s)
		}
	}
	return b.String()
}
