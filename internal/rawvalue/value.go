// Package rawvalue models the raw, typed memory values an introspection host
// hands to the decoders: structs with named fields, arrays, integers and
// optionals carrying a present/absent tag.
package rawvalue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ambroisie/seer-inspect/internal/errors"
)

// Value is the accessor interface the decoders consume.
type Value interface {
	// Field returns the named struct field. Fails with ErrFieldNotFound.
	Field(name string) (Value, error)

	// Index returns the i-th array element. Fails with ErrIndexOutOfRange.
	Index(i int) (Value, error)

	// Uint coerces the value to an unsigned integer. Fails with ErrNotInteger.
	Uint() (uint64, error)

	// Optional reports whether the value is present and returns its payload.
	// Fails with ErrNotOptional when the value carries no tag.
	Optional() (Value, bool, error)
}

// Optional tags.
const (
	SomeTag = "Some"
	NoneTag = "None"
)

// Node is a Value backed by a decoded JSON tree. Objects are structs,
// arrays are arrays, numbers and numeric strings are integers, and optionals
// are {"Some": payload} or "None" (null is accepted as absent).
type Node struct {
	v any
}

var _ Value = Node{}

// Field returns the named struct field.
func (n Node) Field(name string) (Value, error) {
	obj, ok := n.v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("field %q on %s: %w", name, n.kind(), errors.ErrFieldNotFound)
	}
	child, ok := obj[name]
	if !ok {
		return nil, fmt.Errorf("field %q: %w", name, errors.ErrFieldNotFound)
	}
	return Node{v: child}, nil
}

// Index returns the i-th array element.
func (n Node) Index(i int) (Value, error) {
	arr, ok := n.v.([]any)
	if !ok {
		return nil, fmt.Errorf("index [%d] on %s: %w", i, n.kind(), errors.ErrIndexOutOfRange)
	}
	if i < 0 || i >= len(arr) {
		return nil, fmt.Errorf("index [%d] of %d elements: %w", i, len(arr), errors.ErrIndexOutOfRange)
	}
	return Node{v: arr[i]}, nil
}

// Len returns the number of array elements, or zero for non-arrays.
func (n Node) Len() int {
	arr, _ := n.v.([]any)
	return len(arr)
}

// Uint coerces the value to an unsigned integer. Numbers must be integral and
// non-negative; strings may use any Go integer literal prefix (0x, 0b, 0o).
func (n Node) Uint() (uint64, error) {
	var text string
	switch v := n.v.(type) {
	case json.Number:
		text = v.String()
	case string:
		text = strings.TrimSpace(v)
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case float64:
		if v < 0 || v != float64(uint64(v)) {
			return 0, fmt.Errorf("%v: %w", v, errors.ErrNotInteger)
		}
		return uint64(v), nil
	default:
		return 0, fmt.Errorf("%s: %w", n.kind(), errors.ErrNotInteger)
	}

	u, err := strconv.ParseUint(text, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", text, errors.ErrNotInteger)
	}
	return u, nil
}

// Optional reports whether the value is present and returns its payload.
func (n Node) Optional() (Value, bool, error) {
	switch v := n.v.(type) {
	case nil:
		return nil, false, nil
	case string:
		if v == NoneTag {
			return nil, false, nil
		}
	case map[string]any:
		if payload, ok := v[SomeTag]; ok && len(v) == 1 {
			return Node{v: payload}, true, nil
		}
		if _, ok := v[NoneTag]; ok && len(v) == 1 {
			return nil, false, nil
		}
	}
	return nil, false, fmt.Errorf("%s: %w", n.kind(), errors.ErrNotOptional)
}

// Fields returns the sorted field names of a struct value.
func (n Node) Fields() []string {
	obj, _ := n.v.(map[string]any)
	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasField reports whether the struct value has the named field.
func (n Node) HasField(name string) bool {
	obj, ok := n.v.(map[string]any)
	if !ok {
		return false
	}
	_, ok = obj[name]
	return ok
}

func (n Node) kind() string {
	switch n.v.(type) {
	case map[string]any:
		return "struct"
	case []any:
		return "array"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case bool:
		return "bool"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%T", n.v)
}

// MarshalJSON encodes the node back into its JSON form.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.v)
}

// UnmarshalJSON decodes a node, keeping numbers exact.
func (n *Node) UnmarshalJSON(data []byte) error {
	v, err := decodeJSON(data)
	if err != nil {
		return err
	}
	n.v = v
	return nil
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Uint returns an integer node.
func Uint(u uint64) Node {
	return Node{v: json.Number(strconv.FormatUint(u, 10))}
}

// Struct returns a struct node with the given fields.
func Struct(fields map[string]Node) Node {
	obj := make(map[string]any, len(fields))
	for name, field := range fields {
		obj[name] = field.v
	}
	return Node{v: obj}
}

// Array returns an array node.
func Array(elems ...Node) Node {
	arr := make([]any, len(elems))
	for i, elem := range elems {
		arr[i] = elem.v
	}
	return Node{v: arr}
}

// Some returns a present optional wrapping payload.
func Some(payload Node) Node {
	return Node{v: map[string]any{SomeTag: payload.v}}
}

// None returns an absent optional.
func None() Node {
	return Node{v: NoneTag}
}

// FromJSON parses a single raw value from JSON.
func FromJSON(data []byte) (Node, error) {
	var n Node
	err := n.UnmarshalJSON(data)
	return n, err
}
