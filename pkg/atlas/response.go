package atlas

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"
)

// Strings whose length lies strictly between these bounds are tried as dates.
const (
	minDateLen = 8
	maxDateLen = 22
)

// Node is one JSON object of a response tree. Values are string, time.Time,
// int64, float64, bool, nil, *Node or []any.
type Node struct {
	keys   []string
	fields map[string]any
}

func newNode(size int) *Node {
	return &Node{
		keys:   make([]string, 0, size),
		fields: make(map[string]any, size),
	}
}

func (n *Node) set(key string, value any) {
	if _, ok := n.fields[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = value
}

// MapJSON decodes data, which must hold a JSON object, into a response tree.
func MapJSON(data []byte) (*Node, error) {
	v, err := decodeOrdered(data)
	if err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	obj, ok := v.(object)
	if !ok {
		return nil, errors.New("top-level json value is not an object")
	}
	return mapObject(obj), nil
}

// Map converts an already decoded JSON object into a response tree. Keys are
// visited in ascending order since Go maps carry none. Integral float64 values,
// as produced by encoding/json, are stored as int64 like MapJSON does.
func Map(obj map[string]any) *Node {
	if obj == nil {
		return newNode(0)
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	n := newNode(len(keys))
	for _, k := range keys {
		n.set(k, mapField(obj[k]))
	}
	return n
}

func mapObject(obj object) *Node {
	n := newNode(len(obj))
	for _, f := range obj {
		n.set(f.key, mapField(f.value))
	}
	return n
}

func mapField(v any) any {
	switch t := v.(type) {
	case string:
		return mapString(t)
	case object:
		return mapObject(t)
	case map[string]any:
		return Map(t)
	case []any:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = mapElement(elem)
		}
		return out
	case json.Number:
		return numberValue(t)
	case float64:
		return floatValue(t)
	default:
		return v
	}
}

// mapElement maps one array element: objects recurse, everything else is kept.
func mapElement(v any) any {
	switch t := v.(type) {
	case object:
		return mapObject(t)
	case map[string]any:
		return Map(t)
	case json.Number:
		return numberValue(t)
	case float64:
		return floatValue(t)
	default:
		return v
	}
}

// floatValue narrows integral floats to int64.
func floatValue(f float64) any {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f)
	}
	return f
}

func mapString(s string) any {
	n := utf8.RuneCountInString(s)
	if n <= minDateLen || n >= maxDateLen {
		return s
	}
	// dateparse reads other all-digit lengths as unix epochs; those are IDs.
	if allDigits(s) && n != 12 && n != 14 {
		return s
	}
	if t, ok := parseDate(s); ok {
		return t
	}
	return s
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func parseDate(s string) (t time.Time, ok bool) {
	// dateparse panics on a few malformed inputs.
	defer func() {
		if recover() != nil {
			t, ok = time.Time{}, false
		}
	}()
	parsed, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// Get returns the value stored under key.
func (n *Node) Get(key string) (any, bool) {
	if n == nil {
		return nil, false
	}
	v, ok := n.fields[key]
	return v, ok
}

// Has reports whether key is present.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Keys returns field names in document order.
func (n *Node) Keys() []string {
	if n == nil {
		return nil
	}
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

// Len returns the number of fields.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.keys)
}

func (n *Node) String(key string) (string, bool) {
	v, _ := n.Get(key)
	s, ok := v.(string)
	return s, ok
}

func (n *Node) Time(key string) (time.Time, bool) {
	v, _ := n.Get(key)
	t, ok := v.(time.Time)
	return t, ok
}

func (n *Node) Int(key string) (int64, bool) {
	v, _ := n.Get(key)
	i, ok := v.(int64)
	return i, ok
}

// Float returns the numeric value under key, widening integers.
func (n *Node) Float(key string) (float64, bool) {
	v, _ := n.Get(key)
	switch t := v.(type) {
	case float64:
		return t, true
	case int64:
		return float64(t), true
	}
	return 0, false
}

func (n *Node) Bool(key string) (bool, bool) {
	v, _ := n.Get(key)
	b, ok := v.(bool)
	return b, ok
}

func (n *Node) Node(key string) (*Node, bool) {
	v, _ := n.Get(key)
	child, ok := v.(*Node)
	return child, ok
}

func (n *Node) List(key string) ([]any, bool) {
	v, _ := n.Get(key)
	l, ok := v.([]any)
	return l, ok
}

// Path resolves a dotted path such as "output.0.name"; numeric segments index lists.
func (n *Node) Path(path string) (any, bool) {
	var cur any = n
	for _, seg := range strings.Split(path, ".") {
		switch t := cur.(type) {
		case *Node:
			v, ok := t.Get(seg)
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(t) {
				return nil, false
			}
			cur = t[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// MarshalJSON renders the node with fields in document order.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range n.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(n.fields[k])
		if err != nil {
			return nil, fmt.Errorf("marshal field %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
