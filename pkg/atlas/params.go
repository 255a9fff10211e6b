package atlas

import (
	"reflect"
	"sort"
	"strings"
	"unicode"
)

// Params is an ordered mapping from query parameter name to value.
// Names() reports insertion order; URIs list eligible names in ascending order.
type Params struct {
	names  []string
	values map[string]any
}

// NewParams returns an empty mapping.
func NewParams() *Params {
	return &Params{values: make(map[string]any)}
}

// Set assigns value to name, keeping the original position of an existing name.
// A nil value is stored but never serialized.
func (p *Params) Set(name string, value any) {
	if name == "" {
		return
	}
	if _, ok := p.values[name]; !ok {
		p.names = append(p.names, name)
	}
	p.values[name] = value
}

// Get returns the value stored under name.
func (p *Params) Get(name string) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Delete removes name from the mapping.
func (p *Params) Delete(name string) {
	if _, ok := p.values[name]; !ok {
		return
	}
	delete(p.values, name)
	for i, n := range p.names {
		if n == name {
			p.names = append(p.names[:i], p.names[i+1:]...)
			break
		}
	}
}

// Names returns every stored name in insertion order.
func (p *Params) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Len returns the number of stored names.
func (p *Params) Len() int { return len(p.names) }

// Eligible returns, in ascending order, the names that a URI would carry.
func (p *Params) Eligible() []string {
	out := make([]string, 0, len(p.names))
	for _, name := range p.names {
		if eligibleParam(name, p.values[name]) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// setTrimmed applies construction-time rules: string keys and values are
// trimmed, and empty names or falsy values (false, zero numbers, empty
// strings and collections) are dropped.
func (p *Params) setTrimmed(name string, value any) {
	name = strings.TrimSpace(name)
	if s, ok := value.(string); ok {
		value = strings.TrimSpace(s)
	}
	if name == "" || isEmptyValue(value) {
		return
	}
	p.Set(name, value)
}

func eligibleParam(name string, value any) bool {
	if strings.HasPrefix(name, "_") || isAllUpper(name) {
		return false
	}
	if isNil(value) {
		return false
	}
	return reflect.TypeOf(value).Kind() != reflect.Func
}

// isAllUpper is true when name has at least one cased letter and no lowercase ones.
func isAllUpper(name string) bool {
	cased := false
	for _, r := range name {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func isEmptyValue(value any) bool {
	if isNil(value) {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return rv.IsZero()
	}
	return false
}
