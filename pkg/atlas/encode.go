package atlas

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the Date for year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// EncodeValue renders a parameter value the way it appears in a query string,
// before percent-encoding.
func EncodeValue(v any) string {
	switch t := v.(type) {
	case bool:
		if t {
			return "1"
		}
		return "0"
	case time.Time:
		return t.Format(time.DateOnly)
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format(time.DateOnly)
	case Date:
		return t.String()
	case string:
		return t
	case []byte:
		return string(t)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = stringify(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	case reflect.Map:
		if members, ok := setMembers(rv); ok {
			return strings.Join(members, ",")
		}
	}
	return stringify(v)
}

// setMembers treats map[T]struct{} and map[T]bool as sets. Members are sorted
// so the rendered order is stable.
func setMembers(rv reflect.Value) ([]string, bool) {
	elem := rv.Type().Elem()
	isBool := elem.Kind() == reflect.Bool
	isEmptyStruct := elem.Kind() == reflect.Struct && elem.NumField() == 0
	if !isBool && !isEmptyStruct {
		return nil, false
	}

	members := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		if isBool && !iter.Value().Bool() {
			continue
		}
		members = append(members, stringify(iter.Key().Interface()))
	}
	sort.Strings(members)
	return members, true
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format(time.DateTime)
	case fmt.Stringer:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

func encodeParam(name string, v any) string {
	return "&" + name + "=" + url.QueryEscape(EncodeValue(v))
}
