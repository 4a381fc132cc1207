package task

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cast"

	"github.com/jonwraymond/sciencedock/describe"
)

// resolve applies defaults and coercion to every declared input, in
// declaration order. Values for undeclared keys are passed through.
func (t *Task) resolve(args Args) (Args, error) {
	out := make(Args, len(args))
	for k, v := range args {
		out[k] = v
	}

	for _, in := range t.desc.Inputs() {
		v, ok := out[in.ID]
		switch {
		case ok && v != nil:
			coerced, err := coerce(in, v)
			if err != nil {
				return nil, err
			}
			out[in.ID] = coerced
		case in.HasDefault:
			out[in.ID] = in.Default
		case in.Required:
			return nil, &ParamError{Err: ErrMissingRequired, ID: in.ID, Expected: in.Kind}
		default:
			out[in.ID] = nil
		}
	}
	return out, nil
}

// coerce converts v to the input's kind and checks it against the allowed
// values. Enumeration membership is checked after coercion.
func coerce(in describe.InputSpec, v any) (any, error) {
	var (
		out any
		err error
	)
	switch in.Kind {
	case describe.KindString:
		out, err = coerceString(in, v)
	case describe.KindBoolean:
		out, err = coerceBool(in, v)
	case describe.KindInteger:
		out, err = coerceInt(in, v)
	case describe.KindNumber:
		out, err = coerceNumber(in, v)
	default:
		out = v
	}
	if err != nil {
		return nil, err
	}

	if len(in.Values) > 0 && !containsValue(in.Values, out) {
		return nil, &ParamError{
			Err:      ErrInvalidEnumValue,
			ID:       in.ID,
			Value:    v,
			Expected: in.Kind,
			Allowed:  in.Values,
		}
	}
	return out, nil
}

func coerceString(in describe.InputSpec, v any) (any, error) {
	if ts, ok := v.(time.Time); ok && in.Format != "" {
		return truncateDate(in.Format, ts), nil
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return nil, invalid(in, v)
	}
	if in.Strip {
		s = strings.TrimSpace(s)
	}
	if in.Lower {
		s = strings.ToLower(s)
	}
	if in.Upper {
		s = strings.ToUpper(s)
	}

	if in.Format != describe.FormatDate && in.Format != describe.FormatDateTime {
		return s, nil
	}
	ts, err := dateparse.ParseAny(s)
	if err != nil {
		return nil, &ParamError{Err: ErrInvalidDateFormat, ID: in.ID, Value: v, Expected: in.Kind}
	}
	return truncateDate(in.Format, ts), nil
}

// truncateDate drops the time of day for FormatDate.
func truncateDate(format string, ts time.Time) time.Time {
	if format != describe.FormatDate {
		return ts
	}
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}

var boolTokens = map[string]bool{
	"true": true, "t": true, "yes": true, "y": true, "on": true, "1": true,
	"false": false, "f": false, "no": false, "n": false, "off": false, "0": false,
}

func coerceBool(in describe.InputSpec, v any) (any, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		if out, ok := boolTokens[strings.ToLower(strings.TrimSpace(b))]; ok {
			return out, nil
		}
		return nil, invalid(in, v)
	}
	out, err := cast.ToBoolE(v)
	if err != nil {
		return nil, invalid(in, v)
	}
	return out, nil
}

func coerceInt(in describe.InputSpec, v any) (any, error) {
	if s, ok := v.(string); ok {
		// Base 10 only: a leading zero is not an octal prefix.
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, invalid(in, v)
		}
		return n, nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return nil, invalid(in, v)
	}
	return n, nil
}

func coerceNumber(in describe.InputSpec, v any) (any, error) {
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, invalid(in, v)
		}
		return f, nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return nil, invalid(in, v)
	}
	return f, nil
}

func invalid(in describe.InputSpec, v any) error {
	return &ParamError{Err: ErrInvalidValue, ID: in.ID, Value: v, Expected: in.Kind}
}

// containsValue reports whether v is among allowed. Numbers compare by value
// so that an int input matches float64 values decoded from JSON.
func containsValue(allowed []any, v any) bool {
	for _, a := range allowed {
		if equalValues(a, v) {
			return true
		}
	}
	return false
}

func equalValues(a, b any) bool {
	af, aNum := number(a)
	bf, bNum := number(b)
	if aNum && bNum {
		return af == bf
	}
	if aNum != bNum {
		return false
	}
	return reflect.DeepEqual(a, b)
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		f, err := cast.ToFloat64E(n)
		return f, err == nil
	}
	return 0, false
}

// describeValue formats a default for flag help text.
func describeValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
