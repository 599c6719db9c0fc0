package db

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/golang-sql/civil"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"

	"holocene/internal/types"
)

var (
	decimalType = reflect.TypeOf(decimal.Decimal{})
	timeType    = reflect.TypeOf(time.Time{})
)

// timeLayouts are tried in order when a date arrives as text.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.9999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
	"15:04:05",
}

// ParseTime parses the textual date formats the stores and callers use.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

func decimalHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != decimalType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(strings.TrimSpace(v))
	case []byte:
		return decimal.NewFromString(string(v))
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	}
	return data, nil
}

func timeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return ParseTime(v)
	case civil.Date:
		return v.In(time.UTC), nil
	case civil.DateTime:
		return v.In(time.UTC), nil
	}
	return data, nil
}

func newDecoder(out any) (*mapstructure.Decoder, error) {
	return mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "db",
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			decimalHook,
			timeHook,
		),
	})
}

func conversionError(target string, err error) error {
	return types.NewAppErrorWithDetails(
		types.ErrCodeInternalTypeConversion,
		"failed to convert database value",
		err,
		map[string]any{"target": target},
	)
}

// DecodeRow maps one generic row onto a record whose fields carry db tags.
// Columns without a matching field are ignored; fields without a matching
// column keep their zero value. NULL leaves pointer fields nil.
func DecodeRow[T any](row Row) (T, error) {
	var out T
	dec, err := newDecoder(&out)
	if err != nil {
		return out, conversionError(fmt.Sprintf("%T", out), err)
	}
	if err := dec.Decode(map[string]any(row)); err != nil {
		return out, conversionError(fmt.Sprintf("%T", out), err)
	}
	return out, nil
}

// DecodeRows maps every row, stopping at the first conversion failure.
func DecodeRows[T any](rows []Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		v, err := DecodeRow[T](row)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// DecodeValue converts a single scalar, such as the result of Scalar, into T.
func DecodeValue[T any](v any) (T, error) {
	var out T
	if v == nil {
		return out, nil
	}
	dec, err := newDecoder(&out)
	if err != nil {
		return out, conversionError(fmt.Sprintf("%T", out), err)
	}
	if err := dec.Decode(v); err != nil {
		return out, conversionError(fmt.Sprintf("%T", out), err)
	}
	return out, nil
}
