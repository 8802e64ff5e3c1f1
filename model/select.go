package model

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/jmespath/go-jmespath"
	"github.com/shopspring/decimal"

	"github.com/beanbridge-dev/beanbridge/native"
)

// Select applies a JMESPath expression to a model or model collection.
//
// The value is first lowered to plain nested maps and slices: model
// structs become maps keyed by their JSON field names with the kind under
// "ty", decimals become float64 and dates become "YYYY-MM-DD" strings so
// the expression language can compare them. The lowering is lossy for
// decimal precision; use the typed API when exactness matters.
func Select(v any, expr string) (any, error) {
	compiled, err := jmespath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling expression: %w", err)
	}
	result, err := compiled.Search(lower(reflect.ValueOf(v)))
	if err != nil {
		return nil, fmt.Errorf("applying expression: %w", err)
	}
	return result, nil
}

// Filter applies a JMESPath expression to the directive list and
// validates the result back into a Directives value. Expressions that
// mutate the shape incompatibly fail loudly at re-validation.
func (ds Directives) Filter(expr string) (Directives, error) {
	var out Directives
	if err := filterInto(ds, expr, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Filter applies a JMESPath expression to the inventory and validates
// the result back into an Inventory value.
func (inv Inventory) Filter(expr string) (Inventory, error) {
	var out Inventory
	if err := filterInto(inv, expr, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Filter applies a JMESPath expression to the list and validates the
// result back into a TxnPostings value.
func (tp TxnPostings) Filter(expr string) (TxnPostings, error) {
	var out TxnPostings
	if err := filterInto(tp, expr, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func filterInto(v any, expr string, out any) error {
	selected, err := Select(v, expr)
	if err != nil {
		return err
	}
	if selected == nil {
		return nil
	}
	raw, err := json.Marshal(selected)
	if err != nil {
		return fmt.Errorf("encoding filtered result: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("filtered result no longer matches the model: %w", err)
	}
	return nil
}

var (
	decimalType = reflect.TypeOf(decimal.Decimal{})
	dateType    = reflect.TypeOf(native.Date{})
)

// lower converts a model value into plain nested maps and slices.
func lower(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	switch v.Type() {
	case decimalType:
		f, _ := v.Interface().(decimal.Decimal).Float64()
		return f
	case dateType:
		return v.Interface().(native.Date).String()
	}
	if m, ok := v.Interface().(*Meta); ok {
		if m == nil {
			return nil
		}
		return lowerMeta(m)
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return lower(v.Elem())
	case reflect.Struct:
		out := map[string]any{}
		lowerStruct(v, out)
		if kind, ok := structKind(v); ok {
			out["ty"] = kind
		}
		return out
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return nil
		}
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = lower(v.Index(i))
		}
		return out
	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out[mapKey(iter.Key())] = lower(iter.Value())
		}
		return out
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return v.Bool()
	default:
		return v.Interface()
	}
}

// lowerStruct flattens a struct's fields into out using JSON tag names,
// promoting embedded structs and honoring omitempty.
func lowerStruct(v reflect.Value, out map[string]any) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		if field.Anonymous {
			lowerStruct(v.Field(i), out)
			continue
		}
		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = field.Name
		}
		fv := v.Field(i)
		if strings.Contains(opts, "omitempty") && fv.IsZero() {
			continue
		}
		out[name] = lower(fv)
	}
}

// structKind reports the native kind of a struct model. Kind methods use
// pointer receivers, so the value is boxed into a fresh pointer first.
func structKind(v reflect.Value) (string, bool) {
	if m, ok := v.Interface().(Model); ok {
		return string(m.Kind()), true
	}
	pv := reflect.New(v.Type())
	pv.Elem().Set(v)
	if m, ok := pv.Interface().(Model); ok {
		return string(m.Kind()), true
	}
	return "", false
}

func lowerMeta(m *Meta) map[string]any {
	out := map[string]any{}
	for key, value := range m.Extra {
		out[key] = lower(reflect.ValueOf(value))
	}
	if m.Filename != nil {
		out["filename"] = *m.Filename
	}
	if m.Lineno != nil {
		out["lineno"] = float64(*m.Lineno)
	}
	if m.Tolerances != nil {
		tols := make(map[string]any, len(m.Tolerances))
		for cur, tol := range m.Tolerances {
			f, _ := tol.Float64()
			tols[cur] = f
		}
		out[tolerancesKey] = tols
	}
	return out
}

func mapKey(k reflect.Value) string {
	switch k.Kind() {
	case reflect.String:
		return k.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10)
	default:
		return fmt.Sprint(k.Interface())
	}
}
