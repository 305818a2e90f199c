package validate

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/ldoc-format/ldoc/ir"
	"github.com/ldoc-format/ldoc/literal"
)

// Normalize converts data to the plain forms produced by ir.Value.Data:
// string keyed maps become map[string]any, slices []any and integers
// float64. Records, objects and values of package ir are converted with
// their Data methods. Maps and slices nested deeper than DefaultMaxDepth
// are replaced by empty ones.
func Normalize(data any) any {
	n := &normalizer{max: DefaultMaxDepth}
	return n.value(data, "", 0)
}

// normalizer converts data for Normalize. deep, if set, is called with
// the path of each container cut at max.
type normalizer struct {
	max  int
	deep func(path string)
}

func (n *normalizer) cut(path string, depth int) bool {
	if depth <= n.max {
		return false
	}
	if n.deep != nil {
		n.deep(path)
	}
	return true
}

func (n *normalizer) value(data any, path string, depth int) any {
	switch x := data.(type) {
	case nil:
		return nil
	case *ir.Record:
		return n.value(x.Data(), path, depth)
	case *ir.Object:
		return n.value(x.Data(), path, depth)
	case *ir.Value:
		return n.value(x.Data(), path, depth)
	case map[string]any:
		res := make(map[string]any, len(x))
		if n.cut(path, depth) {
			return res
		}
		for k, v := range x {
			res[k] = n.value(v, join(path, k), depth+1)
		}
		return res
	case []any:
		if n.cut(path, depth) {
			return []any{}
		}
		res := make([]any, len(x))
		for i, v := range x {
			res[i] = n.value(v, index(path, i), depth+1)
		}
		return res
	case string, float64, bool, []byte, time.Time, *big.Int, ir.UndefinedValue:
		return x
	}
	rv := reflect.ValueOf(data)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		if n.cut(path, depth) {
			return nil
		}
		return n.value(rv.Elem().Interface(), path, depth+1)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Float32:
		return rv.Float()
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		if n.cut(path, depth) {
			return []any{}
		}
		res := make([]any, rv.Len())
		for i := range res {
			res[i] = n.value(rv.Index(i).Interface(), index(path, i), depth+1)
		}
		return res
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return data
		}
		res := make(map[string]any, rv.Len())
		if n.cut(path, depth) {
			return res
		}
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key().String()
			res[k] = n.value(iter.Value().Interface(), join(path, k), depth+1)
		}
		return res
	}
	return data
}

// kindName names the runtime kind of a normalized value.
func kindName(v any) string {
	switch v.(type) {
	case nil:
		return "Null"
	case ir.UndefinedValue:
		return "undefined"
	case string:
		return "String"
	case float64, *big.Int:
		return "Number"
	case bool:
		return "Boolean"
	case time.Time:
		return "Date"
	case []byte:
		return "Binary"
	case []any:
		return "Array"
	case map[string]any:
		return "Object"
	}
	return reflect.TypeOf(v).String()
}

func isMissing(v any, present bool) bool {
	if !present {
		return true
	}
	_, undef := v.(ir.UndefinedValue)
	return undef
}

// matchesType reports whether the normalized value v is of type t. Date
// strings, as found in YAML and JSON data, are Dates.
func matchesType(v any, t ir.Type) bool {
	switch t {
	case ir.AnyType:
		return true
	case ir.StringType:
		_, ok := v.(string)
		return ok
	case ir.NumberType:
		_, ok := number(v)
		return ok
	case ir.BooleanType:
		_, ok := v.(bool)
		return ok
	case ir.NullType:
		return v == nil
	case ir.UndefinedType:
		_, ok := v.(ir.UndefinedValue)
		return ok
	case ir.DateType:
		_, ok := toTime(v)
		return ok
	case ir.BinaryType:
		_, ok := v.([]byte)
		return ok
	case ir.ObjectType:
		_, ok := v.(map[string]any)
		return ok
	case ir.ArrayType:
		_, ok := v.([]any)
		return ok
	}
	elem, ok := t.Elem()
	if !ok {
		return false
	}
	arr, ok := v.([]any)
	if !ok {
		return false
	}
	for _, e := range arr {
		if !matchesType(e, elem) {
			return false
		}
	}
	return true
}

func matchesAny(v any, ts ir.TypeSet) bool {
	for _, t := range ts {
		if matchesType(v, t) {
			return true
		}
	}
	return false
}

// number returns the value of a Number as a float64.
func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case *big.Int:
		f, _ := new(big.Float).SetInt(x).Float64()
		return f, true
	}
	return 0, false
}

func isIntegral(v any) bool {
	switch x := v.(type) {
	case float64:
		return !math.IsInf(x, 0) && x == math.Trunc(x)
	case *big.Int:
		return true
	}
	return false
}

// toTime accepts dates and date strings.
func toTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		t, _, err := literal.ParseDate(x)
		return t, err == nil
	}
	return time.Time{}, false
}

// text renders scalars the way they are written in rule values.
func text(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case *big.Int:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return "null"
	case time.Time:
		return x.Format(time.RFC3339Nano)
	}
	return fmt.Sprint(v)
}

// equal compares normalized values deeply; numbers compare by value and
// dates by instant. A date compares equal to a string naming the same
// instant.
func equal(a, b any) bool {
	if na, ok := number(a); ok {
		nb, ok := number(b)
		if !ok {
			return false
		}
		ba, aBig := a.(*big.Int)
		bb, bBig := b.(*big.Int)
		if aBig && bBig {
			return ba.Cmp(bb) == 0
		}
		return na == nb
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := toTime(b)
		return ok && ta.Equal(tb)
	}
	if _, ok := b.(time.Time); ok {
		return equal(b, a)
	}
	switch x := a.(type) {
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !equal(xv, yv) {
				return false
			}
		}
		return true
	case []byte:
		y, ok := b.([]byte)
		return ok && string(x) == string(y)
	}
	return reflect.DeepEqual(a, b)
}

// lookup finds the value at a dot-path of data.
func lookup(data map[string]any, path string) (any, bool) {
	var cur any = data
	for seg := range strings.SplitSeq(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
