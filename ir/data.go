package ir

// UndefinedValue marks a value that is present in a record but undefined,
// as opposed to null.
type UndefinedValue struct{}

var Undefined = UndefinedValue{}

func (UndefinedValue) String() string { return "undefined" }

func (UndefinedValue) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Data converts v to plain Go data:
//
//	String    string
//	Number    float64, or *big.Int outside the exact float64 range
//	Boolean   bool
//	Null      nil
//	undefined Undefined
//	Date      time.Time
//	Binary    []byte
//	Array     []any
//	Object    map[string]any
func (v *Value) Data() any {
	if v == nil {
		return Undefined
	}
	switch v.Kind {
	case StringKind:
		return v.String
	case NumberKind:
		if v.Big != nil {
			return v.Big
		}
		return v.Float
	case BooleanKind:
		return v.Bool
	case NullKind:
		return nil
	case UndefinedKind:
		return Undefined
	case DateKind:
		return v.Time
	case BinaryKind:
		return v.Bytes
	case ArrayKind:
		res := make([]any, len(v.Values))
		for i, c := range v.Values {
			res[i] = c.Data()
		}
		return res
	case ObjectKind:
		return v.Object.Data()
	}
	return nil
}

func (o *Object) Data() map[string]any {
	res := make(map[string]any, o.Len())
	for k, v := range o.All() {
		res[k] = v.Data()
	}
	return res
}
