package ir

import (
	"math/big"
	"strconv"
	"strings"
	"time"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	StringKind Kind = iota
	NumberKind
	BooleanKind
	NullKind
	UndefinedKind
	DateKind
	BinaryKind
	ArrayKind
	ObjectKind
)

func (k Kind) String() string {
	switch k {
	case StringKind:
		return "String"
	case NumberKind:
		return "Number"
	case BooleanKind:
		return "Boolean"
	case NullKind:
		return "Null"
	case UndefinedKind:
		return "undefined"
	case DateKind:
		return "Date"
	case BinaryKind:
		return "Binary"
	case ArrayKind:
		return "Array"
	case ObjectKind:
		return "Object"
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Value is one parsed record value.
//
// Values are created by the record compiler and are not modified
// afterwards. Which fields are meaningful depends on Kind:
//
//   - StringKind: String
//   - NumberKind: Float, or Big when the integer is outside the exact
//     float64 integer range; Raw holds the literal
//   - BooleanKind: Bool
//   - DateKind: Time; Raw holds the literal
//   - BinaryKind: Raw holds the `<Buffer ..>` token, Bytes its content
//   - ArrayKind: Values with Labels in source order
//   - ObjectKind: Object
type Value struct {
	Kind   Kind
	String string    `json:",omitempty" yaml:",omitempty"`
	Float  float64   `json:",omitempty" yaml:",omitempty"`
	Big    *big.Int  `json:",omitempty" yaml:",omitempty"`
	Bool   bool      `json:",omitempty" yaml:",omitempty"`
	Time   time.Time `json:",omitzero" yaml:",omitempty"`
	Raw    string    `json:",omitempty" yaml:",omitempty"`
	Bytes  []byte    `json:",omitempty" yaml:",omitempty"`
	Labels []string  `json:",omitempty" yaml:",omitempty"`
	Values []*Value  `json:",omitempty" yaml:",omitempty"`
	Object *Object   `json:",omitempty" yaml:",omitempty"`
}

func FromString(s string) *Value {
	return &Value{Kind: StringKind, String: s}
}

func FromFloat(f float64) *Value {
	return &Value{Kind: NumberKind, Float: f, Raw: strconv.FormatFloat(f, 'f', -1, 64)}
}

func FromBig(i *big.Int) *Value {
	return &Value{Kind: NumberKind, Big: i, Raw: i.String()}
}

func FromBool(b bool) *Value {
	return &Value{Kind: BooleanKind, Bool: b}
}

func FromTime(t time.Time, raw string) *Value {
	return &Value{Kind: DateKind, Time: t, Raw: raw}
}

func FromBytes(b []byte, raw string) *Value {
	return &Value{Kind: BinaryKind, Bytes: b, Raw: raw}
}

func Null() *Value {
	return &Value{Kind: NullKind}
}

func Undef() *Value {
	return &Value{Kind: UndefinedKind}
}

func FromSlice(labels []string, vs []*Value) *Value {
	return &Value{Kind: ArrayKind, Labels: labels, Values: vs}
}

func FromObject(o *Object) *Value {
	return &Value{Kind: ObjectKind, Object: o}
}

// Text renders v roughly as it would be written in a record.
func (v *Value) Text() string {
	if v == nil {
		return "undefined"
	}
	switch v.Kind {
	case StringKind:
		return strconv.Quote(v.String)
	case NumberKind:
		if v.Raw != "" {
			return v.Raw
		}
		if v.Big != nil {
			return v.Big.String()
		}
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case BooleanKind:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	case NullKind:
		return "NULL"
	case UndefinedKind:
		return "undefined"
	case DateKind:
		if v.Raw != "" {
			return v.Raw
		}
		return v.Time.Format(time.RFC3339Nano)
	case BinaryKind:
		return v.Raw
	case ArrayKind:
		parts := make([]string, len(v.Values))
		for i, c := range v.Values {
			parts[i] = c.Text()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ObjectKind:
		if v.Object == nil {
			return "{}"
		}
		parts := make([]string, 0, v.Object.Len())
		for k, c := range v.Object.All() {
			parts = append(parts, k+":"+c.Text())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return ""
}
