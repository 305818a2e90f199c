package ir

import (
	"fmt"
	"slices"
	"strings"
)

// Type is a tag from the closed ldoc type vocabulary.
type Type int

const (
	StringType Type = iota
	NumberType
	BooleanType
	NullType
	UndefinedType
	DateType
	BinaryType
	StringArrayType
	NumberArrayType
	BooleanArrayType
	NullArrayType
	DateArrayType
	BinaryArrayType
	ArrayType
	ObjectArrayType
	ObjectType
	AnyType
)

var typeNames = [...]string{
	StringType:       "String",
	NumberType:       "Number",
	BooleanType:      "Boolean",
	NullType:         "Null",
	UndefinedType:    "undefined",
	DateType:         "Date",
	BinaryType:       "Binary",
	StringArrayType:  "StringArray",
	NumberArrayType:  "NumberArray",
	BooleanArrayType: "BooleanArray",
	NullArrayType:    "NullArray",
	DateArrayType:    "DateArray",
	BinaryArrayType:  "BinaryArray",
	ArrayType:        "Array",
	ObjectArrayType:  "ObjectArray",
	ObjectType:       "Object",
	AnyType:          "Any",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "<unknown type>"
	}
	return typeNames[t]
}

func (t Type) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(typeNames) {
		return nil, fmt.Errorf("<err: %d is not a type>", t)
	}
	return []byte(typeNames[t]), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := ParseType(string(d))
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

// ParseType looks up a type token exactly as written in a schema section.
func ParseType(v string) (Type, bool) {
	for i, name := range typeNames {
		if name == v {
			return Type(i), true
		}
	}
	return 0, false
}

func Types() []Type {
	res := make([]Type, len(typeNames))
	for i := range typeNames {
		res[i] = Type(i)
	}
	return res
}

// Elem returns the element type of a fixed-element array type.
func (t Type) Elem() (Type, bool) {
	switch t {
	case StringArrayType:
		return StringType, true
	case NumberArrayType:
		return NumberType, true
	case BooleanArrayType:
		return BooleanType, true
	case NullArrayType:
		return NullType, true
	case DateArrayType:
		return DateType, true
	case BinaryArrayType:
		return BinaryType, true
	case ObjectArrayType:
		return ObjectType, true
	}
	return 0, false
}

func (t Type) IsArray() bool {
	if t == ArrayType {
		return true
	}
	_, ok := t.Elem()
	return ok
}

// TypeSet is an ordered union of types, as declared by `T1 | T2`.
type TypeSet []Type

func (s TypeSet) Has(t Type) bool {
	return slices.Contains(s, t)
}

func (s TypeSet) HasAny(ts ...Type) bool {
	for _, t := range ts {
		if s.Has(t) {
			return true
		}
	}
	return false
}

// Add appends t unless already present.
func (s TypeSet) Add(t Type) TypeSet {
	if s.Has(t) {
		return s
	}
	return append(s, t)
}

func (s TypeSet) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = t.String()
	}
	return strings.Join(parts, " | ")
}

// ParseTypeSet parses `T1 | T2 | ...`. The returned string is the first
// token that is not in the vocabulary.
func ParseTypeSet(v string) (TypeSet, string, bool) {
	var res TypeSet
	for _, part := range strings.Split(v, "|") {
		part = strings.TrimSpace(part)
		t, ok := ParseType(part)
		if !ok {
			return nil, part, false
		}
		res = res.Add(t)
	}
	return res, "", true
}
