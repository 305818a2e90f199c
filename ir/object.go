package ir

import (
	"encoding/json"
	"iter"
)

// Object is a string-keyed mapping that remembers insertion order.
type Object struct {
	Keys   []string
	Fields map[string]*Value
}

func NewObject() *Object {
	return &Object{Fields: map[string]*Value{}}
}

// Set adds or replaces a field. Replacing keeps the original position.
func (o *Object) Set(k string, v *Value) {
	if o.Fields == nil {
		o.Fields = map[string]*Value{}
	}
	if _, ok := o.Fields[k]; !ok {
		o.Keys = append(o.Keys, k)
	}
	o.Fields[k] = v
}

func (o *Object) Get(k string) *Value {
	if o == nil {
		return nil
	}
	return o.Fields[k]
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.Keys)
}

// All iterates fields in insertion order.
func (o *Object) All() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		if o == nil {
			return
		}
		for _, k := range o.Keys {
			if !yield(k, o.Fields[k]) {
				return
			}
		}
	}
}

// MarshalJSON writes the fields in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, k := range o.Keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		kd, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vd, err := json.Marshal(o.Fields[k])
		if err != nil {
			return nil, err
		}
		buf = append(buf, kd...)
		buf = append(buf, ':')
		buf = append(buf, vd...)
	}
	return append(buf, '}'), nil
}
