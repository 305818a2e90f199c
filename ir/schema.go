package ir

import (
	"maps"
	"slices"
	"strings"
)

// SchemaNode is the declaration of one schema field.
//
// Properties is only set when Types has ObjectType and Items is only set
// when Types has ObjectArrayType; never both.
type SchemaNode struct {
	Types      TypeSet
	Properties Schema      `json:",omitempty" yaml:",omitempty"`
	Items      *SchemaNode `json:",omitempty" yaml:",omitempty"`
}

// Schema maps field names to their declarations.
type Schema map[string]*SchemaNode

// Keys returns the field names in sorted order.
func (s Schema) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// Children returns the nested field declarations reachable from n,
// through Properties for Object and Items for ObjectArray.
func (n *SchemaNode) Children() Schema {
	if n == nil {
		return nil
	}
	if n.Properties != nil {
		return n.Properties
	}
	if n.Items != nil {
		return n.Items.Properties
	}
	return nil
}

// Resolve finds the declaration at a dot-path such as `a.b.c`.
func (s Schema) Resolve(path string) *SchemaNode {
	if path == "" {
		return nil
	}
	cur := s
	var node *SchemaNode
	for seg := range strings.SplitSeq(path, ".") {
		if cur == nil {
			return nil
		}
		node = cur[seg]
		if node == nil {
			return nil
		}
		cur = node.Children()
	}
	return node
}

// Merge overlays o onto n: the type set is replaced and nested
// declarations are merged key by key.
func (n *SchemaNode) Merge(o *SchemaNode) {
	n.Types = o.Types
	if !n.Types.Has(ObjectType) {
		n.Properties = nil
	} else if o.Properties != nil {
		if n.Properties == nil {
			n.Properties = Schema{}
		}
		n.Properties.Merge(o.Properties)
	}
	if !n.Types.Has(ObjectArrayType) {
		n.Items = nil
	} else if o.Items != nil {
		if n.Items == nil {
			n.Items = o.Items
		} else {
			n.Items.Merge(o.Items)
		}
	}
}

func (s Schema) Merge(o Schema) {
	for k, v := range o {
		if cur, ok := s[k]; ok {
			cur.Merge(v)
			continue
		}
		s[k] = v
	}
}
