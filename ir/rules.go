package ir

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// RuleSet maps dot-path segments to rule nodes.
type RuleSet map[string]*RuleNode

type RuleNode struct {
	Rules    map[string]RuleValue `json:",omitempty" yaml:",omitempty"`
	Children RuleSet              `json:",omitempty" yaml:",omitempty"`
}

// RuleKind tags the variant held by a RuleValue.
type RuleKind int

const (
	RuleBool RuleKind = iota
	RuleNull
	RuleUndefined
	RuleInt
	RuleFloat
	RuleString
	RuleList
	RuleMap
)

func (k RuleKind) String() string {
	switch k {
	case RuleBool:
		return "boolean"
	case RuleNull:
		return "null"
	case RuleUndefined:
		return "undefined"
	case RuleInt:
		return "integer"
	case RuleFloat:
		return "float"
	case RuleString:
		return "string"
	case RuleList:
		return "list"
	case RuleMap:
		return "map"
	}
	return "<unknown rule kind>"
}

// RuleValue is the literal on the right of `rule=`.
type RuleValue struct {
	Kind   RuleKind
	Bool   bool              `json:",omitempty" yaml:",omitempty"`
	Int    int64             `json:",omitempty" yaml:",omitempty"`
	Float  float64           `json:",omitempty" yaml:",omitempty"`
	String string            `json:",omitempty" yaml:",omitempty"`
	List   []string          `json:",omitempty" yaml:",omitempty"`
	Map    map[string]*Value `json:",omitempty" yaml:",omitempty"`
}

func (v RuleValue) IsNumber() bool {
	return v.Kind == RuleInt || v.Kind == RuleFloat
}

func (v RuleValue) Number() float64 {
	if v.Kind == RuleInt {
		return float64(v.Int)
	}
	return v.Float
}

// Enabled reports whether a rule is switched on; only `false` turns a rule off.
func (v RuleValue) Enabled() bool {
	return v.Kind != RuleBool || v.Bool
}

// Text renders the value for diagnostics.
func (v RuleValue) Text() string {
	switch v.Kind {
	case RuleBool:
		return strconv.FormatBool(v.Bool)
	case RuleNull:
		return "null"
	case RuleUndefined:
		return "undefined"
	case RuleInt:
		return strconv.FormatInt(v.Int, 10)
	case RuleFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case RuleString:
		return v.String
	case RuleList:
		return "[" + strings.Join(v.List, ", ") + "]"
	case RuleMap:
		keys := slices.Sorted(maps.Keys(v.Map))
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ":" + v.Map[k].Text()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return ""
}

// Data converts the rule value to plain Go data.
func (v RuleValue) Data() any {
	switch v.Kind {
	case RuleBool:
		return v.Bool
	case RuleNull:
		return nil
	case RuleUndefined:
		return Undefined
	case RuleInt:
		return float64(v.Int)
	case RuleFloat:
		return v.Float
	case RuleString:
		return v.String
	case RuleList:
		res := make([]any, len(v.List))
		for i, s := range v.List {
			res[i] = s
		}
		return res
	case RuleMap:
		res := make(map[string]any, len(v.Map))
		for k, mv := range v.Map {
			res[k] = mv.Data()
		}
		return res
	}
	return nil
}

// Lookup returns the node at a dot-path, or nil.
func (rs RuleSet) Lookup(path string) *RuleNode {
	cur := rs
	var node *RuleNode
	for seg := range strings.SplitSeq(path, ".") {
		if cur == nil {
			return nil
		}
		node = cur[seg]
		if node == nil {
			return nil
		}
		cur = node.Children
	}
	return node
}

// Merge adds rules at a dot-path, creating intermediate nodes. Rules
// already present under the same name are overwritten.
func (rs RuleSet) Merge(path string, rules map[string]RuleValue) {
	segs := strings.Split(path, ".")
	cur := rs
	var node *RuleNode
	for i, seg := range segs {
		node = cur[seg]
		if node == nil {
			node = &RuleNode{}
			cur[seg] = node
		}
		if i == len(segs)-1 {
			break
		}
		if node.Children == nil {
			node.Children = RuleSet{}
		}
		cur = node.Children
	}
	if node.Rules == nil {
		node.Rules = make(map[string]RuleValue, len(rules))
	}
	maps.Copy(node.Rules, rules)
}
