package records

import (
	"fmt"
	"strings"

	"github.com/ldoc-format/ldoc/ir"
	"github.com/ldoc-format/ldoc/literal"
)

// syntaxError is a failure at a byte offset of the record text.
type syntaxError struct {
	off int
	msg string
}

func (e *syntaxError) Error() string { return e.msg }

// parser reads the terms of one record:
//
//	name(value); list[ _0(value); _1{ k(v); }; ]; obj{ k(v); };
type parser struct {
	s        string
	i        int
	maxDepth int
}

func (p *parser) errorf(format string, args ...any) error {
	return &syntaxError{off: p.i, msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.i < len(p.s) && isSpace(p.s[p.i]) {
		p.i++
	}
}

// terms reads terms up to the byte close, or to the end of the text when
// close is 0, calling add for each.
func (p *parser) terms(close byte, depth int, add func(name string, v *ir.Value)) error {
	for {
		p.skipSpace()
		if p.i >= len(p.s) {
			if close != 0 {
				return p.errorf("missing '%c'", close)
			}
			return nil
		}
		if close != 0 && p.s[p.i] == close {
			p.i++
			return nil
		}
		start := p.i
		for p.i < len(p.s) && !isSpace(p.s[p.i]) && strings.IndexByte(`()[]{};"`, p.s[p.i]) < 0 {
			p.i++
		}
		name := p.s[start:p.i]
		if name == "" {
			return p.errorf("unexpected '%c'", p.s[p.i])
		}
		p.skipSpace()
		if p.i >= len(p.s) {
			return p.errorf("expected '(', '[' or '{' after '%s'", name)
		}
		var (
			v   *ir.Value
			err error
		)
		switch p.s[p.i] {
		case '(':
			v, err = p.scalar(name)
		case '[':
			v, err = p.array(name, depth+1)
		case '{':
			v, err = p.object(name, depth+1)
		default:
			return p.errorf("expected '(', '[' or '{' after '%s'", name)
		}
		if err != nil {
			return err
		}
		p.skipSpace()
		if p.i >= len(p.s) || p.s[p.i] != ';' {
			return p.errorf("expected ';' after '%s'", name)
		}
		p.i++
		add(name, v)
	}
}

func (p *parser) scalar(name string) (*ir.Value, error) {
	p.i++
	start := p.i
	inQ := false
scan:
	for ; p.i < len(p.s); p.i++ {
		c := p.s[p.i]
		if inQ {
			switch c {
			case '\\':
				p.i++
			case '"':
				inQ = false
			}
			continue
		}
		switch c {
		case '"':
			inQ = true
		case ')':
			break scan
		}
	}
	if p.i >= len(p.s) {
		return nil, &syntaxError{off: start, msg: fmt.Sprintf("missing ')' for '%s'", name)}
	}
	raw := p.s[start:p.i]
	p.i++
	v, err := literal.Infer(raw)
	if err != nil {
		return nil, &syntaxError{off: start, msg: fmt.Sprintf("field '%s': %v", name, err)}
	}
	return v, nil
}

func (p *parser) array(name string, depth int) (*ir.Value, error) {
	if depth > p.maxDepth {
		return nil, p.errorf("'%s' is nested deeper than %d", name, p.maxDepth)
	}
	p.i++
	labels := []string{}
	vs := []*ir.Value{}
	err := p.terms(']', depth, func(l string, v *ir.Value) {
		labels = append(labels, l)
		vs = append(vs, v)
	})
	if err != nil {
		return nil, err
	}
	return ir.FromSlice(labels, vs), nil
}

func (p *parser) object(name string, depth int) (*ir.Value, error) {
	if depth > p.maxDepth {
		return nil, p.errorf("'%s' is nested deeper than %d", name, p.maxDepth)
	}
	p.i++
	obj := ir.NewObject()
	if err := p.terms('}', depth, obj.Set); err != nil {
		return nil, err
	}
	return ir.FromObject(obj), nil
}

// OpenDepth returns how many brackets, braces and parentheses are left
// open at the end of s, counting an unterminated string as one more.
func OpenDepth(s string) int {
	depth := 0
	inQ := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQ {
			switch c {
			case '\\':
				i++
			case '"':
				inQ = false
			}
			continue
		}
		switch c {
		case '"':
			inQ = true
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}
	}
	if inQ {
		depth++
	}
	return depth
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
