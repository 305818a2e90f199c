package literal

import (
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/ldoc-format/ldoc/ir"
)

// MaxSafeInteger is the largest integer a float64 holds exactly.
const MaxSafeInteger = 1<<53 - 1

var (
	numberRe  = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?$`)
	integerRe = regexp.MustCompile(`^[+-]?\d+$`)
	bufferRe  = regexp.MustCompile(`^<Buffer((?:\s+[^\s>]+)*)\s*>$`)

	maxSafe = big.NewInt(MaxSafeInteger)
	minSafe = big.NewInt(-MaxSafeInteger)
)

// Infer applies the record value grammar to the text between the
// parentheses of a `field(...)` term. In priority order:
//
//	empty                 undefined
//	"text"                String ("" is undefined)
//	<Buffer 0a ff>        Binary
//	12  -3.5  1e9         Number, integers beyond ±(2^53-1) as *big.Int
//	TRUE FALSE            Boolean
//	NULL                  Null
//	undefined             undefined
//	a date (ParseDate)    Date
//
// Anything else is ErrInvalidValue.
func Infer(s string) (*ir.Value, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return ir.Undef(), nil
	case IsQuoted(s):
		v := Unquote(s)
		if v == "" {
			return ir.Undef(), nil
		}
		return ir.FromString(v), nil
	case strings.HasPrefix(s, "<Buffer"):
		return inferBuffer(s)
	case numberRe.MatchString(s):
		return inferNumber(s)
	case s == "TRUE":
		return ir.FromBool(true), nil
	case s == "FALSE":
		return ir.FromBool(false), nil
	case s == "NULL":
		return ir.Null(), nil
	case s == "undefined":
		return ir.Undef(), nil
	}
	t, matched, err := ParseDate(s)
	if err == nil {
		return ir.FromTime(t, s), nil
	}
	if matched {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidValue, s)
}

func inferNumber(s string) (*ir.Value, error) {
	if integerRe.MatchString(s) {
		i, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidValue, s)
		}
		if i.Cmp(maxSafe) > 0 || i.Cmp(minSafe) < 0 {
			v := ir.FromBig(i)
			v.Raw = s
			return v, nil
		}
		v := ir.FromFloat(float64(i.Int64()))
		v.Raw = s
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidValue, s, err)
	}
	v := ir.FromFloat(f)
	v.Raw = s
	return v, nil
}

func inferBuffer(s string) (*ir.Value, error) {
	m := bufferRe.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("%w: malformed buffer %s", ErrInvalidValue, s)
	}
	fields := strings.Fields(m[1])
	bs := make([]byte, len(fields))
	for i, f := range fields {
		b, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: buffer byte %q", ErrInvalidValue, f)
		}
		bs[i] = byte(b)
	}
	return ir.FromBytes(bs, s), nil
}
