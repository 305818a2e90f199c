package encode

import (
	"strings"

	"github.com/ldoc-format/ldoc/ir"

	"github.com/fatih/color"
)

type Colorable struct {
	Kind ir.Kind
	Attr ColorAttr
}

type ColorAttr int

const (
	CommentColor ColorAttr = iota
	MarkerColor
	FieldColor
	TypeColor
	RuleColor
	ValueColor
	SepColor
	ErrorColor
)

var kinds = []ir.Kind{
	ir.StringKind,
	ir.NumberKind,
	ir.BooleanKind,
	ir.NullKind,
	ir.UndefinedKind,
	ir.DateKind,
	ir.BinaryKind,
	ir.ArrayKind,
	ir.ObjectKind,
}

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, k := range kinds {
		able := Colorable{Kind: k, Attr: CommentColor}
		colors.Map[able] = color.BlueString
		able.Attr = MarkerColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
		able.Attr = FieldColor
		colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
		able.Attr = TypeColor
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = RuleColor
		colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()
		able.Attr = SepColor
		colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()
		able.Attr = ErrorColor
		colors.Map[able] = color.New(color.FgRed, color.Bold).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Kind = ir.NumberKind
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Kind = ir.NullKind
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()
	able.Kind = ir.UndefinedKind
	colors.Map[able] = color.RGB(96, 96, 96).SprintfFunc()
	able.Kind = ir.BooleanKind
	colors.Map[able] = color.CyanString
	able.Kind = ir.StringKind
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	able.Kind = ir.DateKind
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()
	able.Kind = ir.BinaryKind
	colors.Map[able] = color.RGB(88, 158, 86).SprintfFunc()

	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k ir.Kind, a ColorAttr, s string) string {
	return c.Get(k, a)(s)
}

func (c *Colors) Get(k ir.Kind, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
