// Package script parses and replays label designer edits.
//
// A script is a line-oriented list of statements; '#' starts a comment:
//
//	# move the barcode up and enlarge the name
//	order barcode sender recipient items disclaimer
//	font recipient.name 18
//	show sender.phone
//	hide order.weight
//	resize items 160
//	drag disclaimer to 20
//
// show, hide, font, resize and order become reducer actions. drag replays a
// pointer gesture through the interaction controller: the section is
// grabbed at its centre and released once its top edge is at the given
// canvas y, so the resulting order is decided exactly as for a user drag.
package script

import (
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/labelkit/pkg/errors"
)

var (
	scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "Number", Pattern: `-?\d+(?:\.\d+)?`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.-]*`},
	})

	scriptParser = participle.MustBuild[Script](
		participle.Lexer(scriptLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

// Script is the root AST node.
type Script struct {
	Statements []*Statement `parser:"Newline* ( @@ Newline* )*"`
}

// Statement is one edit. Exactly one field is set.
type Statement struct {
	Pos lexer.Position

	Show   *string  `parser:"  'show' @Ident"`
	Hide   *string  `parser:"| 'hide' @Ident"`
	Font   *Font    `parser:"| 'font' @@"`
	Resize *Resize  `parser:"| 'resize' @@"`
	Order  []string `parser:"| 'order' @Ident+"`
	Drag   *Drag    `parser:"| 'drag' @@"`
}

// Font sets a field's font size.
type Font struct {
	Field string  `parser:"@Ident"`
	Size  float64 `parser:"@Number"`
}

// Resize sets a section's height.
type Resize struct {
	Section string  `parser:"@Ident"`
	Height  float64 `parser:"@Number"`
}

// Drag moves a section's top edge to a canvas y.
type Drag struct {
	Section string  `parser:"@Ident"`
	Y       float64 `parser:"'to' @Number"`
}

// Verb returns the statement keyword.
func (s *Statement) Verb() string {
	switch {
	case s.Show != nil:
		return "show"
	case s.Hide != nil:
		return "hide"
	case s.Font != nil:
		return "font"
	case s.Resize != nil:
		return "resize"
	case s.Order != nil:
		return "order"
	case s.Drag != nil:
		return "drag"
	}
	return "unknown"
}

// Parse parses a script. name is used in error positions.
func Parse(name string, r io.Reader) (*Script, error) {
	s, err := scriptParser.Parse(name, r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "parse script")
	}
	return s, nil
}

// ParseString parses a script from a string.
func ParseString(input string) (*Script, error) {
	s, err := scriptParser.ParseString("", input)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "parse script")
	}
	return s, nil
}
