package script

import (
	"github.com/matzehuels/labelkit/pkg/errors"
	"github.com/matzehuels/labelkit/pkg/label"
	"github.com/matzehuels/labelkit/pkg/scene"
)

// Target is the editor a script runs against.
type Target interface {
	State() label.EditorState
	Scene() *scene.Graph
	Apply(a label.Action) error
	PointerMove(x, y float64)
	PointerDown(x, y float64)
	PointerUp(x, y float64)
}

// Run executes the statements in order and stops at the first failure. The
// error names the statement's line.
func (s *Script) Run(t Target) error {
	for _, st := range s.Statements {
		if err := st.run(t); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "line %d: %s", st.Pos.Line, st.Verb())
		}
	}
	return nil
}

// Actions returns the reducer actions of a script that contains no drag
// statements. Drags depend on the live scene and cannot be expressed as a
// single action ahead of time.
func (s *Script) Actions() ([]label.Action, error) {
	out := make([]label.Action, 0, len(s.Statements))
	for _, st := range s.Statements {
		if st.Drag != nil {
			return nil, errors.New(errors.ErrCodeUnsupported, "line %d: drag needs a live editor", st.Pos.Line)
		}
		out = append(out, st.action())
	}
	return out, nil
}

func (st *Statement) action() label.Action {
	switch {
	case st.Show != nil:
		return label.ToggleField{Field: label.FieldKey(*st.Show), Visible: true}
	case st.Hide != nil:
		return label.ToggleField{Field: label.FieldKey(*st.Hide), Visible: false}
	case st.Font != nil:
		return label.SetFontSize{Field: label.FieldKey(st.Font.Field), Size: st.Font.Size}
	case st.Resize != nil:
		return label.ResizeSection{Section: label.SectionKey(st.Resize.Section), Height: st.Resize.Height}
	case st.Order != nil:
		order := make([]label.SectionKey, len(st.Order))
		for i, k := range st.Order {
			order[i] = label.SectionKey(k)
		}
		return label.ReorderSections{Order: order}
	}
	return nil
}

func (st *Statement) run(t Target) error {
	if st.Drag != nil {
		return drag(t, label.SectionKey(st.Drag.Section), st.Drag.Y)
	}
	return t.Apply(st.action())
}

// drag grabs the section at its centre, moves it until its top edge is at
// y, and releases it there.
func drag(t Target, key label.SectionKey, y float64) error {
	sec := t.Scene().Section(key)
	if sec == nil {
		return errors.New(errors.ErrCodeInvalidSection, "unknown section %q", key)
	}
	x := sec.X + sec.W/2
	grab := sec.H / 2
	t.PointerMove(x, sec.Y+grab)
	t.PointerDown(x, sec.Y+grab)
	t.PointerMove(x, y+grab)
	t.PointerUp(x, y+grab)
	return nil
}
