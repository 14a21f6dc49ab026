package label

import (
	"maps"
	"slices"

	"github.com/matzehuels/labelkit/pkg/errors"
)

// Action is a state transition accepted by [Reduce].
type Action interface {
	// Kind returns a short action name for logs and hooks.
	Kind() string
}

// ToggleField shows or hides a field.
type ToggleField struct {
	Field   FieldKey
	Visible bool
}

// SetFontSize changes the font size of a field.
type SetFontSize struct {
	Field FieldKey
	Size  float64
}

// ReorderSections replaces the section order. Order must be a permutation of
// the fixed section keys.
type ReorderSections struct {
	Order []SectionKey
}

// ResizeSection changes the height of a section.
type ResizeSection struct {
	Section SectionKey
	Height  float64
}

func (ToggleField) Kind() string     { return "toggleField" }
func (SetFontSize) Kind() string     { return "setFontSize" }
func (ReorderSections) Kind() string { return "reorderSections" }
func (ResizeSection) Kind() string   { return "resizeSection" }

// Validate reports whether Reduce would accept the action.
func Validate(_ EditorState, a Action) error {
	switch a := a.(type) {
	case ToggleField:
		return checkField(a.Field)
	case SetFontSize:
		if err := checkField(a.Field); err != nil {
			return err
		}
		return errors.ValidatePositive(errors.ErrCodeInvalidField, "font size", a.Size)
	case ReorderSections:
		return CheckPermutation(a.Order)
	case ResizeSection:
		if _, ok := sectionIndex[a.Section]; !ok {
			return errors.New(errors.ErrCodeInvalidSection, "unknown section %q", a.Section)
		}
		return errors.ValidatePositive(errors.ErrCodeInvalidSection, "section height", a.Height)
	case nil:
		return errors.New(errors.ErrCodeInvalidInput, "nil action")
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported action %T", a)
	}
}

func checkField(key FieldKey) error {
	if _, ok := fieldIndex[key]; !ok {
		return errors.New(errors.ErrCodeInvalidField, "unknown field %q", key)
	}
	return nil
}

// Reduce applies an action and returns the next state. The input state is
// never modified; only the addressed part of the state is copied, the rest is
// shared with the previous value.
//
// Invalid actions are programmer errors and cause a panic with an
// *errors.Error. Call [Validate] first when the action comes from user input.
func Reduce(s EditorState, a Action) EditorState {
	if err := Validate(s, a); err != nil {
		panic(err)
	}
	next := s
	switch a := a.(type) {
	case ToggleField:
		next.Fields = cloneMap(s.Fields)
		fs := next.Fields[a.Field]
		fs.Visible = a.Visible
		next.Fields[a.Field] = fs
	case SetFontSize:
		next.Fields = cloneMap(s.Fields)
		fs := next.Fields[a.Field]
		fs.FontSize = a.Size
		next.Fields[a.Field] = fs
	case ReorderSections:
		next.SectionOrder = slices.Clone(a.Order)
	case ResizeSection:
		next.SectionHeights = cloneMap(s.SectionHeights)
		next.SectionHeights[a.Section] = a.Height
	}
	return next
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return make(map[K]V)
	}
	return maps.Clone(m)
}
