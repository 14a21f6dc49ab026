package label

import (
	"maps"
	"slices"

	"github.com/matzehuels/labelkit/pkg/errors"
)

// =============================================================================
// Canvas Constants
// =============================================================================

const (
	// CanvasWidth is the label width in pixels (4 in at 100 DPI).
	CanvasWidth = 400.0

	// CanvasHeight is the label height in pixels (6 in at 100 DPI).
	CanvasHeight = 600.0

	// BorderWidth is the width of the decorative border strip on every edge.
	BorderWidth = 20.0

	// ContentWidth is the width available to sections inside the border.
	ContentWidth = CanvasWidth - 2*BorderWidth

	// ContentHeight is the height available to sections inside the border.
	ContentHeight = CanvasHeight - 2*BorderWidth
)

// SectionKey identifies one of the fixed label sections.
type SectionKey string

// FieldKey identifies one independently visible piece of content.
type FieldKey string

// FieldState holds the editable properties of a single field.
type FieldState struct {
	Visible  bool    `json:"visible"`
	FontSize float64 `json:"fontSize"`
}

// EditorState is the complete mutable state of the designer.
// SectionOrder is always a permutation of [SectionKeys].
type EditorState struct {
	SectionOrder   []SectionKey            `json:"sectionOrder"`
	SectionHeights map[SectionKey]float64  `json:"sectionHeights"`
	Fields         map[FieldKey]FieldState `json:"fields"`
}

// IsZero reports whether s is the zero value, i.e. no state was supplied.
func (s EditorState) IsZero() bool {
	return s.SectionOrder == nil && s.SectionHeights == nil && s.Fields == nil
}

// Field returns the state of a field. Unknown keys report the zero value.
func (s EditorState) Field(key FieldKey) FieldState {
	return s.Fields[key]
}

// Height returns the height of a section.
func (s EditorState) Height(key SectionKey) float64 {
	return s.SectionHeights[key]
}

// Index returns the position of a section in the order, or -1.
func (s EditorState) Index(key SectionKey) int {
	return slices.Index(s.SectionOrder, key)
}

// Top returns the content-relative top edge of a section: the sum of the
// heights of all sections that precede it in SectionOrder.
func (s EditorState) Top(key SectionKey) float64 {
	var top float64
	for _, k := range s.SectionOrder {
		if k == key {
			return top
		}
		top += s.SectionHeights[k]
	}
	return top
}

// TotalHeight returns the sum of all section heights.
func (s EditorState) TotalHeight() float64 {
	var total float64
	for _, k := range s.SectionOrder {
		total += s.SectionHeights[k]
	}
	return total
}

// Clone returns a deep copy of the state.
func (s EditorState) Clone() EditorState {
	return EditorState{
		SectionOrder:   slices.Clone(s.SectionOrder),
		SectionHeights: maps.Clone(s.SectionHeights),
		Fields:         maps.Clone(s.Fields),
	}
}

// SameOrder reports whether two section orders are identical.
func SameOrder(a, b []SectionKey) bool {
	return slices.Equal(a, b)
}

// CheckPermutation returns an error unless order contains every section key
// exactly once.
func CheckPermutation(order []SectionKey) error {
	if len(order) != len(sectionCatalog) {
		return errors.New(errors.ErrCodeInvalidOrder,
			"section order has %d keys, want %d", len(order), len(sectionCatalog))
	}
	seen := make(map[SectionKey]bool, len(order))
	for _, k := range order {
		if _, ok := sectionIndex[k]; !ok {
			return errors.New(errors.ErrCodeInvalidOrder, "unknown section %q", k)
		}
		if seen[k] {
			return errors.New(errors.ErrCodeInvalidOrder, "section %q appears twice", k)
		}
		seen[k] = true
	}
	return nil
}

// ValidateState checks a complete state: the order is a permutation, every
// section has a positive height and every field has a positive font size.
func ValidateState(s EditorState) error {
	if err := CheckPermutation(s.SectionOrder); err != nil {
		return err
	}
	for _, spec := range sectionCatalog {
		if err := errors.ValidatePositive(errors.ErrCodeInvalidSection,
			"height of section "+string(spec.Key), s.SectionHeights[spec.Key]); err != nil {
			return err
		}
	}
	for k := range s.SectionHeights {
		if _, ok := sectionIndex[k]; !ok {
			return errors.New(errors.ErrCodeInvalidSection, "unknown section %q", k)
		}
	}
	for _, spec := range fieldCatalog {
		fs, ok := s.Fields[spec.Key]
		if !ok {
			return errors.New(errors.ErrCodeInvalidField, "missing field %q", spec.Key)
		}
		if err := errors.ValidatePositive(errors.ErrCodeInvalidField,
			"font size of field "+string(spec.Key), fs.FontSize); err != nil {
			return err
		}
	}
	for k := range s.Fields {
		if _, ok := fieldIndex[k]; !ok {
			return errors.New(errors.ErrCodeInvalidField, "unknown field %q", k)
		}
	}
	return nil
}
