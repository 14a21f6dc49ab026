// Package label defines the document model of the shipping-label designer.
//
// # Overview
//
// A label is a fixed-size canvas framed by a decorative border strip. Inside
// the border, a fixed set of sections is stacked top to bottom without gaps.
// Each section owns a fixed set of fields (address lines, table columns, the
// barcode, the disclaimer). Only three things ever vary:
//
//   - the vertical order of the sections
//   - the height of each section
//   - the visibility and font size of each field
//
// Together these make up an [EditorState]. The content rendered into the
// fields comes from [LabelData], which is supplied from outside and never
// edited here.
//
// # Reducer
//
// EditorState values are immutable by convention. All changes go through
// [Reduce] with one of four actions:
//
//   - [ToggleField]: show or hide a field
//   - [SetFontSize]: change a field's font size
//   - [ReorderSections]: replace the section order with a permutation
//   - [ResizeSection]: change a section's height
//
// Reduce copies only the slice of state the action addresses. Invalid actions
// (an order that drops or duplicates a key, an unknown field, a non-positive
// height) are programmer errors and panic. Code that accepts user input calls
// [Validate] first and reports the error instead.
//
// A [Store] holds the current state for one editor and notifies listeners
// after every dispatched action:
//
//	store := label.NewStore(label.DefaultState())
//	store.Subscribe(func(prev, next label.EditorState, a label.Action) {
//	    rebuild(next)
//	})
//	store.Dispatch(label.ResizeSection{Section: label.SectionItems, Height: 160})
//
// # Contiguity
//
// Section positions are never stored. A section's top edge is always the sum
// of the heights of the sections before it, see [EditorState.Top].
package label
