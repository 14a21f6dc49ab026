// Package scene holds the in-memory scene graph of a rendered label and the
// resolver that turns local offsets into absolute canvas coordinates.
//
// # Scene Graph
//
// A [Graph] is a tree of [Node] values: rectangles, text, wrapped text boxes,
// lines, images and groups. Every section of the label is a group tagged
// [TagSection] that sits directly under the root, anchored at its absolute
// position and sized to the section. Its children are expressed in
// section-local coordinates, starting with a background rectangle.
//
// Graphs are never patched to reflect a new editor state. The layout package
// builds a fresh graph for every change. The only in-place edits are the
// transient hover and drag effects of the interaction controller (style,
// z-order and the dragged section's y), which the next rebuild discards.
//
// # Coordinate Resolution
//
// Nodes store only their local offset. [Resolve] composes the translation of
// every ancestor group, innermost first, with general 2×3 affine composition
// (see [geom.Matrix]) and then applies primitive-specific rules:
//
//   - text anchored right reports its left edge as anchorX − width
//   - text anchored center reports anchorX − width/2
//   - lines resolve both endpoints and report the minimum as their origin
//
// Intermediate groups with a zero offset never change the result.
//
// # Debugging
//
// [ToDOT] describes the tree in Graphviz DOT format.
package scene
