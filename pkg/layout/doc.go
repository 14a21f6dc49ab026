// Package layout turns an editor state and label data into a scene graph.
//
// [Build] starts from the content origin inset by the border width and
// stacks the sections in state order, each at the sum of the heights before
// it. Inside each section a sub-layout chosen by the section catalog places
// the fields:
//
//   - two-column sections split 55/45; the left column stacks fields from the
//     top with a cursor advance of fontSize + 5, the right column is
//     right-aligned to the section edge
//   - the items table keeps only visible columns and gives each the share
//     weight / Σ(visible weights) of the available width, then renders a
//     header row and at most five data rows
//   - the disclaimer is wrapped into a box whose height is clamped to the
//     room left in the section (the full text is kept; see [Wrap])
//   - the barcode section draws a synthesized pattern stretched to the
//     section width
//
// The decorative border tiles [BorderText] along all four edges with the
// symmetric spacing computed by [TileSpacing]; the left and right copies are
// rotated by −90° and +90°.
//
// Text widths come from a [Measurer]. The default [ApproxMeasurer] needs no
// font data; the render package provides one backed by real font metrics.
package layout
