// Package render turns exported label documents into print and preview
// artifacts.
//
// # Overview
//
// Every renderer consumes an [export.Document], never the live scene, so a
// document saved to disk renders identically later. The label canvas is
// 400 × 600 px where one pixel is 1/100 inch; print output is therefore
// exactly 4 × 6 inches.
//
//   - [RenderPNG] rasterizes at 100 DPI (scaled with [WithScale])
//   - [RenderPDF] writes a single 101.6 × 152.4 mm page
//   - [RenderSVG] writes a standalone SVG for browser previews
//
// PNG and PDF are drawn with github.com/tdewolff/canvas using the Go fonts
// from [fonts]. The same faces back [FontMeasurer], which the layout engine
// can use instead of its approximate measurer so that truncation and
// wrapping match the printed output.
//
// # Clipping
//
// Text boxes flagged as overflowing keep all their wrapped lines in the
// document; renderers draw only the lines that fit completely inside the
// box height.
//
// # Scene tree
//
// The [tree] subpackage renders the scene graph itself as a node-link
// diagram for debugging.
//
// [tree]: github.com/matzehuels/labelkit/pkg/render/tree
// [fonts]: github.com/matzehuels/labelkit/pkg/fonts
package render
