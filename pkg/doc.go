// Package pkg provides the core libraries for labelkit, a 4x6 inch shipping
// label designer.
//
// # Overview
//
// A label is a fixed stack of sections (sender, recipient, barcode, items,
// disclaimer) inside a 400x600 pixel canvas. The editor state decides the
// section order, section heights and per-field visibility and font size;
// everything else is derived. The pkg directory is organized as:
//
//  1. [label] - Catalog, editor state, actions and the reducer
//  2. [layout], [scene], [geom], [barcode] - Scene graph construction
//  3. [interact], [editor] - Pointer interaction and the designer session
//  4. [export], [render] - Export document and print/preview renderers
//  5. [pipeline], [cache], [script], [config] - Headless builds with caching
//  6. [preview] - HTTP view of exported labels
//
// # Architecture
//
// The data flow through labelkit:
//
//	LabelData + EditorState
//	         ↓
//	    [layout] (build the scene graph)
//	         ↓
//	    [interact] (hover, drag, reorder → actions → rebuild)
//	         ↓
//	    [export] (flatten to absolute coordinates)
//	         ↓
//	    [render] (PNG, PDF, SVG)
//
// # Quick Start
//
//	e, _ := editor.New(label.DefaultState(), data)
//	e.Dispatch(label.ResizeSection{Section: label.SectionItems, Height: 160})
//	doc := e.Export()
//	png, _ := render.RenderPNG(doc)
package pkg
