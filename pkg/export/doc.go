// Package export flattens a label scene graph into a versioned JSON document
// with absolute coordinates.
//
// # Document
//
//	{
//	  "version": "1.0",
//	  "canvas":   {"width": 400, "height": 600, "borderWidth": 20},
//	  "sections": {"order": ["sender", ...], "heights": {"sender": 100, ...}},
//	  "elements": [
//	    {"type": "text", "elementType": "field", "field": "recipient.name",
//	     "absoluteX": 28, "absoluteY": 128,
//	     "dimensions": {"width": 92.4, "height": 14},
//	     "text": "Ada Lovelace", "style": {"fontSize": 14, "fontWeight": "bold"}},
//	    ...
//	  ]
//	}
//
// [FromScene] walks the graph exactly once and resolves every leaf through
// the scene resolver. Text elements report their left edge regardless of
// anchor; lines report endpoints and use the minimum corner as their
// origin. Barcode groups appear as one element with their bar widths.
//
// # Delivery
//
// [Deliver] hands a document to an [Opener] (for example the preview
// server) and writes it to a file when no view can be opened.
package export
