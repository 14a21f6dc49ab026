// Package preview serves exported label documents over HTTP.
//
// The server is the "view" that [export.Deliver] opens: [Server.Open] stores
// a document under a fresh ID and returns its URL. Every stored label can be
// fetched as JSON or rendered on demand as PNG, PDF or SVG.
//
//	GET  /                      index of stored labels (JSON)
//	POST /labels                store a document, 201 + Location
//	GET  /labels/{id}           HTML page embedding the SVG
//	GET  /labels/{id}.{format}  json | png | pdf | svg
//
// Rendered artifacts go through a [pipeline.Runner], so a cache configured
// on the runner is shared with the CLI.
package preview
