// Package pipeline turns label data into export documents and print
// artifacts. The CLI and the preview server share it.
//
// A run has two stages. Build creates an editor from the data and the
// initial state, replays an optional action script and exports the scene.
// Render turns the document into JSON, PNG, PDF or SVG. Build results are
// cached by a hash of their inputs and artifacts by a hash of the document,
// so two edit histories that end in the same label share artifacts.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Data:    data,
//	    Script:  "drag barcode to 0",
//	    Formats: []string{pipeline.FormatPNG},
//	})
//	png := res.Artifacts[pipeline.FormatPNG]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labelkit/pkg/errors"
	"github.com/matzehuels/labelkit/pkg/export"
	"github.com/matzehuels/labelkit/pkg/label"
)

const (
	// DefaultScale renders PNGs at 100 DPI.
	DefaultScale = 1.0
	// DefaultTTL is how long build results and artifacts stay cached.
	DefaultTTL = 24 * time.Hour
)

// Options configures one run. The zero value builds the default label as
// JSON.
type Options struct {
	Data  label.LabelData
	State label.EditorState

	// Script is action script source replayed after the initial build;
	// ScriptName labels its errors.
	Script     string
	ScriptName string

	// FontMetrics measures text with the print fonts instead of the
	// character-width approximation.
	FontMetrics bool

	Formats []string
	Scale   float64

	// Refresh skips cache reads; results are still written.
	Refresh bool
	TTL     time.Duration

	Logger *log.Logger

	validated bool
}

// Result is the outcome of [Runner.Execute].
type Result struct {
	// State is the editor state after the script ran.
	State    label.EditorState
	Document export.Document
	// DocHash is the SHA-256 of the encoded document.
	DocHash   string
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

type Stats struct {
	Elements   int
	Statements int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo reports which stages were served from the cache. RenderHit is
// true only when every requested artifact was.
type CacheInfo struct {
	BuildHit  bool
	RenderHit bool
}

// ValidateAndSetDefaults checks the options and fills in defaults. A zero
// State becomes [label.DefaultState]. Formats are sorted and deduplicated.
// Calling it again is a no-op.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.State.IsZero() {
		o.State = label.DefaultState()
	}
	if err := label.ValidateState(o.State); err != nil {
		return err
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	o.Formats = slices.Compact(slices.Sorted(slices.Values(o.Formats)))
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	switch {
	case o.Scale == 0:
		o.Scale = DefaultScale
	case o.Scale < 0:
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.ScriptName == "" {
		o.ScriptName = "script"
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// measurerName keeps builds with different text measurement apart in the
// cache.
func (o *Options) measurerName() string {
	if o.FontMetrics {
		return "font"
	}
	return "approx"
}
