// Package editor hosts one label designer session: it owns the editor state,
// rebuilds the scene graph after every change and routes pointer events to
// the interaction controller.
//
// An Editor is single-threaded. All methods run synchronously on the
// caller's goroutine and must not be called concurrently.
package editor

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labelkit/pkg/export"
	"github.com/matzehuels/labelkit/pkg/interact"
	"github.com/matzehuels/labelkit/pkg/label"
	"github.com/matzehuels/labelkit/pkg/layout"
	"github.com/matzehuels/labelkit/pkg/scene"
)

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger used for rebuild and dispatch debug output.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithLayoutOptions passes options to every layout rebuild.
func WithLayoutOptions(opts ...layout.Option) Option {
	return func(e *Editor) { e.layoutOpts = append(e.layoutOpts, opts...) }
}

// Editor is a live designer session.
type Editor struct {
	store      *label.Store
	data       label.LabelData
	graph      *scene.Graph
	ctrl       *interact.Controller
	layoutOpts []layout.Option
	logger     *log.Logger
	rebuilds   int
}

// New creates an editor from an initial state and label data. The initial
// state is validated; an invalid one is reported as an error.
func New(initial label.EditorState, data label.LabelData, opts ...Option) (*Editor, error) {
	if err := label.ValidateState(initial); err != nil {
		return nil, err
	}
	e := &Editor{
		store:  label.NewStore(initial),
		data:   data,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.ctrl = interact.New(e)
	e.store.Subscribe(func(prev, next label.EditorState, a label.Action) {
		e.logger.Debug("dispatched action", "action", a.Kind())
		e.Rebuild()
		e.ctrl.Sync()
	})
	e.Rebuild()
	return e, nil
}

// State returns the current editor state.
func (e *Editor) State() label.EditorState { return e.store.State() }

// Data returns the label data.
func (e *Editor) Data() label.LabelData { return e.data }

// Scene returns the current scene graph.
func (e *Editor) Scene() *scene.Graph { return e.graph }

// Controller returns the interaction controller.
func (e *Editor) Controller() *interact.Controller { return e.ctrl }

// Rebuilds returns how many times the scene has been built.
func (e *Editor) Rebuilds() int { return e.rebuilds }

// Dispatch applies an action. Invalid actions panic; see [label.Reduce].
func (e *Editor) Dispatch(a label.Action) {
	e.store.Dispatch(a)
}

// Apply validates an action from user input and dispatches it.
func (e *Editor) Apply(a label.Action) error {
	if err := label.Validate(e.State(), a); err != nil {
		return err
	}
	e.Dispatch(a)
	return nil
}

// Rebuild discards the scene and builds a new one from the current state.
func (e *Editor) Rebuild() {
	start := time.Now()
	e.graph = layout.Build(e.store.State(), e.data, e.layoutOpts...)
	e.rebuilds++
	e.logger.Debug("rebuilt scene", "nodes", e.graph.Count(), "duration", time.Since(start))
}

// SetData replaces the label data and rebuilds.
func (e *Editor) SetData(d label.LabelData) {
	e.data = d
	e.Rebuild()
	e.ctrl.Sync()
}

// PointerMove forwards pointer motion to the controller.
func (e *Editor) PointerMove(x, y float64) { e.ctrl.PointerMove(x, y) }

// PointerDown forwards a press to the controller.
func (e *Editor) PointerDown(x, y float64) { e.ctrl.PointerDown(x, y) }

// PointerUp forwards a release to the controller.
func (e *Editor) PointerUp(x, y float64) { e.ctrl.PointerUp(x, y) }

// PointerLeave forwards the pointer leaving the canvas.
func (e *Editor) PointerLeave() { e.ctrl.PointerLeave() }

// Export flattens the current scene into an export document.
func (e *Editor) Export() export.Document {
	return export.FromScene(e.graph, e.store.State())
}
