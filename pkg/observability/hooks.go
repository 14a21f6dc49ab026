// Package observability lets the host process watch label builds, cache
// traffic and preview requests without the library packages importing a
// metrics or tracing backend.
//
// Three hook sets exist: [LabelHooks] for the layout, script, export and
// print stages, [CacheHooks] for artifact cache traffic and [HTTPHooks] for
// the preview server. Each defaults to a no-op and is replaced once, by
// main, before any work starts:
//
//	hooks := observability.NewLogHooks(logger)
//	observability.SetLabelHooks(hooks)
//	observability.SetCacheHooks(hooks)
//
// Library code reports through the accessors:
//
//	observability.Label().OnStageStart(ctx, observability.StageLayout)
//	observability.Label().OnStageDone(ctx, observability.StageEvent{
//	    Stage: observability.StageLayout, Count: g.Count(), Duration: d,
//	})
package observability

import (
	"context"
	"sync"
	"time"
)

// Stage names one step of turning label data into artifacts.
type Stage string

const (
	StageLayout Stage = "layout"
	StageScript Stage = "script"
	StageExport Stage = "export"
	StagePrint  Stage = "print"
)

// StageEvent describes a finished stage. Count is the number of scene
// nodes (layout), statements (script) or elements (export); Formats is set
// for print.
type StageEvent struct {
	Stage    Stage
	Count    int
	Formats  []string
	Duration time.Duration
	Err      error
}

// LabelHooks receives stage events from the label pipeline.
type LabelHooks interface {
	OnStageStart(ctx context.Context, stage Stage)
	OnStageDone(ctx context.Context, ev StageEvent)
}

// CacheKind distinguishes cached build results from rendered artifacts.
type CacheKind string

const (
	CacheDocument CacheKind = "document"
	CacheArtifact CacheKind = "artifact"
)

// CacheHooks receives cache traffic.
type CacheHooks interface {
	OnCacheLookup(ctx context.Context, kind CacheKind, hit bool)
	OnCacheStore(ctx context.Context, kind CacheKind, size int)
}

// HTTPHooks receives preview server traffic.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, status int, d time.Duration)
}

// NopHooks implements every hook interface and does nothing.
type NopHooks struct{}

func (NopHooks) OnStageStart(context.Context, Stage)                                 {}
func (NopHooks) OnStageDone(context.Context, StageEvent)                             {}
func (NopHooks) OnCacheLookup(context.Context, CacheKind, bool)                      {}
func (NopHooks) OnCacheStore(context.Context, CacheKind, int)                        {}
func (NopHooks) OnRequest(context.Context, string, string)                           {}
func (NopHooks) OnResponse(context.Context, string, string, int, time.Duration)      {}

var _ interface {
	LabelHooks
	CacheHooks
	HTTPHooks
} = NopHooks{}

type registry struct {
	mu    sync.RWMutex
	label LabelHooks
	cache CacheHooks
	http  HTTPHooks
}

var hooks = &registry{label: NopHooks{}, cache: NopHooks{}, http: NopHooks{}}

// SetLabelHooks installs h. A nil h is ignored.
func SetLabelHooks(h LabelHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.label = h
	hooks.mu.Unlock()
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.cache = h
	hooks.mu.Unlock()
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.http = h
	hooks.mu.Unlock()
}

// Label returns the installed label hooks.
func Label() LabelHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.label
}

// Cache returns the installed cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.http
}

// Reset reinstalls the no-op hooks. Tests use it to isolate registrations.
func Reset() {
	hooks.mu.Lock()
	hooks.label, hooks.cache, hooks.http = NopHooks{}, NopHooks{}, NopHooks{}
	hooks.mu.Unlock()
}

// Track reports the start of stage and returns a function that reports its
// end. The returned function takes the event fields that are only known
// once the stage finishes.
func Track(ctx context.Context, stage Stage) func(count int, err error) {
	h := Label()
	start := time.Now()
	h.OnStageStart(ctx, stage)
	return func(count int, err error) {
		h.OnStageDone(ctx, StageEvent{Stage: stage, Count: count, Duration: time.Since(start), Err: err})
	}
}
