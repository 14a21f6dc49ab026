package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labelkit/pkg/cache"
	"github.com/matzehuels/labelkit/pkg/editor"
	"github.com/matzehuels/labelkit/pkg/export"
	"github.com/matzehuels/labelkit/pkg/label"
	"github.com/matzehuels/labelkit/pkg/layout"
	"github.com/matzehuels/labelkit/pkg/observability"
	"github.com/matzehuels/labelkit/pkg/render"
	"github.com/matzehuels/labelkit/pkg/script"
)

// Runner executes pipelines against a cache. It keeps no per-run state, so
// the preview server shares one Runner across requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a Runner. A nil cache disables caching, a nil keyer
// uses [cache.DefaultKeyer] and a nil logger uses log.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	r := &Runner{Cache: c, Keyer: keyer, Logger: logger}
	if r.Cache == nil {
		r.Cache = cache.NewNullCache()
	}
	if r.Keyer == nil {
		r.Keyer = cache.NewDefaultKeyer()
	}
	if r.Logger == nil {
		r.Logger = log.Default()
	}
	return r
}

// Execute runs the complete build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Build
	buildStart := time.Now()
	built, buildHit, err := r.BuildWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.State = built.State
	result.Document = built.Document
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Elements = len(built.Document.Elements)
	result.Stats.Statements = built.Statements
	result.CacheInfo.BuildHit = buildHit

	r.Logger.Info("built label",
		"elements", result.Stats.Elements,
		"statements", built.Statements,
		"cached", buildHit,
		"duration", result.Stats.BuildTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, docHash, renderHit, err := r.RenderWithCacheInfo(ctx, built.Document, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.DocHash = docHash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"hash", docHash[:12],
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// builtEntry is how a BuildResult is stored in the cache.
type builtEntry struct {
	Document   export.Document `json:"document"`
	Statements int             `json:"statements"`
	State      json.RawMessage `json:"state"`
}

// BuildResult is the outcome of the build stage.
type BuildResult struct {
	State      label.EditorState
	Document   export.Document
	Statements int
}

// BuildWithCacheInfo builds the export document and reports whether it came
// from the cache.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, opts Options) (BuildResult, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return BuildResult{}, false, err
	}
	r.applyLogger(&opts)

	key, err := r.buildKey(opts)
	if err != nil {
		return BuildResult{}, false, err
	}

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var entry builtEntry
			if err := json.Unmarshal(data, &entry); err == nil {
				var st label.EditorState
				if err := json.Unmarshal(entry.State, &st); err == nil {
					observability.Cache().OnCacheLookup(ctx, observability.CacheDocument, true)
					return BuildResult{State: st, Document: entry.Document, Statements: entry.Statements}, true, nil
				}
			}
		}
		observability.Cache().OnCacheLookup(ctx, observability.CacheDocument, false)
	}

	res, err := Build(ctx, opts)
	if err != nil {
		return BuildResult{}, false, err
	}

	if stateData, err := json.Marshal(res.State); err == nil {
		entry := builtEntry{Document: res.Document, Statements: res.Statements, State: stateData}
		if data, err := json.Marshal(entry); err == nil {
			if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
				r.Logger.Warn("cache write failed", "err", err)
			} else {
				observability.Cache().OnCacheStore(ctx, observability.CacheDocument, len(data))
			}
		}
	}
	return res, false, nil
}

// Build runs the build stage without caching.
func Build(ctx context.Context, opts Options) (BuildResult, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return BuildResult{}, err
	}
	var editorOpts []editor.Option
	editorOpts = append(editorOpts, editor.WithLogger(opts.Logger))
	if opts.FontMetrics {
		m, err := render.NewFontMeasurer()
		if err != nil {
			return BuildResult{}, fmt.Errorf("load fonts: %w", err)
		}
		editorOpts = append(editorOpts, editor.WithLayoutOptions(layout.WithMeasurer(m)))
	}

	layoutDone := observability.Track(ctx, observability.StageLayout)
	e, err := editor.New(opts.State, opts.Data, editorOpts...)
	if err != nil {
		layoutDone(0, err)
		return BuildResult{}, err
	}
	layoutDone(e.Scene().Count(), nil)

	var statements int
	if strings.TrimSpace(opts.Script) != "" {
		scriptDone := observability.Track(ctx, observability.StageScript)
		s, err := script.Parse(opts.ScriptName, strings.NewReader(opts.Script))
		if err == nil {
			statements = len(s.Statements)
			err = s.Run(e)
		}
		scriptDone(statements, err)
		if err != nil {
			return BuildResult{}, err
		}
	}

	exportDone := observability.Track(ctx, observability.StageExport)
	doc := e.Export()
	exportDone(len(doc.Elements), nil)

	return BuildResult{State: e.State(), Document: doc, Statements: statements}, nil
}

func (r *Runner) buildKey(opts Options) (string, error) {
	data, err := json.Marshal(opts.Data)
	if err != nil {
		return "", fmt.Errorf("serialize data for cache key: %w", err)
	}
	state, err := json.Marshal(opts.State)
	if err != nil {
		return "", fmt.Errorf("serialize state for cache key: %w", err)
	}
	hash := cache.HashParts(data, state, []byte(opts.Script), []byte(opts.measurerName()))
	return r.Keyer.ExportKey(hash), nil
}

// RenderWithCacheInfo renders every requested format of a document,
// returning the artifacts, the document hash and whether every artifact
// came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc export.Document, opts Options) (map[string][]byte, string, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, "", false, err
	}
	r.applyLogger(&opts)

	docData, err := export.Marshal(doc)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize document for cache key: %w", err)
	}
	docHash := cache.Hash(docData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if format == FormatJSON {
			artifacts[format] = docData
			continue
		}
		key := r.Keyer.ArtifactKey(docHash, r.artifactKeyOpts(format, opts))
		if !opts.Refresh {
			if data, err := cache.MustGet(ctx, r.Cache, key); err == nil {
				observability.Cache().OnCacheLookup(ctx, observability.CacheArtifact, true)
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheLookup(ctx, observability.CacheArtifact, false)
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, docHash, true, nil
	}

	hooks := observability.Label()
	hooks.OnStageStart(ctx, observability.StagePrint)
	start := time.Now()
	rendered, err := RenderAll(doc, missing, opts.Scale)
	hooks.OnStageDone(ctx, observability.StageEvent{
		Stage:    observability.StagePrint,
		Formats:  missing,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		return nil, "", false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(docHash, r.artifactKeyOpts(format, opts))
		if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheStore(ctx, observability.CacheArtifact, len(data))
	}
	return artifacts, docHash, false, nil
}

func (r *Runner) artifactKeyOpts(format string, opts Options) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		k.Scale = opts.Scale
	}
	return k
}

// Render is a convenience wrapper around [Runner.RenderWithCacheInfo].
func (r *Runner) Render(ctx context.Context, doc export.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, _, err := r.RenderWithCacheInfo(ctx, doc, opts)
	return artifacts, err
}

// LoadDocument decodes a cached or stored JSON artifact.
func LoadDocument(data []byte) (export.Document, error) {
	return export.Read(bytes.NewReader(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
