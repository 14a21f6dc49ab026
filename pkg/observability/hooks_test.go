package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type recorder struct {
	NopHooks
	started []Stage
	done    []StageEvent
	lookups map[CacheKind][]bool
}

func (r *recorder) OnStageStart(_ context.Context, s Stage) { r.started = append(r.started, s) }
func (r *recorder) OnStageDone(_ context.Context, ev StageEvent) {
	r.done = append(r.done, ev)
}
func (r *recorder) OnCacheLookup(_ context.Context, k CacheKind, hit bool) {
	if r.lookups == nil {
		r.lookups = map[CacheKind][]bool{}
	}
	r.lookups[k] = append(r.lookups[k], hit)
}

func TestRegistryDefaultsAndReset(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Label().(NopHooks); !ok {
		t.Errorf("Label() = %T, want NopHooks", Label())
	}
	if _, ok := HTTP().(NopHooks); !ok {
		t.Errorf("HTTP() = %T, want NopHooks", HTTP())
	}

	r := &recorder{}
	SetLabelHooks(r)
	SetCacheHooks(r)
	SetHTTPHooks(r)
	SetLabelHooks(nil)
	if Label() != LabelHooks(r) || Cache() != CacheHooks(r) || HTTP() != HTTPHooks(r) {
		t.Fatal("installed hooks not returned")
	}

	Reset()
	if _, ok := Cache().(NopHooks); !ok {
		t.Errorf("Cache() after Reset = %T, want NopHooks", Cache())
	}
}

func TestTrack(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	r := &recorder{}
	SetLabelHooks(r)

	done := Track(context.Background(), StageLayout)
	done(42, nil)
	fail := Track(context.Background(), StageScript)
	fail(3, errors.New("bad drag"))

	if len(r.started) != 2 || r.started[0] != StageLayout || r.started[1] != StageScript {
		t.Fatalf("started = %v", r.started)
	}
	if r.done[0].Count != 42 || r.done[0].Err != nil {
		t.Errorf("layout event = %+v", r.done[0])
	}
	if r.done[1].Stage != StageScript || r.done[1].Err == nil {
		t.Errorf("script event = %+v", r.done[1])
	}
}

func TestLogHooks(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))

	h.OnStageDone(ctx, StageEvent{Stage: StageLayout, Count: 42, Duration: time.Millisecond})
	h.OnStageDone(ctx, StageEvent{Stage: StagePrint, Formats: []string{"pdf"}, Err: errors.New("boom")})
	h.OnCacheLookup(ctx, CacheArtifact, true)
	h.OnCacheStore(ctx, CacheDocument, 512)
	h.OnResponse(ctx, "GET", "/labels/x.json", 404, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"layout done", "nodes=42", "print done", "boom", "cache hit", "kind=artifact", "bytes=512", "status=404", "hooks"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))
	h.OnCacheLookup(context.Background(), CacheDocument, false)
	h.OnStageStart(context.Background(), StageExport)
	if buf.Len() != 0 {
		t.Errorf("debug event logged at info level: %s", buf.String())
	}
}
