package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. It is what
// `labelkit -v` installs.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to l, or to the default logger when l
// is nil.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{logger: l.WithPrefix("hooks")}
}

var (
	_ LabelHooks = (*LogHooks)(nil)
	_ CacheHooks = (*LogHooks)(nil)
	_ HTTPHooks  = (*LogHooks)(nil)
)

func (h *LogHooks) OnStageStart(_ context.Context, stage Stage) {
	h.logger.Debug(string(stage) + " start")
}

func (h *LogHooks) OnStageDone(_ context.Context, ev StageEvent) {
	kv := []any{"duration", ev.Duration}
	switch ev.Stage {
	case StageLayout:
		kv = append(kv, "nodes", ev.Count)
	case StageScript:
		kv = append(kv, "statements", ev.Count)
	case StageExport:
		kv = append(kv, "elements", ev.Count)
	case StagePrint:
		kv = append(kv, "formats", ev.Formats)
	}
	if ev.Err != nil {
		kv = append(kv, "err", ev.Err)
	}
	h.logger.Debug(string(ev.Stage)+" done", kv...)
}

func (h *LogHooks) OnCacheLookup(_ context.Context, kind CacheKind, hit bool) {
	msg := "cache miss"
	if hit {
		msg = "cache hit"
	}
	h.logger.Debug(msg, "kind", kind)
}

func (h *LogHooks) OnCacheStore(_ context.Context, kind CacheKind, size int) {
	h.logger.Debug("cache store", "kind", kind, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}
