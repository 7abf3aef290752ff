package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by logging at debug level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that log to logger, prefixed with "hooks".
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

// Install registers h for every event category.
func (h *LogHooks) Install() {
	SetRenderHooks(h)
	SetCacheHooks(h)
	SetInteractionHooks(h)
	SetServerHooks(h)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "duration", d, "err", err)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, format string) {
	h.logger.Debug("cache hit", "format", format)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, format string) {
	h.logger.Debug("cache miss", "format", format)
}

func (h *LogHooks) OnCacheSet(_ context.Context, format string, size int) {
	h.logger.Debug("cache set", "format", format, "bytes", size)
}

func (h *LogHooks) OnInstanceCreated(_ context.Context, instance string, sliders int) {
	h.logger.Debug("instance created", "id", instance, "sliders", sliders)
}

func (h *LogHooks) OnInstanceExpired(_ context.Context, instance string) {
	h.logger.Debug("instance expired", "id", instance)
}

func (h *LogHooks) OnPointer(_ context.Context, instance, phase, sliderID string, value float64) {
	if sliderID == "" {
		h.logger.Debug("pointer ignored", "id", instance, "phase", phase)
		return
	}
	h.logger.Debug("pointer", "id", instance, "phase", phase, "slider", sliderID, "value", value)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("request", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ RenderHooks      = (*LogHooks)(nil)
	_ CacheHooks       = (*LogHooks)(nil)
	_ InteractionHooks = (*LogHooks)(nil)
	_ ServerHooks      = (*LogHooks)(nil)
)
