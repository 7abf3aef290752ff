package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arcslider/pkg/cache"
	"github.com/matzehuels/arcslider/pkg/observability"
)

// Runner executes the pipeline with caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute validates opts and renders every requested format, serving what
// it can from the cache.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hash, err := cache.HashJSON(struct {
		Widget any `json:"widget"`
		Style  any `json:"style"`
		Title  string
	}{opts.Widget, opts.Style, opts.Title})
	if err != nil {
		return nil, fmt.Errorf("hash widget: %w", err)
	}

	hooks := observability.Render()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)

	result := &Result{
		WidgetHash: hash,
		Artifacts:  make(map[string][]byte, len(opts.Formats)),
	}
	result.Stats.Sliders = len(opts.Widget.Sliders)

	var missing []string
	for _, format := range opts.Formats {
		if data, ok := r.lookup(ctx, hash, format, opts); ok {
			result.Artifacts[format] = data
			result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
			continue
		}
		missing = append(missing, format)
	}
	result.CacheInfo.Misses = missing

	if len(missing) > 0 {
		renderOpts := opts
		renderOpts.Formats = missing
		rendered, err := Render(renderOpts)
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, err
		}
		for format, data := range rendered {
			result.Artifacts[format] = data
			r.store(ctx, hash, format, data, opts)
		}
	}

	for _, data := range result.Artifacts {
		result.Stats.Bytes += len(data)
	}
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	opts.Logger.Debug("rendered widget",
		"hash", hash[:12],
		"formats", opts.Formats,
		"cached", result.CacheInfo.Hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// lookup reads one artifact from the cache. Backend errors are logged and
// treated as misses.
func (r *Runner) lookup(ctx context.Context, hash, format string, opts Options) ([]byte, bool) {
	if opts.Refresh {
		return nil, false
	}
	key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Warn("cache read failed", "format", format, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, format)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, format)
	return data, true
}

func (r *Runner) store(ctx context.Context, hash, format string, data []byte, opts Options) {
	key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
	if err := r.Cache.Set(ctx, key, data, opts.CacheTTL); err != nil {
		opts.Logger.Warn("cache write failed", "format", format, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, format, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
