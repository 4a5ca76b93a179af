package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/funnel/pkg/cache"
	"github.com/matzehuels/funnel/pkg/funnel"
	"github.com/matzehuels/funnel/pkg/funnel/input"
	"github.com/matzehuels/funnel/pkg/observability"
)

// Runner renders with caching. It holds no per-render state, so one Runner
// can serve concurrent renders.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a runner. A nil cache disables caching and a nil keyer
// uses cache.DefaultKeyer.
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

// Render validates points and opts and returns one artifact per format,
// serving what it can from the cache.
func (r *Runner) Render(ctx context.Context, points []funnel.DataPoint, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := input.Validate(points); err != nil {
		return nil, err
	}

	encoded, err := input.EncodeJSON(points)
	if err != nil {
		return nil, fmt.Errorf("hash input: %w", err)
	}
	result := &Result{
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		InputHash: cache.Hash(encoded),
	}
	result.Stats.Steps = len(funnel.Steps(points))
	result.Stats.Blanks = len(points) - result.Stats.Steps

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	var missing []string
	for _, format := range opts.Formats {
		if data, ok := r.lookup(ctx, result.InputHash, format, opts); ok {
			result.Artifacts[format] = data
			result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
			continue
		}
		missing = append(missing, format)
	}

	if len(missing) > 0 {
		todo := opts
		todo.Formats = missing
		rendered, err := RenderFormats(points, todo)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, err
		}
		for format, data := range rendered {
			result.Artifacts[format] = data
			r.store(ctx, result.InputHash, format, opts, data)
		}
	}

	result.Stats.RenderTime = time.Since(start)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	opts.Logger.Info("rendered funnel",
		"steps", result.Stats.Steps,
		"formats", opts.Formats,
		"cached", len(result.CacheInfo.Hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) lookup(ctx context.Context, inputHash, format string, opts Options) ([]byte, bool) {
	if opts.Refresh {
		return nil, false
	}
	key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Warn("cache read failed", "format", format, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "artifact")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	opts.Logger.Debug("cache hit", "format", format)
	return data, true
}

func (r *Runner) store(ctx context.Context, inputHash, format string, opts Options, data []byte) {
	key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		opts.Logger.Warn("cache write failed", "format", format, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "artifact", len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
