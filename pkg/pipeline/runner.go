package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netdraw/pkg/cache"
	"github.com/matzehuels/netdraw/pkg/drawio"
	errs "github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/network"
	"github.com/matzehuels/netdraw/pkg/observability"
)

// keyTypeDocument labels document cache events.
const keyTypeDocument = "document"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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

// Execute runs layout → frames → render for set. The set is not modified.
func (r *Runner) Execute(ctx context.Context, set *network.Set, opts Options) (*Result, error) {
	if set == nil || set.Len() == 0 {
		return nil, errs.New(errs.ErrCodeNoData, "no nodes to draw")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	setHash, err := HashSet(set)
	if err != nil {
		return nil, err
	}
	result := &Result{
		SetHash: setHash,
		Stats: Stats{
			NodeCount: set.Len(),
			EdgeCount: set.EdgeCount(),
		},
	}

	// Stage 1: Layout and frames
	layoutStart := time.Now()
	l, err := GenerateLayout(ctx, set, opts)
	if err != nil {
		return nil, err
	}
	result.Forest = l.Forest
	result.Positions = l.Positions
	result.Frames = l.Frames
	result.Resolution = l.Resolution
	result.Stats.RootCount = len(l.Forest.Roots)
	result.Stats.FrameCount = len(l.Frames)
	result.Stats.LayoutTime = time.Since(layoutStart)

	r.Logger.Info("computed layout",
		"nodes", result.Stats.NodeCount,
		"roots", result.Stats.RootCount,
		"frames", result.Stats.FrameCount,
		"rounds", l.Resolution.Rounds,
		"duration", result.Stats.LayoutTime)

	// The report is cheap to rebuild and is needed even on a cache hit.
	_, result.Report = drawio.Build(set, l.Positions, opts.Diagram)
	r.logReport(result.Report)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, set, setHash, l, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders every requested format, serving cached
// artifacts where possible, and reports whether all of them were cached.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, set *network.Set, setHash string, l Layout, opts Options) (map[string][]byte, bool, error) {
	cacheHooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string

	for _, format := range opts.Formats {
		if opts.Refresh {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.DocumentKey(setHash, opts.DocumentKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Debug("cache read failed", "format", format, "err", err)
		}
		if err == nil && hit {
			cacheHooks.OnCacheHit(ctx, keyTypeDocument)
			artifacts[format] = data
			continue
		}
		cacheHooks.OnCacheMiss(ctx, keyTypeDocument)
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		return artifacts, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, set, l, renderOpts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.DocumentKey(setHash, opts.DocumentKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLDocument); err != nil {
			r.Logger.Debug("cache write failed", "format", format, "err", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, keyTypeDocument, len(data))
	}
	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// HashSet returns the content hash of a node set.
func HashSet(set *network.Set) (string, error) {
	data, err := json.Marshal(set)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInternal, err, "hash node set")
	}
	return cache.Hash(data), nil
}

func (r *Runner) logReport(rep drawio.Report) {
	for _, id := range rep.MissingPositions {
		r.Logger.Warn("node has no position, drawn at default", "id", id)
	}
	for _, e := range rep.DanglingEdges {
		r.Logger.Warn("edge to unknown node skipped", "edge", e)
	}
	r.Logger.Debug("assembled document",
		"frames", rep.Frames,
		"nodes", rep.Nodes,
		"edges", rep.Edges,
		"notes", rep.Notes)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
