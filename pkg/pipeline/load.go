package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/matzehuels/netdraw/pkg/network"
	"github.com/matzehuels/netdraw/pkg/observability"
	"github.com/matzehuels/netdraw/pkg/source"
)

// Load reads a node set from a file, choosing the source by extension.
func Load(ctx context.Context, path string, opts source.Options) (*network.Set, error) {
	start := time.Now()
	set, err := source.Load(path, opts)
	observe(ctx, sourceName(path), set, start, err)
	return set, err
}

// LoadReader reads a node set from r using the named source.
func LoadReader(ctx context.Context, name string, r io.Reader, opts source.Options) (*network.Set, error) {
	start := time.Now()
	set, err := source.Read(name, r, opts)
	observe(ctx, name, set, start, err)
	return set, err
}

func observe(ctx context.Context, name string, set *network.Set, start time.Time, err error) {
	n := 0
	if set != nil {
		n = set.Len()
	}
	observability.Pipeline().OnLoadComplete(ctx, name, n, time.Since(start), err)
}

func sourceName(path string) string {
	if s, err := source.ForFile(path); err == nil {
		return s.Name()
	}
	return "unknown"
}
