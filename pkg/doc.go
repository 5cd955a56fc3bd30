// Package pkg provides the libraries behind netdraw, which turns a network
// inventory into a layered draw.io diagram.
//
// # Architecture
//
// The typical data flow through netdraw:
//
//	inventory (.xlsx, .csv, .yaml, .json)
//	         ↓
//	    source (read rows, resolve parent references)
//	         ↓
//	    tree (primary-parent forest, cycle checks)
//	         ↓
//	    layout (tidy-tree subtree widths, grid positions)
//	         ↓
//	    frame (VLAN frames, collision resolution)
//	         ↓
//	    drawio (mxfile document)
//
// Each step is its own package: [source], [tree], [layout], [frame] and
// [drawio]. [pipeline] runs these steps for the CLI and the HTTP service
// and renders the secondary formats in [render]: Graphviz DOT, SVG, PNG,
// PDF and a layout JSON export. Rendered artifacts are cached by [cache].
//
// # Quick Start
//
//	set, _ := source.Load("inventory.xlsx", source.Options{})
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, _ := runner.Execute(ctx, set, pipeline.Options{})
//	_ = pipeline.WriteArtifact("network.drawio", result.Artifacts[pipeline.FormatDrawIO])
//
// # Supporting Packages
//
// [network] holds the node model. [errors] defines the coded error type
// shared by every package. [config] loads netdraw.toml and the
// environment. [observability] and [metrics] expose pipeline and cache
// events to Prometheus. [buildinfo] carries the version set at link time.
//
// [source]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/source
// [tree]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/tree
// [layout]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/layout
// [frame]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/frame
// [drawio]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/drawio
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/cache
// [network]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/network
// [errors]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/errors
// [config]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/observability
// [metrics]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/metrics
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/buildinfo
package pkg
