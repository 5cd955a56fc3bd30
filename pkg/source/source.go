// Package source loads node sets from spreadsheet and text inputs.
//
// Every input format is a [Source]. [ForFile] picks a source by file name,
// [Load] opens a path and reads it, and [Read] decodes a stream with a named
// source. All sources feed the same post-processing: an empty result is a
// NO_DATA error and parent references are resolved with
// [network.Set.ResolveReferences], logging each fuzzy rewrite as a warning.
//
// Supported formats:
//
//   - xlsx: the network workbook (column A parents, B ID, D name, E IP,
//     F VLAN, G note)
//   - csv: a header row naming id, name, ip, vlan, note and parents
//   - yaml: a document with a top-level "nodes" list
//   - json: the same shape as yaml, or a bare list of nodes
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/network"
)

// Source decodes one input format into a node set.
type Source interface {
	// Name returns the format identifier used on the command line.
	Name() string
	// Supports reports whether this source handles the given file name.
	Supports(filename string) bool
	// Read decodes r. The returned set has its references resolved.
	Read(r io.Reader, opts Options) (*network.Set, error)
}

// Options controls reading.
type Options struct {
	// Sheet selects a workbook sheet by name. Ignored by non-workbook sources.
	Sheet string
	// PickSheet is consulted when a workbook has several sheets and none of
	// the default names. It returns the chosen sheet name.
	PickSheet func(sheets []string) (string, error)
	// Logger receives progress and warnings. Nil discards output.
	Logger *log.Logger
}

func (o *Options) logger() *log.Logger {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.Logger
}

var registry = []Source{XLSX{}, CSV{}, YAML{}, JSON{}}

// All returns the registered sources.
func All() []Source {
	return append([]Source(nil), registry...)
}

// Names returns the registered source names.
func Names() []string {
	names := make([]string, len(registry))
	for i, s := range registry {
		names[i] = s.Name()
	}
	return names
}

// Get returns the source with the given name.
func Get(name string) (Source, bool) {
	for _, s := range registry {
		if s.Name() == strings.ToLower(name) {
			return s, true
		}
	}
	return nil, false
}

// ForFile finds a source that supports the given file name.
func ForFile(filename string) (Source, error) {
	base := filepath.Base(filename)
	for _, s := range registry {
		if s.Supports(base) {
			return s, nil
		}
	}
	return nil, errs.New(errs.ErrCodeUnsupportedSource,
		"no source for %q (supported: %s)", base, strings.Join(Names(), ", "))
}

// Read decodes r with the named source.
func Read(name string, r io.Reader, opts Options) (*network.Set, error) {
	s, ok := Get(name)
	if !ok {
		return nil, errs.New(errs.ErrCodeUnsupportedSource,
			"unknown source %q (supported: %s)", name, strings.Join(Names(), ", "))
	}
	return s.Read(r, opts)
}

// Load opens path, picks a source by its name and reads it.
func Load(path string, opts Options) (*network.Set, error) {
	s, err := ForFile(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New(errs.ErrCodeFileNotFound, "input file not found: %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	opts.logger().Debug("loading input", "path", path, "source", s.Name())
	return s.Read(f, opts)
}

// finish applies the checks shared by every source.
func finish(set *network.Set, opts Options) (*network.Set, error) {
	logger := opts.logger()
	if set.Len() == 0 {
		return nil, errs.New(errs.ErrCodeNoData,
			"no nodes found: check that IDs are present and the header row names the ID column")
	}
	rewrites, err := set.ResolveReferences()
	for _, rw := range rewrites {
		logger.Warn("resolved parent reference", "node", rw.Child, "written", rw.From, "resolved", rw.To)
	}
	if err != nil {
		return nil, err
	}
	logger.Info("loaded nodes", "nodes", set.Len(), "edges", set.EdgeCount())
	return set, nil
}

// located prefixes a set error with its position in the input, keeping the
// error code.
func located(err error, format string, args ...any) error {
	return errs.New(errs.GetCode(err), "%s: %s", fmt.Sprintf(format, args...), errs.UserMessage(err))
}

var digitRun = regexp.MustCompile(`\d+`)

// parseVLAN extracts the first run of digits, so "VLAN10", "10" and
// "10 (mgmt)" all yield 10. Blank or digit-free values mean no VLAN.
func parseVLAN(s string) *int {
	m := digitRun.FindString(s)
	if m == "" {
		return nil
	}
	tag, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &tag
}

// splitParents splits on any of the separators, trimming and dropping
// empty entries.
func splitParents(s, seps string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(seps, r)
	})
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
