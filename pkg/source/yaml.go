package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/network"
)

// document is the yaml and json input shape.
type document struct {
	Nodes []network.Node `json:"nodes" yaml:"nodes"`
}

// YAML reads a document with a top-level "nodes" list:
//
//	nodes:
//	  - id: ONU
//	  - id: RT1
//	    name: router
//	    vlan: 10
//	    parents: [ONU]
type YAML struct{}

func (YAML) Name() string { return "yaml" }

func (YAML) Supports(filename string) bool { return hasExt(filename, ".yaml", ".yml") }

func (YAML) Read(r io.Reader, opts Options) (*network.Set, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode yaml")
	}
	return fromNodes(doc.Nodes, opts)
}

// JSON reads {"nodes": [...]} or a bare list of nodes, the form produced by
// marshaling a [network.Set].
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Supports(filename string) bool { return hasExt(filename, ".json") }

func (JSON) Read(r io.Reader, opts Options) (*network.Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read json")
	}
	var doc document
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
	case trimmed[0] == '[':
		err = json.Unmarshal(trimmed, &doc.Nodes)
	default:
		err = json.Unmarshal(trimmed, &doc)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode json")
	}
	return fromNodes(doc.Nodes, opts)
}

func fromNodes(nodes []network.Node, opts Options) (*network.Set, error) {
	set := network.NewSet()
	for i, n := range nodes {
		if n.SourceOrder == 0 {
			n.SourceOrder = i + 1
		}
		if n.Name == "" {
			n.Name = n.ID
		}
		if err := set.Add(n); err != nil {
			return nil, located(err, "node %d", i+1)
		}
	}
	return finish(set, opts)
}
