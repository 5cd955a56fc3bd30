package source

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	errs "github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/network"
)

// csvColumns maps accepted header titles to field names.
var csvColumns = map[string]string{
	"id":      "id",
	"name":    "name",
	"ip":      "ip",
	"vlan":    "vlan",
	"note":    "note",
	"parents": "parents",
	"parent":  "parents",
}

// CSV reads comma separated node lists with a header row.
type CSV struct{}

func (CSV) Name() string { return "csv" }

func (CSV) Supports(filename string) bool { return hasExt(filename, ".csv") }

// Read decodes a CSV document. The header row is matched case-insensitively
// and in any order; only "id" is required. Parents inside a field are
// separated by "," or ";". SourceOrder is the 1-based line number.
func (CSV) Read(r io.Reader, opts Options) (*network.Set, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return finish(network.NewSet(), opts)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read csv header")
	}

	index := make(map[string]int)
	for i, title := range header {
		title = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(title, "\ufeff")))
		if field, ok := csvColumns[title]; ok {
			index[field] = i
		}
	}
	if _, ok := index["id"]; !ok {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "csv header has no id column")
	}
	field := func(rec []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	set := network.NewSet()
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read csv")
		}
		id := field(rec, "id")
		if id == "" {
			continue
		}
		if set.Has(id) {
			return nil, errs.New(errs.ErrCodeDuplicateID, "line %d: duplicate ID %q", line, id)
		}
		name := field(rec, "name")
		if name == "" {
			name = id
		}
		err = set.Add(network.Node{
			ID:          id,
			Name:        name,
			IP:          field(rec, "ip"),
			VLAN:        parseVLAN(field(rec, "vlan")),
			Note:        field(rec, "note"),
			Parents:     splitParents(field(rec, "parents"), ",;"),
			SourceOrder: line,
		})
		if err != nil {
			return nil, located(err, "line %d", line)
		}
	}
	return finish(set, opts)
}
