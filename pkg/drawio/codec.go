package drawio

import (
	"bytes"
	"encoding/xml"
	"io"

	errs "github.com/matzehuels/netdraw/pkg/errors"
)

// Marshal encodes f as an indented, UTF-8 XML document with declaration.
func Marshal(f *File) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes f to w. Write failures are returned as SERIALIZATION_IO with
// the underlying error attached.
func Encode(w io.Writer, f *File) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errs.Wrap(errs.ErrCodeSerializationIO, err, "write document header")
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(f); err != nil {
		return errs.Wrap(errs.ErrCodeSerializationIO, err, "encode document")
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return errs.Wrap(errs.ErrCodeSerializationIO, err, "write document")
	}
	return nil
}

// Decode parses a document written by Encode or by the draw.io editor when
// saved uncompressed.
func Decode(r io.Reader) (*File, error) {
	var f File
	if err := xml.NewDecoder(r).Decode(&f); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode draw.io document")
	}
	return &f, nil
}

// Cells returns the cells of the first page, or nil for an empty document.
func (f *File) Cells() []Cell {
	if f == nil || len(f.Diagrams) == 0 {
		return nil
	}
	return f.Diagrams[0].Model.Root.Cells
}

// Cell returns the cell with the given id from the first page.
func (f *File) Cell(id string) (Cell, bool) {
	for _, c := range f.Cells() {
		if c.ID == id {
			return c, true
		}
	}
	return Cell{}, false
}

// Edges returns the connector cells of the first page in document order.
func (f *File) Edges() []Cell {
	var out []Cell
	for _, c := range f.Cells() {
		if c.IsEdge() {
			out = append(out, c)
		}
	}
	return out
}
