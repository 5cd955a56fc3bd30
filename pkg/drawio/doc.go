// Package drawio serializes a laid-out network into a draw.io (mxGraph XML)
// document.
//
// # Document Structure
//
// A document produced by [Build] has a single diagram page whose root holds,
// in order:
//
//  1. the two structural cells "0" and "1" (every other cell has parent "1")
//  2. one frame per VLAN tag, ascending by tag
//  3. one shape per node, in source order
//  4. one edge per parent reference, in source order of the child and then
//     parent order
//  5. at most one annotation box listing node notes
//
// The XML schema is modelled with encoding/xml structs ([File], [Diagram],
// [GraphModel], [Cell], [Geometry]) so documents can be read back with
// [Decode] and inspected cell by cell.
//
// # Identifiers
//
// Raw node IDs are free text. [SafeIDs] maps them to XML-safe cell IDs with
// an "n_" prefix and a numeric suffix on collision; the mapping is
// deterministic for a given ID order.
//
// # Labels
//
// Cells use html=1 styles, so values are HTML fragments: node fields are
// HTML-escaped and joined with <br>. The XML encoder escapes the fragment
// once more when writing the attribute.
package drawio
