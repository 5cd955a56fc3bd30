// Package network defines the equipment inventory that netdraw turns into a
// diagram.
//
// # Overview
//
// A [Node] is one piece of network equipment (router, switch, ONU, access
// point, ...) as it appears in a row of the input table. Nodes reference
// their upstream equipment through an ordered list of parent IDs: the first
// entry is the primary parent that decides tree placement, every entry
// produces a cable in the rendered diagram.
//
// A [Set] keeps nodes in source order and indexes them by ID. Source order
// is significant: it controls shape and edge emission order and the order of
// the annotation box, so repositories must add nodes in the order their rows
// appear.
//
// # Classification
//
// Each node carries a [Kind] computed once when it is added to a Set. A node
// is [KindONU] when its trimmed ID or name equals "ONU" ignoring case; ONU
// nodes are pulled to the front of the root list and drawn with a distinct
// style. No other per-type classification exists.
//
// # Reference Resolution
//
// Parent references typed by hand frequently differ from the canonical ID in
// separators or case ("UTM2" for "UTM_2"). [Set.ResolveReferences] rewrites
// such references to the matching ID and reports every rewrite, or fails with
// an UNDEFINED_PARENT error when nothing matches.
package network
