// Package patchbay draws the channel wiring between cards as a Graphviz graph.
//
// Each card becomes a node labelled with its title. An edge runs from card A
// to card B for every channel name that appears in A's out list and B's in
// list; the edge is labelled with the channel. A card may feed itself.
//
// [ToDOT] produces deterministic DOT source: nodes in canonical key order,
// edges sorted by source, target and channel. [RenderSVG] lays it out with the
// embedded Graphviz from goccy/go-graphviz.
package patchbay
