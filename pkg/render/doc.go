// Package render turns placed entities into canvas shapes.
//
// # Overview
//
// Rendering runs in three layers:
//
//	World (entities + placements) -> Intent (declared elements) -> Surface (live items)
//
// [Rebuild] applies the [Rules] to every placed entity and produces an
// [Intent]: a map from [ElementKey] to an [Element] descriptor whose geometry is
// in World space. [Flush] reconciles that intent against a [Surface]: items
// whose tag is still declared are reshaped, new keys get new items, and items
// no longer declared are deleted. Each element's geometry passes through a
// [coord.Machine] on the way to device coordinates.
//
// [Renderer] ties the pieces together and also implements placement: a click
// in device coordinates goes through the machine's event register back into
// World space.
//
//	r := render.NewRenderer(w, coord.NewMachine(), render.NewScene(800, 600))
//	pos, err := r.Place(id, 412, 300)
//	err = r.Sync()
//
// # Output
//
// [Scene] is the in-memory surface. [WriteSVG] and [WritePNG] draw a scene to
// a file.
//
// # Tags
//
// Every item carries three tags: its element tag ("ek|entity|<id>|<part>"), its
// entity tag ("entity|<id>") and the kind tag "kind|component". Reconciliation
// only ever deletes items carrying the kind tag.
package render
