// Package pkg holds the libraries behind the atlas command.
//
// # Overview
//
// Atlas places patchboard components on a shared canvas. The packages split
// into three layers:
//
//  1. [coord] - the coordinate machine that converts between World and Canvas
//  2. [world], [card], [registry], [journal] - entities, their cards and the
//     runtime log
//  3. [render], [render/patchbay] - canvas reconciliation, SVG and PNG output,
//     and the Graphviz channel diagram
//
// [project] ties them to a directory on disk, with settings from [config] and
// a layout [cache].
//
// # Data flow
//
//	Component ID Card files
//	         ↓
//	    [registry] (validate, cull, bind to entities in [world])
//	         ↓
//	    [render] Rebuild (declare shapes in World coordinates)
//	         ↓
//	    [render] Flush through [coord] (project to Canvas, reconcile items)
//	         ↓
//	    SVG / PNG
//
// # Quick Start
//
//	w := world.New()
//	reg := registry.New(w, nil, nil)
//	res, err := reg.IngestFolder("cards")
//
//	m := coord.NewMachine()
//	sc := render.NewScene(800, 600)
//	r := render.NewRenderer(w, m, sc)
//	_, err = r.Place(res.IDs[0], 400, 300)
//	err = render.WriteSVG(os.Stdout, sc)
//
// [coord]: https://pkg.go.dev/github.com/patchboard/atlas/pkg/coord
// [world]: https://pkg.go.dev/github.com/patchboard/atlas/pkg/world
// [card]: https://pkg.go.dev/github.com/patchboard/atlas/pkg/card
// [registry]: https://pkg.go.dev/github.com/patchboard/atlas/pkg/registry
// [journal]: https://pkg.go.dev/github.com/patchboard/atlas/pkg/journal
// [render]: https://pkg.go.dev/github.com/patchboard/atlas/pkg/render
// [render/patchbay]: https://pkg.go.dev/github.com/patchboard/atlas/pkg/render/patchbay
// [project]: https://pkg.go.dev/github.com/patchboard/atlas/pkg/project
// [config]: https://pkg.go.dev/github.com/patchboard/atlas/pkg/config
// [cache]: https://pkg.go.dev/github.com/patchboard/atlas/pkg/cache
package pkg
