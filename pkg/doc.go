// Package pkg provides the libraries behind fcblocks.
//
// # Overview
//
// fcblocks turns Fantastic Contraption levels and player designs into the
// block array consumed by the fcsim physics engine. The pkg directory is
// organized by stage:
//
//  1. [source] - retrieval from the level service (cached, retried)
//  2. [level] - decoding of the retrieveLevel XML document
//  3. [blocks] - classification and normalization into engine blocks
//  4. [export] and [render/jointgraph] - alternative outputs
//  5. [pipeline] - orchestration (load → parse → build → render)
//
// # Architecture
//
//	retrieveLevel.php / saved XML
//	         ↓
//	    [source] package (POST id, loadDesign)
//	         ↓
//	    [level] package (player and level blocks in document order)
//	         ↓
//	    [blocks] package (classify, resolve joints, emit)
//	         ↓
//	    C array / JSON / YAML / DOT / SVG
//
// # Quick Start
//
//	doc, err := level.Parse(r)
//	if err != nil {
//	    return err
//	}
//	out, err := blocks.Emit(doc.PlayerBlocks, doc.LevelBlocks, blocks.Options{})
//	if err != nil {
//	    return err // nothing was emitted
//	}
//	fmt.Print(out)
//
// # Supporting Packages
//
//   - [errors]: coded errors shared by every stage
//   - [httputil]: file cache and retry helpers used by [source]
//   - [observability]: hooks for fetch, conversion and HTTP events
//   - [buildinfo]: version information stamped at build time
//
// [source]: https://pkg.go.dev/github.com/matzehuels/fcblocks/pkg/source
// [level]: https://pkg.go.dev/github.com/matzehuels/fcblocks/pkg/level
// [blocks]: https://pkg.go.dev/github.com/matzehuels/fcblocks/pkg/blocks
// [export]: https://pkg.go.dev/github.com/matzehuels/fcblocks/pkg/export
// [render/jointgraph]: https://pkg.go.dev/github.com/matzehuels/fcblocks/pkg/render/jointgraph
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/fcblocks/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/fcblocks/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/fcblocks/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/fcblocks/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/fcblocks/pkg/buildinfo
package pkg
