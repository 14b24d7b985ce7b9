// Package render groups the visual outputs of fcblocks.
//
// The C array is the primary artifact and lives in [blocks]. The packages
// under render draw the same block list for humans:
//
//   - [jointgraph]: the joint connectivity between blocks as Graphviz DOT,
//     optionally rendered to SVG
//
// Usage:
//
//	dot := jointgraph.ToDOT(bs, jointgraph.Options{Detailed: true})
//	svg, err := jointgraph.RenderSVG(dot)
//
// [blocks]: github.com/matzehuels/fcblocks/pkg/blocks
// [jointgraph]: github.com/matzehuels/fcblocks/pkg/render/jointgraph
package render
