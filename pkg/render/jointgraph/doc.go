// Package jointgraph draws the joint connections of a converted contraption.
//
// # Usage
//
// Convert blocks to DOT, then render to SVG:
//
//	dot := jointgraph.ToDOT(bs, jointgraph.Options{})
//	svg, err := jointgraph.RenderSVG(dot)
//
// Each block becomes a node labeled with its engine type and position in the
// document. Joint targets are matched against block id attributes; a target
// with no matching block is drawn as a dashed placeholder, since the
// converter itself never checks joint consistency.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package jointgraph
