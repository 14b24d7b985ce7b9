package jointgraph

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/fcblocks/pkg/blocks"
	"github.com/matzehuels/fcblocks/pkg/errors"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds position and size to node labels.
	Detailed bool
}

// nodeName is the DOT identifier of the i-th emitted block.
func nodeName(i int) string { return fmt.Sprintf("b%d", i) }

// ToDOT converts blocks to an undirected Graphviz graph with one edge per
// resolved joint slot.
func ToDOT(bs []blocks.Block, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	byID := make(map[string]string)
	for i, b := range bs {
		if b.ID != "" {
			if _, dup := byID[b.ID]; !dup {
				byID[b.ID] = nodeName(i)
			}
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeName(i), strings.Join(fmtAttrs(b, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	missing := make(map[string]bool)
	for i, b := range bs {
		for slot := range blocks.MaxJoints {
			if !b.HasJoint(slot) {
				continue
			}
			target, ok := byID[b.Joints[slot]]
			if !ok {
				target = "missing_" + b.Joints[slot]
				if !missing[target] {
					missing[target] = true
					fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,dashed\"];\n", target, "? "+b.Joints[slot])
				}
				target = fmt.Sprintf("%q", target)
			}
			fmt.Fprintf(&buf, "  %s -- %s;\n", nodeName(i), target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(b blocks.Block, detailed bool) string {
	label := fmt.Sprintf("%s\n%s #%d", b.Type, b.Origin, b.Index)
	if b.ID != "" {
		label += " id=" + b.ID
	}
	if detailed {
		label += fmt.Sprintf("\n(%s, %s) %sx%s", b.X, b.Y, b.Width, b.Height)
	}
	return label
}

func fmtAttrs(b blocks.Block, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(b, detailed))}
	switch {
	case b.Type.IsGoal():
		attrs = append(attrs, "fillcolor=gold")
	case b.Origin == blocks.OriginPlayer:
		attrs = append(attrs, "fillcolor=lightblue")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render SVG")
	}
	return buf.Bytes(), nil
}
