package automata

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
)

const dotHeader = `digraph automaton {
  rankdir=LR;
  node [fontname="courier new" shape=circle];
  edge [fontname="courier new"];
  start [shape=point];
`

// Dot renders the NFA in Graphviz dot form. Accepting states are drawn
// as double circles, epsilon edges are labeled with ε.
func (n *NFA) Dot() string {
	var g strings.Builder
	g.WriteString(dotHeader)
	g.WriteString(fmt.Sprintf("  start -> s%d;\n", n.Start))
	for id, st := range n.states {
		if StateID(id) == n.Accept {
			g.WriteString(fmt.Sprintf("  s%d [shape=doublecircle];\n", id))
		}
		for label, dsts := range st.next {
			for _, dst := range dsts {
				g.WriteString(fmt.Sprintf("  s%d -> s%d [label=\"%s\"];\n", id, dst, edgeLabel(label)))
			}
		}
	}
	g.WriteString("}\n")
	return g.String()
}

// Dot renders the DFA in Graphviz dot form.
func (d *DFA) Dot() string {
	var g strings.Builder
	g.WriteString(dotHeader)
	g.WriteString(fmt.Sprintf("  start -> s%d;\n", d.Start))
	for id, st := range d.states {
		if st.accept {
			g.WriteString(fmt.Sprintf("  s%d [shape=doublecircle];\n", id))
		}
		for label, dst := range st.next {
			g.WriteString(fmt.Sprintf("  s%d -> s%d [label=\"%s\"];\n", id, dst, edgeLabel(label)))
		}
	}
	g.WriteString("}\n")
	return g.String()
}

func edgeLabel(r rune) string {
	if r == Epsilon {
		return "ε"
	}
	q := strconv.QuoteRune(r)
	label := q[1 : len(q)-1]
	return strings.ReplaceAll(label, `"`, `\"`)
}

// RenderDot rasterizes dot source into the requested format ("dot",
// "png" or "svg"). The dot format is returned unchanged.
func RenderDot(ctx context.Context, dot string, format string) ([]byte, error) {
	var target graphviz.Format
	switch format {
	case "", "dot":
		return []byte(dot), nil
	case "png":
		target = graphviz.PNG
	case "svg":
		target = graphviz.SVG
	default:
		return nil, fmt.Errorf("unsupported render format %q", format)
	}

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parsing dot source: %w", err)
	}
	g, err := graphviz.New(ctx)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := g.Render(ctx, graph, target, &buf); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
