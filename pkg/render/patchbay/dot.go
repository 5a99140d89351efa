package patchbay

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/goccy/go-graphviz"

	"github.com/patchboard/atlas/pkg/card"
)

// Edge is one patched channel between two cards, identified by canonical key.
type Edge struct {
	From, To string
	Channel  string
}

// Edges returns every out-to-in channel match among cards, sorted.
func Edges(cards []card.Card) []Edge {
	consumers := map[string][]string{}
	for _, c := range cards {
		for _, ch := range c.In() {
			consumers[ch] = append(consumers[ch], c.Key())
		}
	}

	var edges []Edge
	for _, c := range cards {
		for _, ch := range c.Out() {
			for _, to := range consumers[ch] {
				edges = append(edges, Edge{From: c.Key(), To: to, Channel: ch})
			}
		}
	}
	slices.SortFunc(edges, func(a, b Edge) int {
		return cmp.Or(cmp.Compare(a.From, b.From), cmp.Compare(a.To, b.To), cmp.Compare(a.Channel, b.Channel))
	})
	return slices.Compact(edges)
}

// ToDOT converts cards to Graphviz DOT.
func ToDOT(cards []card.Card) string {
	sorted := slices.Clone(cards)
	slices.SortFunc(sorted, func(a, b card.Card) int { return cmp.Compare(a.Key(), b.Key()) })

	var buf bytes.Buffer
	buf.WriteString("digraph patchbay {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=\"#223344\", color=\"#4488cc\", fontcolor=\"#ccddee\", fontname=\"Consolas\", fontsize=10];\n")
	buf.WriteString("  edge [fontsize=9];\n")
	buf.WriteString("\n")

	for _, c := range sorted {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", c.Key(), label(c))
	}

	buf.WriteString("\n")
	for _, e := range Edges(sorted) {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, e.Channel)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func label(c card.Card) string {
	if name := c.Name(); name != "" {
		return name
	}
	return c.Inbox
}

// RenderSVG lays out a DOT graph and returns SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
