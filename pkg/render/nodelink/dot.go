package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/erdiagram/pkg/fonts"
	"github.com/matzehuels/erdiagram/pkg/model"
	"github.com/matzehuels/erdiagram/pkg/observability"
)

// Options configures Chen diagram generation.
type Options struct {
	// Detailed adds documentation to entity and relationship tooltips and
	// multiplicities to multivalued attribute labels.
	Detailed bool
	// Notes includes free-text notes as note-shaped nodes.
	Notes bool
}

// Node ID prefixes keep entities, relationships and attributes apart when
// their ids collide.
func entityNode(id string) string       { return "e:" + id }
func relationshipNode(id string) string { return "r:" + id }
func attributeNode(owner, id string) string {
	return "a:" + owner + ":" + id
}

// ToDOT converts a diagram to an undirected Graphviz graph in Chen
// notation. The result can be rendered with [RenderSVG].
//
// Connections to missing entities are skipped.
func ToDOT(d model.Diagram, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  label=%q;\n", d.Name)
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	fmt.Fprintf(&buf, "  node [fontname=%q, fontsize=14, style=filled, fillcolor=white];\n", fonts.FallbackFontFamily)
	fmt.Fprintf(&buf, "  edge [fontname=%q, fontsize=11];\n", fonts.FallbackFontFamily)
	buf.WriteString("\n")

	entities := make(map[string]bool, len(d.Entities))
	for _, e := range d.Entities {
		entities[e.ID] = true
		attrs := []string{"shape=box", fmt.Sprintf("label=%q", e.Name), "fillcolor=\"#e3f2fd\""}
		if e.IsWeak {
			attrs = append(attrs, "peripheries=2")
		}
		if opts.Detailed && e.Documentation != "" {
			attrs = append(attrs, fmt.Sprintf("tooltip=%q", e.Documentation))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", entityNode(e.ID), strings.Join(attrs, ", "))
		writeAttributes(&buf, entityNode(e.ID), e.ID, e.Attributes, opts)
	}

	for _, r := range d.Relationships {
		attrs := []string{"shape=diamond", fmt.Sprintf("label=%q", r.Name), "fillcolor=\"#fce4ec\""}
		if opts.Detailed && r.Documentation != "" {
			attrs = append(attrs, fmt.Sprintf("tooltip=%q", r.Documentation))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", relationshipNode(r.ID), strings.Join(attrs, ", "))
		writeAttributes(&buf, relationshipNode(r.ID), r.ID, r.Attributes, opts)
	}

	if opts.Notes {
		for _, n := range d.Notes {
			fmt.Fprintf(&buf, "  %q [shape=note, label=%q, fillcolor=\"#fff9c4\"];\n", "n:"+n.ID, n.Text)
		}
	}

	buf.WriteString("\n")
	for _, r := range d.Relationships {
		for _, c := range r.Connections {
			if !entities[c.EntityID] {
				continue
			}
			fmt.Fprintf(&buf, "  %q -- %q [label=%q];\n",
				relationshipNode(r.ID), entityNode(c.EntityID), c.Cardinality.Label())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeAttributes(buf *bytes.Buffer, ownerNode, ownerID string, attrs []model.Attribute, opts Options) {
	for _, a := range attrs {
		node := attributeNode(ownerID, a.ID)
		fmt.Fprintf(buf, "  %q [%s];\n", node, strings.Join(fmtAttribute(a, opts), ", "))
		fmt.Fprintf(buf, "  %q -- %q;\n", ownerNode, node)
		if a.Type != model.Composite {
			continue
		}
		for _, c := range a.Components {
			comp := attributeNode(ownerID, a.ID+":"+c.ID)
			fmt.Fprintf(buf, "  %q [shape=ellipse, fontsize=11, label=%q];\n", comp, c.Name)
			fmt.Fprintf(buf, "  %q -- %q;\n", node, comp)
		}
	}
}

func fmtAttribute(a model.Attribute, opts Options) []string {
	name := a.Name
	if opts.Detailed && a.Type == model.Multivalued && a.Multiplicity != "" {
		name += " [" + a.Multiplicity + "]"
	}

	attrs := []string{"shape=ellipse"}
	if a.IsPrimaryKey || a.Type == model.Key {
		attrs = append(attrs, "label=<<u>"+html.EscapeString(name)+"</u>>")
	} else {
		attrs = append(attrs, fmt.Sprintf("label=%q", name))
	}
	switch a.Type {
	case model.Multivalued:
		attrs = append(attrs, "peripheries=2")
	case model.Derived:
		attrs = append(attrs, "style=\"filled,dashed\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	start := time.Now()
	observability.Render().OnRenderStart(ctx, "svg", strings.Count(dot, ";\n"))

	svg, err := renderSVG(ctx, dot)
	observability.Render().OnRenderComplete(ctx, "svg", len(svg), time.Since(start), err)
	return svg, err
}

func renderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
