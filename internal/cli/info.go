package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/erdiagram/pkg/model"
	"github.com/matzehuels/erdiagram/pkg/transform"
)

// infoCommand creates the "info" command that summarizes a diagram.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "info <file>",
		Short:             "Summarize a diagram",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagramFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, path, err := c.loadDiagram(args[0])
			if err != nil {
				return err
			}
			fmt.Print(renderInfo(d, path))
			return nil
		},
	}
}

// renderInfo formats the summary printed by the info command.
func renderInfo(d model.Diagram, path string) string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(d.Name))
	b.WriteString("\n")
	b.WriteString(keyValue("File", path))
	if d.Documentation != "" {
		b.WriteString(keyValue("Notes", d.Documentation))
	}
	b.WriteString(diagramStats(d))
	b.WriteString("\n")

	if len(d.Entities) > 0 {
		rows := make([][]string, len(d.Entities))
		for i, e := range d.Entities {
			rows[i] = []string{e.Name, attributeSummary(e.Attributes), yesNo(e.IsWeak), e.ID}
		}
		b.WriteString(infoTable([]string{"Entity", "Attributes", "Weak", "ID"}, rows))
		b.WriteString("\n")
	}

	if len(d.Relationships) > 0 {
		rows := make([][]string, len(d.Relationships))
		for i, r := range d.Relationships {
			rows[i] = []string{r.Name, connectionSummary(d, r), attributeSummary(r.Attributes), yesNo(transform.Eligible(d, r.ID)), r.ID}
		}
		b.WriteString(infoTable([]string{"Relationship", "Connections", "Attributes", "Convertible", "ID"}, rows))
		b.WriteString("\n")
	}
	return b.String()
}

func infoTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case col == len(headers)-1:
				return StyleDim
			default:
				return lipgloss.NewStyle()
			}
		}).
		Render()
}

func attributeSummary(attrs []model.Attribute) string {
	if len(attrs) == 0 {
		return "—"
	}
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.Name
		switch {
		case a.IsPrimaryKey:
			names[i] += "*"
		case a.Type == model.Multivalued:
			names[i] += "[]"
		case a.Type == model.Derived:
			names[i] = "/" + names[i]
		case a.Type == model.Composite:
			names[i] += "(" + strconv.Itoa(len(a.Components)) + ")"
		}
	}
	return strings.Join(names, ", ")
}

func connectionSummary(d model.Diagram, r model.Relationship) string {
	if len(r.Connections) == 0 {
		return "—"
	}
	parts := make([]string, len(r.Connections))
	for i, conn := range r.Connections {
		name := conn.EntityID
		if e, ok := d.Entity(conn.EntityID); ok {
			name = e.Name
		}
		parts[i] = name + " " + conn.Cardinality.Label()
	}
	return strings.Join(parts, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
