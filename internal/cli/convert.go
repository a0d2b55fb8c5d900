package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/erdiagram/pkg/errors"
	pkgio "github.com/matzehuels/erdiagram/pkg/io"
	"github.com/matzehuels/erdiagram/pkg/model"
)

// convertCommand creates the "convert" command that replaces a
// many-to-many relationship with an associative entity.
func (c *CLI) convertCommand() *cobra.Command {
	var relationship, output string

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Replace a many-to-many relationship with an associative entity",
		Long: `Replace a binary many-to-many relationship with an associative entity.

The relationship becomes an entity of the same name, placed where the
relationship was and keeping its attributes. Two new relationships link it
to the former participants, each with cardinality (1,1) on the new entity's
side and the original cardinality on the participant's side.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagramFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, path, err := c.loadDiagram(args[0])
			if err != nil {
				return err
			}
			relID, err := findRelationship(d, relationship)
			if err != nil {
				return err
			}

			ed := c.newEditor()
			ed.LoadDiagram(d, path)
			if !ed.ConvertToAssociativeEntity(relID) {
				return errors.New(errors.ErrCodeInvalidInput,
					"relationship %q must connect exactly two entities with many cardinalities", relationship)
			}

			out := path
			if output != "" {
				out = c.Config.ResolvePath(output)
			}
			result := ed.Diagram()
			if err := pkgio.ExportJSON(result, out); err != nil {
				return err
			}
			ed.MarkAsSaved(out)

			entity := result.Entities[len(result.Entities)-1]
			printSuccess("Converted %s into an associative entity", StyleHighlight.Render(entity.Name))
			printDetail("%d entities, %d relationships", len(result.Entities), len(result.Relationships))
			printFile(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&relationship, "relationship", "r", "", "relationship id or name")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")
	_ = cmd.MarkFlagRequired("relationship")

	return cmd
}

// findRelationship resolves ref as a relationship id, then as a
// case-insensitive name.
func findRelationship(d model.Diagram, ref string) (string, error) {
	if _, ok := d.Relationship(ref); ok {
		return ref, nil
	}
	var matches []string
	for _, r := range d.Relationships {
		if strings.EqualFold(r.Name, ref) {
			matches = append(matches, r.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", errors.New(errors.ErrCodeRelationshipNotFound, "no relationship %q", ref)
	case 1:
		return matches[0], nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "%d relationships are named %q, use an id: %s",
			len(matches), ref, strings.Join(matches, ", "))
	}
}
