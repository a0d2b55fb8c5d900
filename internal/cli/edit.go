package cli

import (
	"cmp"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/erdiagram/pkg/model"
)

// editCommand creates the "edit" command that opens the interactive
// editor.
func (c *CLI) editCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "edit <file>",
		Short: "Edit a diagram interactively",
		Long: `Edit a diagram in the terminal.

The file is created on the first save if it does not exist. Elements are
listed by kind; use the arrow keys to select one and the letter keys shown
at the bottom of the screen to change it. Use "erdiagram serve" in another
terminal to watch the rendered canvas.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagramFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			ed := c.newEditor()
			path := c.Config.ResolvePath(args[0])

			if _, err := os.Stat(path); err == nil {
				d, _, err := c.loadDiagram(args[0])
				if err != nil {
					return err
				}
				ed.LoadDiagram(d, path)
			} else {
				ed.LoadDiagram(model.New(cmp.Or(name, c.Config.DefaultDiagramName)), "")
				c.Logger.Debug("starting new diagram", "path", path)
			}

			m := newEditModel(ed, path)
			m.entityName = c.Config.DefaultEntityName
			m.relationshipName = c.Config.DefaultRelationshipName

			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(*editModel); ok {
				switch {
				case fm.ed.IsModified():
					printWarning("Discarded unsaved changes")
				case fm.saved:
					printSuccess("Saved %s", StyleHighlight.Render(fm.ed.Diagram().Name))
					printFile(path)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name for a new diagram (default from config)")
	return cmd
}
