package cli

import (
	"cmp"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/erdiagram/pkg/errors"
	pkgio "github.com/matzehuels/erdiagram/pkg/io"
	"github.com/matzehuels/erdiagram/pkg/model"
)

// newCommand creates the "new" command that writes an empty diagram.
func (c *CLI) newCommand() *cobra.Command {
	var (
		name  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "new <file>",
		Short: "Create an empty diagram file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.Config.ResolvePath(args[0])
			if !force {
				if _, err := os.Stat(path); err == nil {
					return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
				}
			}

			d := model.New(cmp.Or(name, c.Config.DefaultDiagramName))
			if err := pkgio.ExportJSON(d, path); err != nil {
				return err
			}
			printSuccess("Created %s", StyleHighlight.Render(d.Name))
			printFile(path)
			printNextStep("Edit it", "erdiagram edit "+args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "diagram name (default from config)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}
