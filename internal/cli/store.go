package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/erdiagram/pkg/errors"
	pkgio "github.com/matzehuels/erdiagram/pkg/io"
	"github.com/matzehuels/erdiagram/pkg/store"
)

// storeCommand creates the "store" command group that moves diagrams
// between files and a shared store.
func (c *CLI) storeCommand() *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Share diagrams through a file, Redis or MongoDB store",
		Long: `Share diagrams through a store.

The store location is taken from --store, then the "store" config key, then
the save directory. Supported locations:
  /path/to/dir or file:///path/to/dir
  redis://host:6379/0
  mongodb://host:27017/erdiagram`,
	}

	cmd.PersistentFlags().StringVar(&location, "store", "", "store location (default from config)")
	open := func(ctx context.Context) (store.Store, error) {
		loc := location
		if loc == "" {
			loc = c.Config.StoreLocation()
		}
		c.Logger.Debug("opening store", "location", loc)
		var st store.Store
		err := withIndicator(ctx, "Opening diagram store...", func() error {
			var err error
			st, err = store.Open(ctx, loc)
			return err
		})
		return st, err
	}

	cmd.AddCommand(c.storeListCommand(open))
	cmd.AddCommand(c.storePushCommand(open))
	cmd.AddCommand(c.storePullCommand(open))
	cmd.AddCommand(c.storeDeleteCommand(open))

	return cmd
}

type storeOpener func(ctx context.Context) (store.Store, error)

func (c *CLI) storeListCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored diagrams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			keys, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				printInfo("Store is empty")
				return nil
			}
			for _, k := range keys {
				fmt.Println(k)
			}
			return nil
		},
	}
}

func (c *CLI) storePushCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "push <file> [key]",
		Short: "Save a diagram file to the store",
		Long:  "Save a diagram file to the store. The key defaults to the file name without its extension.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, path, err := c.loadDiagram(args[0])
			if err != nil {
				return err
			}
			key := keyFromPath(path)
			if len(args) == 2 {
				key = args[1]
			}
			if err := errors.ValidateStoreKey(key); err != nil {
				return err
			}

			s, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.Save(cmd.Context(), key, d); err != nil {
				return err
			}
			printSuccess("Pushed %s as %s", StyleValue.Render(path), StyleHighlight.Render(key))
			return nil
		},
	}
}

func (c *CLI) storePullCommand(open storeOpener) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "pull <key> [file]",
		Short: "Write a stored diagram to a file",
		Long:  "Write a stored diagram to a file. The file defaults to <key>.json in the save directory.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			name := key + ".json"
			if len(args) == 2 {
				name = args[1]
			}
			path := c.Config.ResolvePath(name)
			if !force {
				if _, err := os.Stat(path); err == nil {
					return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
				}
			}

			s, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			d, err := s.Load(cmd.Context(), key)
			if err != nil {
				return err
			}
			if err := pkgio.ExportJSON(d, path); err != nil {
				return err
			}
			printSuccess("Pulled %s", StyleHighlight.Render(key))
			printFile(path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) storeDeleteCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Remove a diagram from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", StyleHighlight.Render(args[0]))
			return nil
		},
	}
}
