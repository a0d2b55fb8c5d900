// Package cli implements the erdiagram command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/erdiagram/pkg/buildinfo"
	"github.com/matzehuels/erdiagram/pkg/cache"
	"github.com/matzehuels/erdiagram/pkg/config"
	"github.com/matzehuels/erdiagram/pkg/editor"
	pkgio "github.com/matzehuels/erdiagram/pkg/io"
	"github.com/matzehuels/erdiagram/pkg/model"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and default
// settings. The config file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "erdiagram edits and exports entity-relationship diagrams",
		Long:         `erdiagram creates, edits and exports ER diagrams in Chen notation. Diagrams are JSON documents that can be rendered to PNG, SVG or Graphviz DOT, previewed over HTTP and shared through a file, Redis or MongoDB store.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			level := cfg.Level()
			if c.verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/erdiagram/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.newCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// Execute runs the CLI with ctx.
func (c *CLI) Execute(ctx context.Context) error {
	return c.RootCommand().ExecuteContext(ctx)
}

// =============================================================================
// Shared Helpers
// =============================================================================

// newEditor returns an editor configured from the settings.
func (c *CLI) newEditor() *editor.Editor {
	return editor.New(
		editor.WithLogger(c.Logger.WithPrefix("editor")),
		editor.WithHistorySize(c.Config.HistorySize),
		editor.WithDefaultNames(c.Config.DefaultEntityName, c.Config.DefaultRelationshipName, c.Config.DefaultDiagramName),
	)
}

// loadDiagram reads the diagram file name, resolved against the save
// directory.
func (c *CLI) loadDiagram(name string) (model.Diagram, string, error) {
	path := c.Config.ResolvePath(name)
	d, err := pkgio.ImportJSON(path)
	if err != nil {
		return model.Diagram{}, path, err
	}
	c.Logger.Debug("loaded diagram", "path", path, "entities", len(d.Entities), "relationships", len(d.Relationships))
	return d, path, nil
}

// newCache opens the rendered-artifact cache: Redis when cache.url is
// set, otherwise the cache directory.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.Config.Cache.URL != "" {
		return cache.OpenRedisCache(ctx, c.Config.Cache.URL)
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/erdiagram/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// replaceExt returns path with its extension replaced by ext.
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}

// keyFromPath derives a store key from a file name.
func keyFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
