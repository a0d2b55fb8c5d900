package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/matzehuels/erdiagram/pkg/errors"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	format    string
	output    string // output path, "-" for stdout
	scale     float64
	padding   float64
	detailed  bool
	clipboard bool
	noCache   bool
}

// exportCommand creates the "export" command that renders a diagram.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Render a diagram to PNG, SVG, DOT or JSON",
		Long: `Render a diagram to PNG, SVG, Graphviz DOT or normalized JSON.

PNG output draws the diagram as arranged on the canvas. SVG output is laid
out by Graphviz in Chen notation. Rendered artifacts are cached until the
diagram changes.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagramFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			if !cmd.Flags().Changed("scale") {
				opts.scale = c.Config.Export.Scale
			}
			if err := validateScale(opts.scale); err != nil {
				return err
			}
			if !cmd.Flags().Changed("padding") {
				opts.padding = c.Config.Export.Padding
			}
			return c.runExport(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatPNG, "output format: png, svg, dot, json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, - for stdout (default: input name with the format's extension)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "PNG scale factor (default from config)")
	cmd.Flags().Float64Var(&opts.padding, "padding", 150, "PNG padding around the diagram (default from config)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include documentation and multiplicities (svg, dot)")
	cmd.Flags().BoolVar(&opts.clipboard, "clipboard", false, "copy text output (svg, dot, json) to the clipboard")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormat)

	return cmd
}

func (c *CLI) runExport(ctx context.Context, name string, opts exportOpts) error {
	logger := loggerFromContext(ctx)

	d, path, err := c.loadDiagram(name)
	if err != nil {
		return err
	}

	cch, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer cch.Close()
	ttl, _ := c.Config.CacheTTL()

	var (
		data   []byte
		cached bool
	)
	render := func() error {
		data, cached, err = newArtifacts(cch, ttl, logger).render(ctx, d, opts.format, renderOptions{
			scale:    opts.scale,
			padding:  opts.padding,
			detailed: opts.detailed,
		})
		return err
	}
	if opts.format == formatSVG {
		err = withIndicator(ctx, fmt.Sprintf("Laying out %s with Graphviz...", d.Name), render)
	} else {
		err = render()
	}
	if err != nil {
		return err
	}

	if opts.clipboard {
		if !isText(opts.format) {
			return errors.New(errors.ErrCodeUnsupported, "cannot copy %s output to the clipboard", opts.format)
		}
		if err := clipboard.WriteAll(string(data)); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "write clipboard")
		}
		printSuccess("Copied %s to the clipboard", opts.format)
		if opts.output == "" {
			return nil
		}
	}

	if opts.output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	out := opts.output
	if out == "" {
		out = replaceExt(path, opts.format)
	}
	if opts.format == formatJSON && out == path {
		return errors.New(errors.ErrCodeInvalidInput, "refusing to overwrite the input file; pass -o")
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", out)
	}

	printSuccess("Exported %s", StyleHighlight.Render(d.Name))
	printDiagramStats(d, cached)
	printFile(out)
	return nil
}
