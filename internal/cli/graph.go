package cli

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fcblocks/pkg/errors"
	"github.com/matzehuels/fcblocks/pkg/pipeline"
)

var graphFormats = []string{pipeline.FormatDOT, pipeline.FormatSVG}

// graphCommand creates the graph command, which draws the joint
// connectivity of a level or design.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		in       inputFlags
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph [-]",
		Short: "Render the joint graph of a level or design as DOT or SVG",
		Example: `  fcblocks graph --design 12345678 > joints.dot
  fcblocks graph --file saved.xml --format svg -o joints.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(graphFormats, format) {
				return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: dot, svg)", format)
			}
			opts, err := in.resolve(cmd, args)
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts.Format = format
			opts.Detailed = detailed
			opts.QuietJoints = !cfg.WarnExtraJoints

			res, err := c.newRunner(cfg, in.noCache).Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if err := c.writeArtifact(output, res.Output); err != nil {
				return err
			}
			printSuccess(c.Err, "Rendered %s as %s", plural(res.Stats.BlockCount, "block"), format)
			return nil
		},
	}

	in.register(cmd, true)
	cmd.Flags().StringVar(&format, "format", pipeline.FormatDOT, "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "add position and size to node labels")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(graphFormats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
