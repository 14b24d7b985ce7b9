package cli

import (
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fcblocks/pkg/errors"
	"github.com/matzehuels/fcblocks/pkg/pipeline"
)

// convertFormats are the artifact formats offered by "convert".
var convertFormats = []string{pipeline.FormatC, pipeline.FormatJSON, pipeline.FormatYAML}

// convertCommand creates the convert command, the main entry point: it
// turns a level or design into the fcsim block array.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		in     inputFlags
		format string
		prefix string
		output string
	)

	cmd := &cobra.Command{
		Use:   "convert [-]",
		Short: "Convert a level or design into an fcsim block array",
		Long: `Convert a Fantastic Contraption level or player design into the C array
literal consumed by the fcsim engine.

Player blocks are emitted first, then level blocks, each in document order.
Nothing is written unless every block converts.`,
		Example: `  fcblocks convert --design 12345678 > design.h
  fcblocks convert --level 1024 --prefix FCSIM_
  fcblocks convert --file saved.xml --format json
  curl -s ... | fcblocks convert -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(convertFormats, format) {
				return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: c, json, yaml)", format)
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
			opts.Prefix = cfg.Prefix
			if cmd.Flags().Changed("prefix") {
				opts.Prefix = prefix
			}
			opts.QuietJoints = !cfg.WarnExtraJoints

			prog := newProgress(c.Logger)
			res, err := c.newRunner(cfg, in.noCache).Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if err := c.writeArtifact(output, res.Output); err != nil {
				return err
			}

			prog.done("Converted " + plural(res.Stats.BlockCount, "block"))
			printStats(c.Err, len(res.Document.PlayerBlocks), len(res.Document.LevelBlocks), res.Cached)
			if n := len(res.Warnings); n > 0 && !opts.QuietJoints {
				printWarning(c.Err, "%s had more than two joints; extras were dropped", plural(n, "block"))
			}
			return nil
		},
	}

	in.register(cmd, true)
	cmd.Flags().StringVar(&format, "format", pipeline.FormatC, "output format: c, json or yaml")
	cmd.Flags().StringVar(&prefix, "prefix", "", "prefix for type identifiers, e.g. FCSIM_ (overrides config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(convertFormats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
