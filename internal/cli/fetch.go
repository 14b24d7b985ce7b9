package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fcblocks/pkg/errors"
	"github.com/matzehuels/fcblocks/pkg/source"
)

// fetchCommand creates the fetch command, which prints the raw XML the
// level service returns.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		in     inputFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the raw retrieveLevel XML for a level or design",
		Example: `  fcblocks fetch --design 12345678 -o design.xml
  fcblocks fetch --level 1024 | fcblocks convert -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := in.resolve(cmd, args)
			if err != nil {
				return err
			}
			if err := errors.ValidateID(opts.ID); err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			data, cached, err := c.newClient(cfg, in.noCache).Fetch(cmd.Context(), opts.ID, opts.Mode, opts.Refresh)
			if err != nil {
				return err
			}
			if err := c.writeArtifact(output, data); err != nil {
				return err
			}
			prog.done("Fetched " + describe(opts.Mode, opts.ID))
			if cached {
				printDetail(c.Err, "served from cache (use --refresh to refetch)")
			}
			return nil
		},
	}

	in.register(cmd, false)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

func describe(mode source.Mode, id int) string {
	return string(mode) + " " + strconv.Itoa(id)
}
