package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fcblocks/pkg/errors"
	"github.com/matzehuels/fcblocks/pkg/pipeline"
	"github.com/matzehuels/fcblocks/pkg/source"
)

// stdinArg selects standard input as the document source.
const stdinArg = "-"

// inputFlags selects where a document comes from. Exactly one selector
// must be given.
type inputFlags struct {
	level   int
	design  int
	file    string
	refresh bool
	noCache bool
}

// register adds the selector flags to cmd. Local files are only offered
// when allowLocal is set.
func (f *inputFlags) register(cmd *cobra.Command, allowLocal bool) {
	flags := cmd.Flags()
	flags.IntVar(&f.level, "level", 0, "retrieve the level with this id")
	flags.IntVar(&f.design, "design", 0, "retrieve the player design with this id")
	if allowLocal {
		flags.StringVarP(&f.file, "file", "f", "", "read a saved retrieveLevel document ('-' for stdin)")
	}
	flags.BoolVar(&f.refresh, "refresh", false, "bypass the cache and refetch the document")
	flags.BoolVar(&f.noCache, "no-cache", false, "disable the document cache")
}

// resolve turns the selector flags and positional args into pipeline
// options with either ID and Mode or Document set.
func (f *inputFlags) resolve(cmd *cobra.Command, args []string) (pipeline.Options, error) {
	var opts pipeline.Options

	stdin := len(args) == 1 && args[0] == stdinArg
	if len(args) > 1 || (len(args) == 1 && !stdin) {
		return opts, errors.New(errors.ErrCodeInvalidInput, "unexpected argument %q (only %q is accepted)", args[0], stdinArg)
	}

	flags := cmd.Flags()
	selected := 0
	for _, name := range []string{"level", "design", "file"} {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			selected++
		}
	}
	if stdin {
		selected++
	}
	if selected != 1 {
		return opts, errors.New(errors.ErrCodeInvalidInput, "exactly one of %s is required", selectorList(flags.Lookup("file") != nil))
	}

	opts.Refresh = f.refresh
	switch {
	case flags.Changed("level"):
		opts.ID, opts.Mode = f.level, source.ModeLevel
	case flags.Changed("design"):
		opts.ID, opts.Mode = f.design, source.ModeDesign
	case stdin || f.file == stdinArg:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		opts.Document = data
	default:
		data, err := os.ReadFile(f.file)
		if os.IsNotExist(err) {
			return opts, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", f.file)
		}
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", f.file)
		}
		opts.Document = data
	}
	if opts.Document != nil && len(opts.Document) == 0 {
		// An empty slice would otherwise look like "no local document".
		return opts, errors.New(errors.ErrCodeInvalidDocument, "document is empty")
	}
	return opts, nil
}

func selectorList(allowLocal bool) string {
	if allowLocal {
		return "--level, --design, --file or " + stdinArg
	}
	return "--level or --design"
}

// writeArtifact writes data to path, or to the CLI's Out when path is
// empty. data is always complete by the time it gets here.
func (c *CLI) writeArtifact(path string, data []byte) error {
	if path == "" {
		_, err := c.Out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(c.Err, path)
	return nil
}
