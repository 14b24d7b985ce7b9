// Package cli implements the fcblocks command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fcblocks/pkg/buildinfo"
	"github.com/matzehuels/fcblocks/pkg/httputil"
	"github.com/matzehuels/fcblocks/pkg/pipeline"
	"github.com/matzehuels/fcblocks/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "fcblocks"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
//
// Out receives the produced artifact and nothing else. Logs and status lines
// go to Err, so the output of "fcblocks convert" can be piped straight into
// a C file.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer
	Err    io.Writer

	// configPath overrides the default config file location (--config).
	configPath string
}

// New creates a new CLI instance writing artifacts to out and logs to errw.
func New(out, errw io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(errw, level),
		Out:    out,
		Err:    errw,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "fcblocks converts Fantastic Contraption designs into fcsim block arrays",
		Long: `fcblocks retrieves Fantastic Contraption levels and player designs and
converts their blocks into the C array literal consumed by the fcsim engine.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)
	root.SetErr(c.Err)
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+defaultConfigHint()+")")

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newClient creates a level service client from the configuration.
func (c *CLI) newClient(cfg Config, noCache bool) *source.Client {
	return source.NewClient(source.Options{
		URL:      cfg.BaseURL,
		Cache:    c.newCache(cfg, noCache),
		Timeout:  cfg.Timeout.Duration,
		Attempts: cfg.Retries + 1,
		Delay:    cfg.RetryDelay.Duration,
		Logger:   c.Logger,
	})
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cfg Config, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.newClient(cfg, noCache), c.Logger)
}

// newCache opens the document cache. A cache that cannot be opened only
// costs a refetch, so failures are logged and caching is disabled.
func (c *CLI) newCache(cfg Config, noCache bool) *httputil.Cache {
	if noCache {
		return nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "error", err)
		return nil
	}
	cache, err := httputil.NewCache(dir, cfg.CacheTTL.Duration)
	if err != nil {
		c.Logger.Debug("cache disabled", "error", err)
		return nil
	}
	return cache
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/fcblocks/).
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

// configDir returns the config directory using XDG standard (~/.config/fcblocks/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

func defaultConfigHint() string {
	return "$XDG_CONFIG_HOME/" + appName + "/" + configFileName
}
