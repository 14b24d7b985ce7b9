package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fcblocks/pkg/errors"
	"github.com/matzehuels/fcblocks/pkg/source"
)

const (
	configFileName = "config.toml"

	// envBaseURL overrides base_url from the config file.
	envBaseURL = "FCBLOCKS_BASE_URL"
)

// Config holds the settings read from config.toml.
type Config struct {
	BaseURL         string   `toml:"base_url"`
	CacheTTL        duration `toml:"cache_ttl"`
	Timeout         duration `toml:"timeout"`
	Retries         int      `toml:"retries"`     // retries after the first attempt
	RetryDelay      duration `toml:"retry_delay"` // initial backoff, doubled per retry
	Prefix          string   `toml:"prefix"`
	WarnExtraJoints bool     `toml:"warn_extra_joints"`
}

// duration is a time.Duration written as a string ("24h", "10s") in TOML.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// defaultConfig returns the settings used when no config file exists.
func defaultConfig() Config {
	return Config{
		BaseURL:         source.DefaultURL,
		CacheTTL:        duration{24 * time.Hour},
		Timeout:         duration{10 * time.Second},
		Retries:         3,
		RetryDelay:      duration{time.Second},
		WarnExtraJoints: true,
	}
}

// validate rejects settings that would make every command fail later.
func (cfg Config) validate() error {
	if cfg.BaseURL == "" {
		return errors.New(errors.ErrCodeInvalidInput, "base_url must not be empty")
	}
	if cfg.CacheTTL.Duration < 0 || cfg.Timeout.Duration < 0 || cfg.RetryDelay.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "durations must not be negative")
	}
	if cfg.Retries < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "retries must not be negative, got %d", cfg.Retries)
	}
	return errors.ValidatePrefix(cfg.Prefix)
}

// configFile returns the config file path, honoring --config.
func (c *CLI) configFile() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// loadConfig layers the config file and the environment over the defaults.
// A missing file is not an error unless it was named with --config.
func (c *CLI) loadConfig() (Config, error) {
	cfg := defaultConfig()

	path, err := c.configFile()
	if err != nil {
		c.Logger.Debug("no config directory", "error", err)
	} else {
		md, err := toml.DecodeFile(path, &cfg)
		switch {
		case err == nil:
			c.Logger.Debug("loaded config", "path", path)
			for _, key := range md.Undecoded() {
				c.Logger.Warn("unknown config key", "key", key.String(), "path", path)
			}
		case os.IsNotExist(err) && c.configPath == "":
		case os.IsNotExist(err):
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		default:
			return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
		}
	}

	if v := strings.TrimSpace(os.Getenv(envBaseURL)); v != "" {
		cfg.BaseURL = v
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the fcblocks configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.configFile()
			if err != nil {
				return fmt.Errorf("get config dir: %w", err)
			}
			fmt.Fprintln(c.Out, path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return toml.NewEncoder(c.Out).Encode(cfg)
		},
	})

	return cmd
}
