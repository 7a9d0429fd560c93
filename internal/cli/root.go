package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/assertia/internal/logging"
	"github.com/ppiankov/assertia/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// set by the linker
var version = "dev"

var (
	cfgFile      string
	verbose      bool
	triggersPath string

	cfg       *model.Config
	configErr error // set by initConfig
	logger    = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "assertia",
	Short: "Assertia - contextual assertion classifier for clinical text",
	Long: `Assertia decides, for a phrase mentioned in a sentence, whether the
mention is negated or affirmed, recent, historical or hypothetical, and
whether it is experienced by the patient or someone else.

Classification is rule-based: trigger phrases such as "denies", "history of"
or "mother" affect a mention when they occur within a small token window of
it, in the direction their role allows and without a stop phrase between.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = loaded

		l, err := logging.New(cfg.Log.Level, cfg.Log.Format, cfg.Output.Verbose)
		if err != nil {
			return err
		}
		logger = l

		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", zap.String("path", used))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of Assertia.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "assertia %s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.assertia/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&triggersPath, "triggers", "", "trigger lists: directory of *_triggers.txt files or a .yaml file (default: built-in lists)")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("triggers.path", rootCmd.PersistentFlags().Lookup("triggers"))

	rootCmd.AddCommand(versionCmd)
}

// configDir returns $HOME/.assertia
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error finding home directory: %w", err)
	}
	return filepath.Join(home, ".assertia"), nil
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		viper.AddConfigPath(dir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// ASSERTIA_CACHE_DIR overrides cache.dir
	viper.SetEnvPrefix("ASSERTIA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			configErr = fmt.Errorf("read config: %w", err)
		}
	}
}

// loadConfig merges defaults, config file, environment and flags
func loadConfig() (*model.Config, error) {
	c := model.DefaultConfig()

	if configErr != nil {
		return nil, configErr
	}

	registerDefaults(c)
	if err := viper.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if _, err := c.CategoryWindows(); err != nil {
		return nil, err
	}
	return c, nil
}

// registerDefaults makes every leaf key known to viper so that environment
// variables can override it
func registerDefaults(c *model.Config) {
	for cat, size := range c.Windows {
		viper.SetDefault("windows."+cat, size)
	}
	viper.SetDefault("triggers.path", c.Triggers.Path)
	viper.SetDefault("cache.enabled", c.Cache.Enabled)
	viper.SetDefault("cache.dir", c.Cache.Dir)
	viper.SetDefault("cache.memory_ttl", c.Cache.MemoryTTL)
	viper.SetDefault("cache.disk_ttl", c.Cache.DiskTTL)
	viper.SetDefault("concurrency.workers", c.Concurrency.Workers)
	viper.SetDefault("rate_limiting.per_second", c.RateLimiting.PerSecond)
	viper.SetDefault("rate_limiting.burst", c.RateLimiting.Burst)
	viper.SetDefault("output.verbose", c.Output.Verbose)
	viper.SetDefault("output.include_footer", c.Output.IncludeFooter)
	viper.SetDefault("log.level", c.Log.Level)
	viper.SetDefault("log.format", c.Log.Format)
}
