package skeind

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skeinlab/skein/internal/skeind/config"
	"github.com/skeinlab/skein/internal/skeind/options"
	"github.com/skeinlab/skein/pkg/logger"
	"github.com/skeinlab/skein/pkg/version"
)

const commandDesc = `The skein daemon records agent conversation event feeds and serves
reconstructed display threads over a REST+SSE API.

Find more information at:
    https://github.com/skeinlab/skein/blob/master/docs/guide/en-US/skeind.md`

// NewSkeindCommand builds the skeind root command.
func NewSkeindCommand(basename string) *cobra.Command {
	opts := options.NewOptions()
	var cfgFile string
	var printVersion bool

	cmd := &cobra.Command{
		Use:           basename,
		Short:         "skeind serves agent conversation threads",
		Long:          commandDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printVersion {
				fmt.Println(version.Get().String())
				return nil
			}

			if err := loadConfig(cfgFile, basename, opts); err != nil {
				return err
			}

			if errs := opts.Validate(); len(errs) > 0 {
				return fmt.Errorf("invalid options: %v", errs)
			}

			if err := logger.SetLevel(opts.Misc.LogLevel); err != nil {
				return err
			}
			if opts.Misc.LogFile != "" {
				if err := logger.InitLog(opts.Misc.LogFile); err != nil {
					return err
				}
				defer logger.FlushLog()
			}

			cfg, err := config.CreateConfigFromOptions(opts)
			if err != nil {
				return err
			}

			return Run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Path to the skeind configuration file.")
	flags.BoolVar(&printVersion, "version", false, "Print version information and quit.")
	opts.AddFlags(flags)

	return cmd
}

// loadConfig reads the config file (when given) into opts. Flags set on the
// command line win over file values. The file is watched so operators see a
// log line when an edit lands; a restart is still required to apply it.
func loadConfig(cfgFile, basename string, opts *options.Options) error {
	if cfgFile == "" {
		return nil
	}

	viper.SetConfigFile(cfgFile)
	viper.SetEnvPrefix(strings.ToUpper(basename))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %q: %w", cfgFile, err)
	}
	if err := viper.Unmarshal(opts); err != nil {
		return fmt.Errorf("unmarshal config file %q: %w", cfgFile, err)
	}

	viper.OnConfigChange(func(e fsnotify.Event) {
		logger.Info("[Skeind] config file changed: %s (restart to apply)", e.Name)
	})
	viper.WatchConfig()

	return nil
}
