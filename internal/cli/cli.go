package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/hmajid/pkgtop/pkg/buildinfo"
	"github.com/hmajid/pkgtop/pkg/config"
	"github.com/hmajid/pkgtop/pkg/contents"
	"github.com/hmajid/pkgtop/pkg/errors"
)

// rootOpts holds the command-line flags for the root command.
type rootOpts struct {
	mirror     string // mirror base URL
	suite      string // suite/release name
	component  string // component name
	top        int    // number of packages to display
	configPath string // explicit config file path
	verbosity  int    // counted -v flag
	noColor    bool   // disable styled output
}

// Execute runs the pkgtop CLI and returns an error if any command fails.
func Execute(ctx context.Context) error {
	return rootCommand().ExecuteContext(ctx)
}

// rootCommand creates the root cobra command with all subcommands registered.
func rootCommand() *cobra.Command {
	opts := rootOpts{
		mirror:    contents.DefaultMirror,
		suite:     contents.DefaultSuite,
		component: contents.DefaultComponent,
		top:       10,
	}

	root := &cobra.Command{
		Use:   "pkgtop <arch>",
		Short: "pkgtop shows the packages with the most files in a Debian archive",
		Long: `pkgtop downloads the Contents index published by a Debian mirror for
one architecture, counts how many indexed files belong to each package,
and prints the packages with the highest file counts.

Examples:
  pkgtop amd64
  pkgtop arm64 --top 20
  pkgtop mipsel --mirror http://deb.debian.org/debian --suite testing`,
		Version:       buildinfo.Version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				lipgloss.SetColorProfile(termenv.Ascii)
			}
			logger := newLogger(os.Stderr, levelFor(opts.verbosity))
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(&opts)
			if err != nil {
				return err
			}
			applyConfig(cmd, &opts, cfg)
			if opts.top < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "top count must be non-negative, got %d", opts.top)
			}
			return runStats(cmd, &opts, args[0])
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "increase verbosity (-v info, -vv debug)")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable styled output")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: ~/.config/pkgtop/config.toml)")

	root.PersistentFlags().StringVar(&opts.mirror, "mirror", opts.mirror, "Debian mirror base URL")
	root.PersistentFlags().StringVar(&opts.suite, "suite", opts.suite, "suite/release name")
	root.PersistentFlags().StringVar(&opts.component, "component", opts.component, "component name")
	root.Flags().IntVarP(&opts.top, "top", "n", opts.top, "number of top packages to display")

	root.AddCommand(mirrorsCommand(&opts))
	root.AddCommand(completionCommand())

	return root
}

// loadConfig reads the config file named by --config, or the default
// location when the flag is unset.
func loadConfig(opts *rootOpts) (config.Config, error) {
	if opts.configPath != "" {
		cfg, err := config.Load(opts.configPath)
		if err != nil {
			return config.Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "loading config %s", opts.configPath)
		}
		return cfg, nil
	}
	cfg, err := config.LoadDefault()
	if err != nil {
		return config.Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "loading default config")
	}
	return cfg, nil
}

// applyConfig folds config-file values into opts. Explicitly set flags
// always win over the config file, which wins over built-in defaults.
func applyConfig(cmd *cobra.Command, opts *rootOpts, cfg config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("mirror") && cfg.Mirror != "" {
		opts.mirror = cfg.Mirror
	}
	if !flags.Changed("suite") && cfg.Suite != "" {
		opts.suite = cfg.Suite
	}
	if !flags.Changed("component") && cfg.Component != "" {
		opts.component = cfg.Component
	}
	if !flags.Changed("top") && cfg.Top > 0 {
		opts.top = cfg.Top
	}
}
