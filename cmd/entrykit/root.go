package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/eringen/entrykit/internal/config"
	"github.com/eringen/entrykit/internal/logging"
)

// options holds the persistent flags and the configuration they resolve to.
type options struct {
	verbosity  int
	configPath string
	cfg        *config.Config
}

// NewRootCmd builds the entrykit command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "entrykit",
		Short: "Render and preview publishing site entries",
		Long: `entrykit renders the metadata and structural HTML of entries on a
publishing site. The preview server shows stored entries the way a host
would, with thumbnails, avatars, edit links and pagination.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			if cmd.Name() == "version" || cmd.Name() == "new" {
				return nil
			}
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (.toml, .yaml or .yml)")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newSeedCmd(opts),
		newRenderCmd(opts),
		newNewCmd(),
		newVersionCmd(),
	)
	return rootCmd
}
