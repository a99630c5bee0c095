package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"listbatch/cmd/listbatch/commands"
	"listbatch/pkg/config"
	"listbatch/pkg/log"
)

var (
	// Flags
	configFile string
	debug      bool
)

// newRootCmd creates the root command and wires shared dependencies into root
func newRootCmd(root *commands.Root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listbatch",
		Short: "Batch-add titles to a remote list",
		Long: `listbatch parses a pasted or uploaded batch of title identifiers
(optionally paired with descriptions) and applies each one, in order, against
the remote list API. Items are processed one at a time with an optional delay
between them; a failing item never stops the rest of the batch, and Ctrl-C
stops after the item currently in flight.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			level := zerolog.InfoLevel
			if debug {
				level = zerolog.DebugLevel
			}
			logger := zerolog.Ctx(ctx).Level(level)
			cmd.SetContext(logger.WithContext(ctx))

			cfg, err := config.LoadOrDefault(cmd.Context(), configFile)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}

			root.Config = cfg
			root.Console = log.New(os.Stdout, level)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".listbatch.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	return cmd
}
