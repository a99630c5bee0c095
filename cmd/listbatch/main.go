package main

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"listbatch/cmd/listbatch/commands"
)

func main() {
	console := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) { w.Out = os.Stderr })
	logger := zerolog.New(console).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	ctx := logger.WithContext(context.Background())

	root := &commands.Root{}

	rootCmd := newRootCmd(root)
	rootCmd.AddCommand(
		commands.NewRunCmd(root),
		commands.NewCheckCmd(root),
		commands.NewTemplateCmd(root),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
