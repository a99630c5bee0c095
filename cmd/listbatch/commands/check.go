package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"listbatch/pkg/parse"
)

// NewCheckCmd creates the check command
func NewCheckCmd(root *Root) *cobra.Command {
	var inputGlob string

	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Parse batch input without running it",
		Long: `Check runs the same tolerant parser as run but stops there, so input can
be validated before committing to a batch. Malformed lines are dropped
silently; check reports what survives.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			glob := inputGlob
			if glob == "" && len(args) == 0 {
				glob = root.Config.Input
			}

			raw, err := gatherInput(args, glob, cmd.InOrStdin())
			if err != nil {
				return errors.Errorf("gathering input: %w", err)
			}

			b := parse.Parse(raw)
			if b.Len() == 0 {
				pterm.Warning.Println("no valid items found in input")
				return nil
			}

			for i, item := range b.Items {
				line := fmt.Sprintf("%3d  %s", i+1, item.ID)
				if item.Annotation != "" {
					line += fmt.Sprintf("  %q", item.Annotation)
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}

			pterm.Success.Printfln("%d item(s) ready", b.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputGlob, "input", "i", "", "glob pattern for batch input files")

	return cmd
}
