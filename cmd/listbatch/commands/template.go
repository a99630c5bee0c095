package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"listbatch/pkg/parse"
)

// NewTemplateCmd creates the template command
func NewTemplateCmd(root *Root) *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Print an example batch file",
		Long:  "Template prints the canonical two-line example input: the header row and one sample item with a quoted description.",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), parse.Template)
			return nil
		},
	}
}
