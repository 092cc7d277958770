package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/salesboard/pkg/version"
)

func newVersionCmd(ver string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the salesboard version and build commit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "salesboard version %s (commit %s)\n", ver, version.GetCommit())
			return err
		},
	}
}
