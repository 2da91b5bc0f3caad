package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/investa/finserve/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "investa %s\n", version.Full())
			fmt.Fprintf(cmd.OutOrStdout(), "go: %s\n", info.GoVersion)
		},
	}
}
