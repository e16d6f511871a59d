package internal

import (
	"github.com/MrSnakeDoc/listsite/internal/buildinfo"
	"github.com/spf13/cobra"
)

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.Print(cmd.OutOrStdout())
		},
	}
}
