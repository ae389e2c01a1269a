package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "optimizerd",
		Short: "Cold-chain dispatch optimizer",
	}
	root.AddCommand(newServeCommand())
	root.AddCommand(newSolveCommand())
	return root
}
