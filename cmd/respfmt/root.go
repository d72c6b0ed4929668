package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "respfmt",
		Short: "respfmt writes standardized JSON response envelopes",
		Long: `respfmt formats HTTP JSON responses as {status, message, data} envelopes.

Use "serve" to run the reference API service and "render" to print the
envelope a given status, message and payload produce.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newRenderCmd())
	return root
}
