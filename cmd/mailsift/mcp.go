package main

import (
	"github.com/spf13/cobra"

	"github.com/mailsift/mailsift/internal/mcp"
)

func newMCPCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the archive over the Model Context Protocol (stdio)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := openArchive(flags)
			if err != nil {
				return err
			}
			defer archive.Close()

			srv := mcp.NewServer(mcp.ServerConfig{Archive: archive, Version: version})
			return mcp.ServeStdio(srv)
		},
	}
}
