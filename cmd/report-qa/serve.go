// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/appraisal-tools/report-qa/internal/tool"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the validate_report tool over MCP stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, v, logger, err := setup(flags)
			if err != nil {
				return err
			}

			server := tool.NewServer(cfg.Server.Name, cfg.Server.Version, v)
			logger.Info("MCP server started", "name", cfg.Server.Name, "version", cfg.Server.Version)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
